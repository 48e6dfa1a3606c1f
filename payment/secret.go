package payment

import "strings"

const secretSeparator = "_secret_"

// ClientSecret is an opaque, single-use token authorizing the confirmation of
// one payment intent. Clients treat it as opaque; the intent server issues it
// in the form "<intent id>_secret_<nonce>" and checks that form on confirm.
type ClientSecret string

func NewClientSecret(intentID, nonce string) ClientSecret {
	return ClientSecret(intentID + secretSeparator + nonce)
}

func (s ClientSecret) IntentID() string {
	id, _, _ := strings.Cut(string(s), secretSeparator)
	return id
}

func (s ClientSecret) Valid() bool {
	id, nonce, ok := strings.Cut(string(s), secretSeparator)
	return ok && id != "" && nonce != ""
}

// Redacted keeps the intent id and hides the nonce, for logs.
func (s ClientSecret) Redacted() string {
	if s == "" {
		return "<empty>"
	}
	if !s.Valid() {
		return "***"
	}
	return s.IntentID() + secretSeparator + "***"
}
