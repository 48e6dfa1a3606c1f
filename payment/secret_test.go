package payment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fabriqs/paysheet/payment"
)

func TestClientSecret(t *testing.T) {
	secret := payment.NewClientSecret("pi_123", "abc")

	assert.Equal(t, payment.ClientSecret("pi_123_secret_abc"), secret)
	assert.True(t, secret.Valid())
	assert.Equal(t, "pi_123", secret.IntentID())
	assert.Equal(t, "pi_123_secret_***", secret.Redacted())
}

func TestClientSecret_Invalid(t *testing.T) {
	for _, s := range []payment.ClientSecret{"sec_123", "_secret_abc", "pi_123_secret_"} {
		assert.False(t, s.Valid(), "%q", s)
		assert.Equal(t, "***", s.Redacted())
	}
	assert.Equal(t, "<empty>", payment.ClientSecret("").Redacted())
}
