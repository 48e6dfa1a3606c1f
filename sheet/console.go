package sheet

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/copier"
	"github.com/sirupsen/logrus"

	"github.com/fabriqs/paysheet/locale"
	"github.com/fabriqs/paysheet/payment"
)

// Confirmer confirms an intent with the payment backend once the user has
// agreed to pay.
type Confirmer interface {
	ConfirmIntent(ctx context.Context, secret payment.ClientSecret) (*payment.Intent, error)
}

// Prompter asks the user a question and waits for the answer.
type Prompter interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// Console is a payment sheet drawn on a terminal. It owns its own modal UI:
// the checkout controller only configures it and asks it to present.
type Console struct {
	publishableKey string
	confirmer      Confirmer
	prompter       Prompter
	out            io.Writer
	msgs           *locale.Messages
	validate       *validator.Validate
	log            *logrus.Entry

	mu       sync.Mutex
	secret   payment.ClientSecret
	merchant payment.MerchantConfig
}

func NewConsole(publishableKey string, confirmer Confirmer, prompter Prompter, out io.Writer, msgs *locale.Messages, log *logrus.Entry) *Console {
	return &Console{
		publishableKey: publishableKey,
		confirmer:      confirmer,
		prompter:       prompter,
		out:            out,
		msgs:           msgs,
		validate:       validator.New(),
		log:            log,
	}
}

func (c *Console) Configure(_ context.Context, secret payment.ClientSecret, merchant payment.MerchantConfig) error {
	if !strings.HasPrefix(c.publishableKey, "pk_") {
		return &payment.ConfigError{Message: "Invalid publishable key"}
	}
	if merchant.TestMode && !strings.HasPrefix(c.publishableKey, "pk_test_") {
		return &payment.ConfigError{Message: "Test mode requires a test publishable key"}
	}
	if err := c.validate.Struct(merchant); err != nil {
		return &payment.ConfigError{Message: "Invalid merchant configuration", Err: err}
	}
	if secret == "" {
		return &payment.ConfigError{Message: "Invalid client secret", Err: payment.ErrInvalidClientSecret}
	}

	var snapshot payment.MerchantConfig
	if err := copier.Copy(&snapshot, &merchant); err != nil {
		return &payment.ConfigError{Message: "Invalid merchant configuration", Err: err}
	}

	c.mu.Lock()
	c.secret = secret
	c.merchant = snapshot
	c.mu.Unlock()

	c.log.WithField("secret", secret.Redacted()).Debug("payment sheet configured")
	return nil
}

// Present shows the sheet and blocks until the user answers. The configured
// secret is used at most once.
func (c *Console) Present(ctx context.Context) error {
	c.mu.Lock()
	secret, merchant := c.secret, c.merchant
	c.secret = ""
	c.mu.Unlock()

	if secret == "" {
		return &payment.PresentationError{Err: payment.ErrSheetNotConfigured}
	}

	c.draw(merchant)

	answer, err := c.prompter.Ask(ctx, c.msgs.Text(locale.SheetPrompt, nil))
	if err != nil {
		return &payment.PresentationError{Err: err}
	}
	if !accepted(answer) {
		return &payment.CancelledError{Message: c.msgs.Text(locale.SheetCancelled, nil)}
	}

	intent, err := c.confirmer.ConfirmIntent(ctx, secret)
	if err != nil {
		return &payment.PresentationError{Err: err}
	}
	if intent.Status != payment.StatusSucceeded {
		return &payment.PresentationError{Err: fmt.Errorf("intent %s ended as %s", intent.ID, intent.Status)}
	}

	c.log.WithField("intent", intent.ID).Info("payment confirmed")
	return nil
}

func (c *Console) draw(merchant payment.MerchantConfig) {
	title := c.msgs.Text(locale.SheetTitle, map[string]any{"Merchant": merchant.DisplayName})

	var b strings.Builder
	line := strings.Repeat("─", 40)
	fmt.Fprintf(&b, "\n┌%s┐\n", line)
	fmt.Fprintf(&b, "  %s\n", title)
	fmt.Fprintf(&b, "  %s\n", c.msgs.Text(locale.SheetMethod, nil))
	if merchant.TestMode {
		fmt.Fprintf(&b, "  [%s]\n", c.msgs.Text(locale.SheetTestMode, nil))
	}
	fmt.Fprintf(&b, "└%s┘\n", line)

	io.WriteString(c.out, b.String())
}

func accepted(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "s", "si", "sí", "y", "yes":
		return true
	}
	return false
}

var _ payment.Sheet = (*Console)(nil)
