package payment

import (
	"context"
	"errors"
	"time"
)

const (
	StatusRequiresPaymentMethod = "requires_payment_method"
	StatusRequiresConfirmation  = "requires_confirmation"
	StatusProcessing            = "processing"
	StatusSucceeded             = "succeeded"
	StatusCanceled              = "canceled"
)

var (
	ErrIntentNotFound       = errors.New("payment intent not found")
	ErrIntentNotConfirmable = errors.New("payment intent cannot be confirmed in its current status")
	ErrInvalidClientSecret  = errors.New("invalid client secret")
)

type IntentRequest struct {
	Amount             Money
	Description        string
	PaymentMethodTypes []string
}

type Intent struct {
	ID                 string
	ClientSecret       ClientSecret
	Status             string
	Amount             Money
	Description        string
	PaymentMethodTypes []string
	CreatedAt          time.Time
}

// Provider is the server side of a payment: it issues intents and the one-time
// client secrets that authorize confirming them.
type Provider interface {
	CreateIntent(ctx context.Context, request *IntentRequest) (*Intent, error)
	GetIntent(ctx context.Context, id string) (*Intent, error)
	ConfirmIntent(ctx context.Context, secret ClientSecret) (*Intent, error)
}
