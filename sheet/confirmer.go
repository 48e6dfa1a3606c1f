package sheet

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/fabriqs/paysheet/payment"
)

const confirmPath = "/payment-intents/confirm"

type confirmRequest struct {
	ClientSecret string `json:"clientSecret"`
}

type intentResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"createdAt"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// HTTPConfirmer confirms intents against the checkout backend, authenticating
// with the publishable key.
type HTTPConfirmer struct {
	http *resty.Client
}

func NewHTTPConfirmer(baseURL, publishableKey string, timeout time.Duration) *HTTPConfirmer {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetAuthToken(publishableKey).
		SetHeader("Accept", "application/json")

	return &HTTPConfirmer{http: client}
}

func (c *HTTPConfirmer) ConfirmIntent(ctx context.Context, secret payment.ClientSecret) (*payment.Intent, error) {
	var (
		body   intentResponse
		failed errorResponse
	)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(confirmRequest{ClientSecret: string(secret)}).
		SetResult(&body).
		SetError(&failed).
		Post(confirmPath)
	if err != nil {
		return nil, fmt.Errorf("confirm intent: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("confirm intent: status %d: %s", resp.StatusCode(), failed.Message)
	}

	return &payment.Intent{
		ID:           body.ID,
		ClientSecret: secret,
		Status:       body.Status,
		Amount:       payment.Money{Amount: body.Amount, Currency: body.Currency},
		CreatedAt:    body.CreatedAt,
	}, nil
}
