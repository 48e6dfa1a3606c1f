package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/fabriqs/paysheet/payment"
)

const createIntentPath = "/create-payment-intent"

var errEmptySecret = errors.New("response has no clientSecret")

type intentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// Client obtains one-time client secrets from the checkout backend. It never
// retries; retrying is up to the caller.
type Client struct {
	http *resty.Client
	log  *logrus.Entry
}

func New(baseURL string, timeout time.Duration, log *logrus.Entry) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: client, log: log}
}

func (c *Client) FetchClientSecret(ctx context.Context) (payment.ClientSecret, error) {
	var body intentResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&body).
		Post(createIntentPath)
	if err != nil {
		return "", &payment.NetworkError{Op: "create payment intent", Err: err}
	}
	if resp.IsError() {
		return "", &payment.NetworkError{
			Op:  "create payment intent",
			Err: fmt.Errorf("unexpected status %d", resp.StatusCode()),
		}
	}
	if body.ClientSecret == "" {
		return "", &payment.NetworkError{Op: "create payment intent", Err: errEmptySecret}
	}

	secret := payment.ClientSecret(body.ClientSecret)
	c.log.WithFields(logrus.Fields{
		"secret":  secret.Redacted(),
		"latency": resp.Time(),
	}).Debug("client secret fetched")

	return secret, nil
}
