package checkout

import (
	"errors"

	"github.com/fabriqs/paysheet/locale"
	"github.com/fabriqs/paysheet/payment"
)

const (
	TopicState        = "checkout:state"
	TopicNotification = "checkout:notification"
)

type Kind string

const (
	KindInfo    Kind = "info"
	KindError   Kind = "error"
	KindSuccess Kind = "success"
)

// Notification is a fire-and-forget alert for the user.
type Notification struct {
	AttemptID string
	Kind      Kind
	Title     string
	Body      string
}

func stillLoading(msgs *locale.Messages) Notification {
	return Notification{
		Kind:  KindInfo,
		Title: msgs.Text(locale.StillLoadingTitle, nil),
		Body:  msgs.Text(locale.StillLoadingBody, nil),
	}
}

func succeeded(msgs *locale.Messages, price payment.Money) Notification {
	return Notification{
		Kind:  KindSuccess,
		Title: msgs.Text(locale.SuccessTitle, nil),
		Body:  msgs.Text(locale.SuccessBody, map[string]any{"Price": msgs.Price(price)}),
	}
}

// failure maps an error from the fetcher or the sheet to what the user sees.
func failure(msgs *locale.Messages, err error) Notification {
	var (
		configErr *payment.ConfigError
		cancelErr *payment.CancelledError
	)

	switch {
	case errors.As(err, &cancelErr):
		body := cancelErr.Message
		if body == "" {
			body = msgs.Text(locale.CancelledBody, nil)
		}
		return Notification{Kind: KindInfo, Title: msgs.Text(locale.CancelledTitle, nil), Body: body}
	case errors.Is(err, payment.ErrUserCancelled):
		return Notification{
			Kind:  KindInfo,
			Title: msgs.Text(locale.CancelledTitle, nil),
			Body:  msgs.Text(locale.CancelledBody, nil),
		}
	case errors.As(err, &configErr):
		return Notification{Kind: KindError, Title: msgs.Text(locale.ErrorTitle, nil), Body: configErr.Message}
	case isNetwork(err):
		return Notification{
			Kind:  KindError,
			Title: msgs.Text(locale.ErrorTitle, nil),
			Body:  msgs.Text(locale.NetworkErrorBody, nil),
		}
	default:
		return Notification{
			Kind:  KindError,
			Title: msgs.Text(locale.ErrorTitle, nil),
			Body:  msgs.Text(locale.PresentationErrorBody, nil),
		}
	}
}

func isNetwork(err error) bool {
	var netErr *payment.NetworkError
	return errors.As(err, &netErr)
}

// outcome is the terminal state an error leads to.
func outcome(err error) State {
	switch {
	case err == nil:
		return Settled
	case errors.Is(err, payment.ErrUserCancelled):
		return Cancelled
	default:
		return Failed
	}
}
