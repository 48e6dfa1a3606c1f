package checkout

import (
	"time"

	"github.com/rs/xid"

	"github.com/fabriqs/paysheet/payment"
)

// Attempt is one purchase cycle, from fetching a client secret to its
// outcome. It only lives in memory. Its status is the controller's state.
type Attempt struct {
	ID string
	// ClientSecret is set only while the attempt is Ready or Presenting.
	ClientSecret payment.ClientSecret
	Price        payment.Money
	StartedAt    time.Time
}

func newAttempt(price payment.Money) *Attempt {
	return &Attempt{
		ID:        xid.New().String(),
		Price:     price,
		StartedAt: time.Now(),
	}
}

// Snapshot is published on every transition.
type Snapshot struct {
	AttemptID string
	State     State
	View      View
	Price     payment.Money
}
