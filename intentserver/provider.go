package intentserver

import (
	"context"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/fabriqs/paysheet/payment"
)

// MemoryProvider keeps intents in process memory. It stands in for the
// payment provider during development.
type MemoryProvider struct {
	mu      sync.Mutex
	intents map[string]*payment.Intent
	now     func() time.Time
	log     *logrus.Entry
}

func NewMemoryProvider(log *logrus.Entry) *MemoryProvider {
	return &MemoryProvider{
		intents: make(map[string]*payment.Intent),
		now:     time.Now,
		log:     log,
	}
}

func (p *MemoryProvider) CreateIntent(_ context.Context, request *payment.IntentRequest) (*payment.Intent, error) {
	id := "pi_" + xid.New().String()
	intent := &payment.Intent{
		ID:                 id,
		ClientSecret:       payment.NewClientSecret(id, xid.New().String()),
		Status:             payment.StatusRequiresPaymentMethod,
		Amount:             request.Amount,
		Description:        request.Description,
		PaymentMethodTypes: request.PaymentMethodTypes,
		CreatedAt:          p.now(),
	}

	p.mu.Lock()
	p.intents[id] = intent
	p.mu.Unlock()

	copied := *intent
	return &copied, nil
}

func (p *MemoryProvider) GetIntent(_ context.Context, id string) (*payment.Intent, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	intent, ok := p.intents[id]
	if !ok {
		return nil, payment.ErrIntentNotFound
	}
	copied := *intent
	return &copied, nil
}

// ConfirmIntent succeeds once per intent. The secret must match the intent
// it names.
func (p *MemoryProvider) ConfirmIntent(_ context.Context, secret payment.ClientSecret) (*payment.Intent, error) {
	if !secret.Valid() {
		return nil, payment.ErrInvalidClientSecret
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	intent, ok := p.intents[secret.IntentID()]
	if !ok {
		return nil, payment.ErrIntentNotFound
	}
	if intent.ClientSecret != secret {
		return nil, payment.ErrInvalidClientSecret
	}
	if intent.Status != payment.StatusRequiresPaymentMethod {
		return nil, payment.ErrIntentNotConfirmable
	}

	intent.Status = payment.StatusSucceeded
	copied := *intent
	return &copied, nil
}

// Sweep forgets intents created more than ttl ago, confirmed or not. An
// unconfirmed intent past its ttl can no longer be confirmed.
func (p *MemoryProvider) Sweep(ttl time.Duration) int {
	cutoff := p.now().Add(-ttl)

	p.mu.Lock()
	defer p.mu.Unlock()

	swept := 0
	for id, intent := range p.intents {
		if intent.CreatedAt.Before(cutoff) {
			delete(p.intents, id)
			swept++
		}
	}
	if swept > 0 {
		p.log.WithField("swept", swept).Info("expired payment intents removed")
	}
	return swept
}

func (p *MemoryProvider) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.intents)
}

var _ payment.Provider = (*MemoryProvider)(nil)
