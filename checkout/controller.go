package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fabriqs/paysheet/locale"
	"github.com/fabriqs/paysheet/payment"
)

type Fetcher interface {
	FetchClientSecret(ctx context.Context) (payment.ClientSecret, error)
}

// Bus is the publishing half of an EventBus.
type Bus interface {
	Publish(topic string, args ...interface{})
}

type Options struct {
	Fetcher  Fetcher
	Sheet    payment.Sheet
	Merchant payment.MerchantConfig
	Price    payment.Money
	Bus      Bus
	Messages *locale.Messages
	Log      *logrus.Entry
	// RestartDelay holds the machine in Failed before the next attempt.
	// Settled and Cancelled always restart at once.
	RestartDelay time.Duration
}

type (
	mountEvent struct{}
	payEvent   struct{}
	prepared   struct {
		attemptID string
		secret    payment.ClientSecret
		err       error
	}
	presented struct {
		attemptID string
		err       error
	}
	restartEvent struct {
		attemptID string
	}
)

// Controller runs the payment-session lifecycle for one checkout screen.
//
// A single goroutine owns the state. The token fetch and the sheet
// presentation run on their own goroutines and report back through the event
// channel, tagged with the attempt they belong to; reports for an older
// attempt, or arriving after Unmount, are dropped.
type Controller struct {
	fetcher      Fetcher
	sheet        payment.Sheet
	merchant     payment.MerchantConfig
	price        payment.Money
	bus          Bus
	msgs         *locale.Messages
	log          *logrus.Entry
	restartDelay time.Duration

	events chan interface{}
	done   chan struct{}

	mu      sync.RWMutex
	cancel  context.CancelFunc
	state   State
	attempt *Attempt
}

func New(opts Options) *Controller {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Controller{
		fetcher:      opts.Fetcher,
		sheet:        opts.Sheet,
		merchant:     opts.Merchant,
		price:        opts.Price,
		bus:          opts.Bus,
		msgs:         opts.Messages,
		log:          log,
		restartDelay: opts.RestartDelay,
		events:       make(chan interface{}, 8),
		done:         make(chan struct{}),
		state:        Uninitialized,
	}
}

// Mount starts the controller and its first attempt. Cancelling ctx has the
// same effect as Unmount.
func (c *Controller) Mount(ctx context.Context) {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return
	}
	ctx, c.cancel = context.WithCancel(ctx)
	c.mu.Unlock()

	go c.run(ctx)
	c.post(mountEvent{})
}

// Unmount stops the controller and waits for the run loop to exit. Pending
// fetches and presentations are abandoned.
func (c *Controller) Unmount() {
	c.mu.RLock()
	cancel := c.cancel
	c.mu.RUnlock()
	if cancel == nil {
		return
	}

	cancel()
	<-c.done
}

// RequestPayment is the pay button. It only does something when the
// controller is Ready.
func (c *Controller) RequestPayment() {
	if !c.mounted() {
		return
	}
	c.post(payEvent{})
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

// Attempt returns a copy of the live attempt.
func (c *Controller) Attempt() (Attempt, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.attempt == nil {
		return Attempt{}, false
	}
	return *c.attempt, true
}

func (c *Controller) mounted() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cancel != nil
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		State: c.state,
		View:  c.state.View(),
		Price: c.price,
	}
	if c.attempt != nil {
		snap.AttemptID = c.attempt.ID
	}
	return snap
}

// post hands an event to the run loop. It gives up once the loop has exited.
func (c *Controller) post(ev interface{}) bool {
	select {
	case c.events <- ev:
		return true
	case <-c.done:
		return false
	}
}

func (c *Controller) run(ctx context.Context) {
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			c.log.WithField("state", c.Snapshot().State).Debug("checkout unmounted")
			return
		case ev := <-c.events:
			if ctx.Err() != nil {
				continue
			}
			c.handle(ctx, ev)
		}
	}
}

func (c *Controller) handle(ctx context.Context, ev interface{}) {
	switch ev := ev.(type) {
	case mountEvent:
		if c.state == Uninitialized {
			c.begin(ctx)
		}
	case payEvent:
		c.requestPayment(ctx)
	case prepared:
		c.onPrepared(ctx, ev)
	case presented:
		c.onPresented(ctx, ev)
	case restartEvent:
		if c.isCurrent(ev.attemptID) && c.state.IsTerminal() {
			c.begin(ctx)
		}
	}
}

// begin starts a new attempt: fetch a client secret, then configure the sheet.
func (c *Controller) begin(ctx context.Context) {
	attempt := newAttempt(c.price)

	c.mu.Lock()
	c.attempt = attempt
	c.mu.Unlock()

	if !c.transition(Initializing) {
		return
	}

	go func() {
		secret, err := c.fetcher.FetchClientSecret(ctx)
		if err == nil && ctx.Err() == nil {
			err = c.sheet.Configure(ctx, secret, c.merchant)
		}
		c.post(prepared{attemptID: attempt.ID, secret: secret, err: err})
	}()
}

func (c *Controller) onPrepared(ctx context.Context, ev prepared) {
	if !c.isCurrent(ev.attemptID) || c.state != Initializing {
		c.log.WithField("attempt", ev.attemptID).Debug("dropping stale fetch result")
		return
	}

	if ev.err != nil {
		c.settle(ctx, Failed, failure(c.msgs, ev.err), ev.err)
		return
	}

	c.mu.Lock()
	c.attempt.ClientSecret = ev.secret
	c.mu.Unlock()

	c.transition(Ready)
}

func (c *Controller) requestPayment(ctx context.Context) {
	if c.state != Ready {
		c.log.WithField("state", c.state).Debug("pay ignored")
		if !c.state.View().Busy {
			c.notify(stillLoading(c.msgs))
		}
		return
	}

	if !c.transition(Presenting) {
		return
	}

	attemptID := c.attempt.ID
	go func() {
		err := c.sheet.Present(ctx)
		c.post(presented{attemptID: attemptID, err: err})
	}()
}

func (c *Controller) onPresented(ctx context.Context, ev presented) {
	if !c.isCurrent(ev.attemptID) || c.state != Presenting {
		c.log.WithField("attempt", ev.attemptID).Debug("dropping stale presentation result")
		return
	}

	to := outcome(ev.err)
	if to == Settled {
		c.settle(ctx, to, succeeded(c.msgs, c.price), nil)
		return
	}
	c.settle(ctx, to, failure(c.msgs, ev.err), ev.err)
}

// settle enters a terminal state, tells the user and takes the restart edge.
// The client secret of the finished attempt is discarded first.
func (c *Controller) settle(ctx context.Context, to State, n Notification, err error) {
	c.mu.Lock()
	c.attempt.ClientSecret = ""
	attemptID := c.attempt.ID
	c.mu.Unlock()

	if !c.transition(to) {
		return
	}

	entry := c.log.WithField("attempt", attemptID)
	if to == Failed {
		entry.WithError(err).Error("payment attempt failed")
	} else {
		entry.WithField("outcome", to).Info("payment attempt finished")
	}

	n.AttemptID = attemptID
	c.notify(n)

	if to == Failed && c.restartDelay > 0 {
		time.AfterFunc(c.restartDelay, func() {
			c.post(restartEvent{attemptID: attemptID})
		})
		return
	}
	c.begin(ctx)
}

func (c *Controller) transition(to State) bool {
	from := c.state
	if !from.CanTransition(to) {
		c.log.WithFields(logrus.Fields{"from": from, "to": to}).Error("illegal checkout transition")
		return false
	}

	c.mu.Lock()
	c.state = to
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{
		"attempt": snap.AttemptID,
		"from":    from,
		"to":      to,
	}).Debug("checkout state changed")

	c.bus.Publish(TopicState, snap)
	return true
}

func (c *Controller) notify(n Notification) {
	c.bus.Publish(TopicNotification, n)
}

func (c *Controller) isCurrent(attemptID string) bool {
	return c.attempt != nil && c.attempt.ID == attemptID
}
