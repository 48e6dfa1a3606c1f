package intentserver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabriqs/paysheet/logger"
	"github.com/fabriqs/paysheet/payment"
)

func TestMemoryProvider_Sweep(t *testing.T) {
	provider := NewMemoryProvider(logger.Discard())
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	provider.now = func() time.Time { return now }

	price := payment.Money{Amount: 100, Currency: "MXN"}
	stale, err := provider.CreateIntent(context.Background(), &payment.IntentRequest{Amount: price})
	require.NoError(t, err)
	paid, err := provider.CreateIntent(context.Background(), &payment.IntentRequest{Amount: price})
	require.NoError(t, err)
	_, err = provider.ConfirmIntent(context.Background(), paid.ClientSecret)
	require.NoError(t, err)

	now = now.Add(10 * time.Minute)
	fresh, err := provider.CreateIntent(context.Background(), &payment.IntentRequest{Amount: price})
	require.NoError(t, err)

	assert.Equal(t, 2, provider.Sweep(5*time.Minute))
	assert.Equal(t, 1, provider.Len())

	_, err = provider.GetIntent(context.Background(), stale.ID)
	assert.ErrorIs(t, err, payment.ErrIntentNotFound)
	_, err = provider.GetIntent(context.Background(), paid.ID)
	assert.ErrorIs(t, err, payment.ErrIntentNotFound)
	_, err = provider.GetIntent(context.Background(), fresh.ID)
	assert.NoError(t, err)

	_, err = provider.ConfirmIntent(context.Background(), stale.ClientSecret)
	assert.ErrorIs(t, err, payment.ErrIntentNotFound)
}

func TestMemoryProvider_ReturnsCopies(t *testing.T) {
	provider := NewMemoryProvider(logger.Discard())

	intent, err := provider.CreateIntent(context.Background(), &payment.IntentRequest{})
	require.NoError(t, err)
	intent.Status = payment.StatusSucceeded

	stored, err := provider.GetIntent(context.Background(), intent.ID)
	require.NoError(t, err)
	assert.Equal(t, payment.StatusRequiresPaymentMethod, stored.Status)
}

func TestStartSweeper(t *testing.T) {
	provider := NewMemoryProvider(logger.Discard())
	_, err := provider.CreateIntent(context.Background(), &payment.IntentRequest{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler, err := StartSweeper(ctx, provider, -time.Hour, 10*time.Millisecond, logger.Discard())
	require.NoError(t, err)
	assert.True(t, scheduler.IsRunning())

	require.Eventually(t, func() bool { return provider.Len() == 0 }, time.Second, 5*time.Millisecond)
}
