package payment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabriqs/paysheet/payment"
)

func TestNewMoney(t *testing.T) {
	m, err := payment.NewMoney(1, "MXN")
	require.NoError(t, err)

	assert.Equal(t, int64(100), m.Amount)
	assert.Equal(t, "MXN", m.Currency)
	assert.Equal(t, 2, m.Scale())
	assert.True(t, m.Whole())
	assert.Equal(t, 1.0, m.Major())
	assert.Equal(t, "1.00 MXN", m.String())
}

func TestNewMoney_ZeroDecimalCurrency(t *testing.T) {
	m, err := payment.NewMoney(500, "JPY")
	require.NoError(t, err)

	assert.Equal(t, int64(500), m.Amount)
	assert.Equal(t, 0, m.Scale())
}

func TestNewMoney_UnknownCurrency(t *testing.T) {
	_, err := payment.NewMoney(1, "ZZZ")
	assert.Error(t, err)
}

func TestMoney_Fractional(t *testing.T) {
	m := payment.Money{Amount: 150, Currency: "MXN"}
	assert.False(t, m.Whole())
	assert.Equal(t, 1.5, m.Major())
}
