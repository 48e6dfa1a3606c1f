package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabriqs/paysheet/locale"
	"github.com/fabriqs/paysheet/payment"
)

func TestMessages_Spanish(t *testing.T) {
	msgs, err := locale.New("es")
	require.NoError(t, err)

	assert.Equal(t, "Pagar con Google Pay", msgs.Text(locale.PayButton, nil))
	assert.Equal(t, "Cargando...", msgs.Text(locale.LoadingButton, nil))
	assert.Equal(t, "¡Éxito!", msgs.Text(locale.SuccessTitle, nil))
	assert.Equal(t,
		"Tu pago de $1 MXN se procesó correctamente",
		msgs.Text(locale.SuccessBody, map[string]any{"Price": "$1 MXN"}))
}

func TestMessages_English(t *testing.T) {
	msgs, err := locale.New("en")
	require.NoError(t, err)

	assert.Equal(t, "Pay with Google Pay", msgs.Text(locale.PayButton, nil))
}

func TestMessages_UnknownIDFallsBackToID(t *testing.T) {
	msgs, err := locale.New("es")
	require.NoError(t, err)

	assert.Equal(t, "NoSuchMessage", msgs.Text("NoSuchMessage", nil))
}

func TestMessages_BadLocale(t *testing.T) {
	_, err := locale.New("??")
	assert.Error(t, err)
}

func TestMessages_Price(t *testing.T) {
	msgs, err := locale.New("es")
	require.NoError(t, err)

	one, err := payment.NewMoney(1, "MXN")
	require.NoError(t, err)

	assert.Contains(t, msgs.Amount(one), "1")
	assert.NotContains(t, msgs.Amount(one), ".00")
	assert.Equal(t, msgs.Amount(one)+" MXN", msgs.Price(one))
}
