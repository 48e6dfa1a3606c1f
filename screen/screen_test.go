package screen_test

import (
	"bytes"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabriqs/paysheet/checkout"
	"github.com/fabriqs/paysheet/locale"
	"github.com/fabriqs/paysheet/payment"
	"github.com/fabriqs/paysheet/screen"
)

func newScreen(t *testing.T, out *bytes.Buffer) *screen.Screen {
	t.Helper()
	msgs, err := locale.New("es")
	require.NoError(t, err)
	return screen.New(out, msgs, true)
}

func snapshot(t *testing.T, s checkout.State) checkout.Snapshot {
	t.Helper()
	price, err := payment.NewMoney(1, "MXN")
	require.NoError(t, err)
	return checkout.Snapshot{AttemptID: "a1", State: s, View: s.View(), Price: price}
}

func TestScreen_ButtonLabel(t *testing.T) {
	s := newScreen(t, &bytes.Buffer{})

	assert.Equal(t, "Pagar con Google Pay", s.ButtonLabel(checkout.Ready.View()))
	assert.Equal(t, "Cargando...", s.ButtonLabel(checkout.Initializing.View()))
	assert.Equal(t, "Cargando...", s.ButtonLabel(checkout.Failed.View()))
	assert.Contains(t, s.ButtonLabel(checkout.Presenting.View()), "Procesando...")
}

func TestScreen_RenderReady(t *testing.T) {
	s := newScreen(t, &bytes.Buffer{})

	out := s.Render(snapshot(t, checkout.Ready))

	assert.Contains(t, out, "Comprar")
	assert.Contains(t, out, "MXN")
	assert.Contains(t, out, "[ Pagar con Google Pay ]")
	assert.Contains(t, out, "🔒 Pago seguro - Modo de prueba")
	assert.Contains(t, out, "Enter: pagar")
}

func TestScreen_RenderDisabled(t *testing.T) {
	s := newScreen(t, &bytes.Buffer{})

	out := s.Render(snapshot(t, checkout.Initializing))

	assert.Contains(t, out, "( Cargando... )")
	assert.NotContains(t, out, "Pagar con Google Pay")
	assert.NotContains(t, out, "Enter: pagar")
}

func TestScreen_AttachRendersPublishedEvents(t *testing.T) {
	var out bytes.Buffer
	s := newScreen(t, &out)

	bus := EventBus.New()
	require.NoError(t, s.Attach(bus))

	bus.Publish(checkout.TopicState, snapshot(t, checkout.Ready))
	bus.Publish(checkout.TopicNotification, checkout.Notification{
		Kind:  checkout.KindSuccess,
		Title: "¡Éxito!",
		Body:  "Tu pago de $1 MXN se procesó correctamente",
	})

	assert.Contains(t, out.String(), "Pagar con Google Pay")
	assert.Contains(t, out.String(), "✔ ¡Éxito!")
	assert.Contains(t, out.String(), "Tu pago de $1 MXN se procesó correctamente")
}

func TestScreen_Alert(t *testing.T) {
	s := newScreen(t, &bytes.Buffer{})

	assert.Contains(t, s.Alert(checkout.Notification{Kind: checkout.KindError, Title: "Error", Body: "x"}), "✖ Error")
	assert.Contains(t, s.Alert(checkout.Notification{Kind: checkout.KindInfo, Title: "Espera", Body: "x"}), "ℹ Espera")
}
