// Package screen is the terminal face of the checkout. It renders what the
// controller publishes and turns key presses into taps; it makes no decisions.
package screen

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fabriqs/paysheet/checkout"
	"github.com/fabriqs/paysheet/locale"
)

const cardWidth = 36

// Subscriber is the subscribing half of an EventBus.
type Subscriber interface {
	Subscribe(topic string, fn interface{}) error
}

type Screen struct {
	out      io.Writer
	msgs     *locale.Messages
	testMode bool

	mu sync.Mutex
}

func New(out io.Writer, msgs *locale.Messages, testMode bool) *Screen {
	return &Screen{out: out, msgs: msgs, testMode: testMode}
}

// Attach subscribes the screen to the controller's topics.
func (s *Screen) Attach(bus Subscriber) error {
	if err := bus.Subscribe(checkout.TopicState, s.OnState); err != nil {
		return err
	}
	return bus.Subscribe(checkout.TopicNotification, s.OnNotification)
}

func (s *Screen) OnState(snap checkout.Snapshot) {
	s.write(s.Render(snap))
}

func (s *Screen) OnNotification(n checkout.Notification) {
	s.write(s.Alert(n))
}

func (s *Screen) write(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	io.WriteString(s.out, text)
}

// ButtonLabel is the pay button's face for a view.
func (s *Screen) ButtonLabel(v checkout.View) string {
	switch {
	case v.Busy:
		return "⏳ " + s.msgs.Text(locale.ProcessingButton, nil)
	case v.Ready:
		return s.msgs.Text(locale.PayButton, nil)
	default:
		return s.msgs.Text(locale.LoadingButton, nil)
	}
}

func (s *Screen) Render(snap checkout.Snapshot) string {
	var b strings.Builder

	border := strings.Repeat("═", cardWidth)
	fmt.Fprintf(&b, "\n╔%s╗\n", border)
	b.WriteString(center(s.msgs.Text(locale.ScreenTitle, nil)))
	b.WriteString(center(""))
	b.WriteString(center(s.msgs.Amount(snap.Price)))
	b.WriteString(center(snap.Price.Currency))
	b.WriteString(center(""))

	label := s.ButtonLabel(snap.View)
	if snap.View.Ready {
		b.WriteString(center("[ " + label + " ]"))
	} else {
		b.WriteString(center("( " + label + " )"))
	}

	if s.testMode {
		b.WriteString(center(""))
		b.WriteString(center(s.msgs.Text(locale.SecureNote, nil)))
	}
	fmt.Fprintf(&b, "╚%s╝\n", border)

	if snap.View.Ready {
		b.WriteString(s.msgs.Text(locale.KeyHint, nil) + "\n")
	}
	return b.String()
}

func (s *Screen) Alert(n checkout.Notification) string {
	icon := "ℹ"
	switch n.Kind {
	case checkout.KindError:
		icon = "✖"
	case checkout.KindSuccess:
		icon = "✔"
	}
	return fmt.Sprintf("\n%s %s\n  %s\n", icon, n.Title, n.Body)
}

func center(text string) string {
	width := len([]rune(text))
	if width >= cardWidth {
		return "║" + text + "║\n"
	}
	left := (cardWidth - width) / 2
	right := cardWidth - width - left
	return "║" + strings.Repeat(" ", left) + text + strings.Repeat(" ", right) + "║\n"
}
