package screen_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabriqs/paysheet/screen"
)

type taps struct {
	mu sync.Mutex
	n  int
}

func (t *taps) tap() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.n++
}

func (t *taps) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.n
}

func TestInput_TapsAndQuit(t *testing.T) {
	tp := &taps{}
	input := screen.NewInput(io.Discard, tp.tap)

	input.Run(context.Background(), strings.NewReader("\n\nq\n\n"))

	assert.Equal(t, 2, tp.count())
	select {
	case <-input.Done():
	default:
		t.Fatal("expected input to be done")
	}
}

func TestInput_EOFQuits(t *testing.T) {
	input := screen.NewInput(io.Discard, func() {})

	input.Run(context.Background(), strings.NewReader(""))

	_, err := input.Ask(context.Background(), "?")
	assert.ErrorIs(t, err, screen.ErrInputClosed)
}

func TestInput_AskTakesNextLine(t *testing.T) {
	tp := &taps{}
	out := &syncBuffer{}
	input := screen.NewInput(out, tp.tap)

	r, w := io.Pipe()
	defer w.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go input.Run(ctx, r)

	answers := make(chan string, 1)
	go func() {
		a, err := input.Ask(ctx, "¿Confirmar el pago? [s/N]")
		assert.NoError(t, err)
		answers <- a
	}()

	// wait until the prompt is open
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "¿Confirmar")
	}, time.Second, time.Millisecond)

	_, err := io.WriteString(w, "s\n")
	require.NoError(t, err)

	select {
	case a := <-answers:
		assert.Equal(t, "s", a)
	case <-time.After(time.Second):
		t.Fatal("no answer")
	}
	assert.Equal(t, 0, tp.count())

	_, err = io.WriteString(w, "\n")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return tp.count() == 1 }, time.Second, time.Millisecond)
}

func TestInput_QuitWhilePromptIsOpen(t *testing.T) {
	out := &syncBuffer{}
	input := screen.NewInput(out, func() {})

	r, w := io.Pipe()
	defer w.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ran := make(chan struct{})
	go func() {
		input.Run(ctx, r)
		close(ran)
	}()

	errs := make(chan error, 1)
	go func() {
		_, err := input.Ask(ctx, "¿Confirmar el pago? [s/N]")
		errs <- err
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "¿Confirmar")
	}, time.Second, time.Millisecond)

	_, err := io.WriteString(w, "q\n")
	require.NoError(t, err)

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, screen.ErrInputClosed)
	case <-time.After(time.Second):
		t.Fatal("prompt still open")
	}
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("input still running")
	}
}

func TestInput_AskHonoursContext(t *testing.T) {
	input := screen.NewInput(io.Discard, func() {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := input.Ask(ctx, "?")
	assert.ErrorIs(t, err, context.Canceled)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}
