package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabriqs/paysheet/config"
)

type fakeHub struct {
	events []*sentry.Event
}

func (f *fakeHub) CaptureEvent(event *sentry.Event) *sentry.EventID {
	f.events = append(f.events, event)
	return nil
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log, flush, err := New(config.Log{Level: "debug", Format: "json"}, config.Sentry{}, &buf)
	require.NoError(t, err)
	defer flush()

	Component(log, "checkout").WithField("attempt", "a1").Debug("state changed")

	assert.Contains(t, buf.String(), `"component":"checkout"`)
	assert.Contains(t, buf.String(), `"attempt":"a1"`)
	assert.Contains(t, buf.String(), `"msg":"state changed"`)
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New(config.Log{Level: "loud"}, config.Sentry{}, nil)
	assert.Error(t, err)
}

func TestSentryHook_Fire(t *testing.T) {
	hub := &fakeHub{}
	hook := &SentryHook{hub: hub}

	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	log.AddHook(hook)

	log.WithError(errors.New("boom")).WithField("attempt", "a1").Error("fetch failed")
	log.Info("ignored")

	require.Len(t, hub.events, 1)
	ev := hub.events[0]
	assert.Equal(t, "fetch failed", ev.Message)
	assert.Equal(t, sentry.LevelError, ev.Level)
	assert.Equal(t, "a1", ev.Extra["attempt"])
	assert.Equal(t, "boom", ev.Extra[logrus.ErrorKey])
	require.Len(t, ev.Exception, 1)
	assert.Equal(t, "boom", ev.Exception[0].Value)
}
