package logger

import (
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

type capturer interface {
	CaptureEvent(event *sentry.Event) *sentry.EventID
}

// SentryHook forwards error entries to Sentry with their fields as extras.
type SentryHook struct {
	hub capturer
}

func NewSentryHook(hub *sentry.Hub) *SentryHook {
	return &SentryHook{hub: hub}
}

func (h *SentryHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel}
}

func (h *SentryHook) Fire(entry *logrus.Entry) error {
	event := sentry.NewEvent()
	event.Level = sentry.LevelError
	if entry.Level != logrus.ErrorLevel {
		event.Level = sentry.LevelFatal
	}
	event.Message = entry.Message
	event.Timestamp = entry.Time

	for k, v := range entry.Data {
		if err, ok := v.(error); ok {
			event.Extra[k] = err.Error()
			if k == logrus.ErrorKey {
				event.Exception = []sentry.Exception{{Type: "error", Value: err.Error()}}
			}
			continue
		}
		event.Extra[k] = v
	}

	h.hub.CaptureEvent(event)
	return nil
}
