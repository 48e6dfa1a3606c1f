package logger

import (
	"io"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"

	"github.com/fabriqs/paysheet/config"
)

// New builds the process logger. When a Sentry DSN is configured, error level
// entries are also reported to Sentry; call the returned flush func before
// exiting.
func New(cfg config.Log, reporting config.Sentry, out io.Writer) (*logrus.Logger, func(), error) {
	log := logrus.New()
	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	flush := func() {}
	if reporting.DSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         reporting.DSN,
			Environment: reporting.Environment,
		})
		if err != nil {
			return nil, nil, err
		}
		log.AddHook(NewSentryHook(sentry.CurrentHub()))
		flush = func() { sentry.Flush(2 * time.Second) }
	}

	return log, flush, nil
}

// Component returns an entry tagged with the component name, the way every
// package in this module receives its logger.
func Component(log logrus.FieldLogger, name string) *logrus.Entry {
	return log.WithField("component", name)
}

// Discard is a logger for tests.
func Discard() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}
