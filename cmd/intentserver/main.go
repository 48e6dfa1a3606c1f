package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fabriqs/paysheet/config"
	"github.com/fabriqs/paysheet/intentserver"
	"github.com/fabriqs/paysheet/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load configuration")
	}

	log, flush, err := logger.New(cfg.Log, cfg.Sentry, nil)
	if err != nil {
		logrus.WithError(err).Fatal("set up logging")
	}
	defer flush()

	price, err := cfg.Purchase.Price()
	if err != nil {
		log.WithError(err).Fatal("purchase price")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider := intentserver.NewMemoryProvider(logger.Component(log, "provider"))
	if _, err := intentserver.StartSweeper(ctx, provider, cfg.Server.IntentTTL.Duration, cfg.Server.SweepInterval.Duration, logger.Component(log, "sweeper")); err != nil {
		log.WithError(err).Fatal("start intent sweeper")
	}

	e := intentserver.New(intentserver.Options{
		Provider:       provider,
		Price:          price,
		Description:    cfg.Purchase.Description,
		PublishableKey: cfg.PublishableKey,
		Log:            logger.Component(log, "http"),
	}).Echo()

	go func() {
		addr := ":" + cfg.Server.Port
		log.WithField("addr", addr).Info("intent server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("intent server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("intent server shutdown")
	}
}
