package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/asaskevich/EventBus"
	"github.com/sirupsen/logrus"

	"github.com/fabriqs/paysheet/checkout"
	"github.com/fabriqs/paysheet/config"
	"github.com/fabriqs/paysheet/fetcher"
	"github.com/fabriqs/paysheet/locale"
	"github.com/fabriqs/paysheet/logger"
	"github.com/fabriqs/paysheet/screen"
	"github.com/fabriqs/paysheet/sheet"
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

	msgs, err := locale.New(cfg.Locale)
	if err != nil {
		log.WithError(err).Fatal("load messages")
	}

	price, err := cfg.Purchase.Price()
	if err != nil {
		log.WithError(err).Fatal("purchase price")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := EventBus.New()

	var ctrl *checkout.Controller
	input := screen.NewInput(os.Stdout, func() { ctrl.RequestPayment() })

	paymentSheet := sheet.NewConsole(
		cfg.PublishableKey,
		sheet.NewHTTPConfirmer(cfg.API.URL, cfg.PublishableKey, cfg.API.Timeout.Duration),
		input,
		os.Stdout,
		msgs,
		logger.Component(log, "sheet"),
	)

	ctrl = checkout.New(checkout.Options{
		Fetcher:      fetcher.New(cfg.API.URL, cfg.API.Timeout.Duration, logger.Component(log, "fetcher")),
		Sheet:        paymentSheet,
		Merchant:     cfg.Merchant,
		Price:        price,
		Bus:          bus,
		Messages:     msgs,
		Log:          logger.Component(log, "checkout"),
		RestartDelay: cfg.Checkout.RestartDelay.Duration,
	})

	if err := screen.New(os.Stdout, msgs, cfg.Merchant.TestMode).Attach(bus); err != nil {
		log.WithError(err).Fatal("attach screen")
	}

	log.WithFields(logrus.Fields{
		"api":      cfg.API.URL,
		"merchant": cfg.Merchant.DisplayName,
		"price":    price.String(),
	}).Info("checkout starting")

	ctrl.Mount(ctx)
	go input.Run(ctx, os.Stdin)

	select {
	case <-ctx.Done():
	case <-input.Done():
	}

	ctrl.Unmount()
	log.Info("checkout closed")
}
