package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/danylakopych/familybudgetbot/internal/amqp"
	"github.com/danylakopych/familybudgetbot/internal/backend"
	"github.com/danylakopych/familybudgetbot/internal/bot"
	"github.com/danylakopych/familybudgetbot/internal/budget"
	"github.com/danylakopych/familybudgetbot/internal/config"
	apphttp "github.com/danylakopych/familybudgetbot/internal/http"
	applog "github.com/danylakopych/familybudgetbot/internal/log"
	"github.com/danylakopych/familybudgetbot/internal/telegram"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load .env if present
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := backend.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize ledger store", applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	if store.Cleanup != nil {
		defer func() {
			if err := store.Cleanup(); err != nil {
				logger.Error("backend cleanup failed", applog.FieldError, err)
			}
		}()
	}

	opts := []bot.Option{bot.WithLogger(logger)}
	if cfg.AMQPURL != "" {
		events, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("failed to connect to AMQP", applog.FieldError, err)
			os.Exit(1)
		}
		defer events.Close()
		opts = append(opts, bot.WithEvents(events))
		logger.Info("AMQP event publishing enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	b := bot.New(store.Ledger, budget.DefaultPolicy(), cfg.GoogleSpreadsheetID, opts...)

	transport, err := telegram.New(cfg.TelegramToken, b, logger)
	if err != nil {
		logger.Error("failed to initialize telegram transport", applog.FieldError, err)
		os.Exit(1)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return transport.Run(ctx)
	})

	srv := apphttp.NewServer(cfg.Port, logger)
	g.Go(func() error {
		return srv.Run(ctx)
	})

	logger.Info("familybudgetbot started", "port", cfg.Port, applog.FieldBackend, cfg.DataBackend)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("runtime error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("stopped gracefully")
}
