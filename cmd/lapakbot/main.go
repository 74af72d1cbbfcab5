// Command lapakbot runs the Telegram storefront assistant: a chatbot
// relay for product and ticket questions plus a spreadsheet-backed
// order workflow, reachable over long polling or a webhook.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/rdwinata/lapakbot/internal/audit"
	"github.com/rdwinata/lapakbot/internal/bot"
	"github.com/rdwinata/lapakbot/internal/config"
	httpapi "github.com/rdwinata/lapakbot/internal/http"
	"github.com/rdwinata/lapakbot/internal/observability"
	"github.com/rdwinata/lapakbot/internal/repo"
	"github.com/rdwinata/lapakbot/internal/services"
	"github.com/rdwinata/lapakbot/internal/session"
	"github.com/rdwinata/lapakbot/internal/sheets"
	"github.com/rdwinata/lapakbot/internal/sysutil"
)

// version is set via -ldflags at build time.
var version = "dev"

func main() {
	// Local development convenience; absence of a .env file is normal.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}
	sysutil.SetupLogger(cfg.LogLevel, cfg.LogPretty)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("opentelemetry setup failed")
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(c); err != nil {
			log.Warn().Err(err).Msg("tracer shutdown failed")
		}
	}()

	ledger, err := sheets.New(ctx, cfg.CredentialsPath, cfg.SpreadsheetID, cfg.OrderSheetName, cfg.LogSheetName)
	if err != nil {
		log.Fatal().Err(err).Msg("sheets client setup failed")
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SessionDBPath).Msg("session store setup failed")
	}

	sink := audit.NewSheetSink(ledger)
	qa := services.NewQAService(cfg.QATimeout, sink)
	orders := services.NewOrderService(ledger, sink)
	disp := services.NewDispatcher(store, qa, orders, cfg.ProductAPI, cfg.TicketAPI)

	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatal().Err(err).Msg("telegram auth failed")
	}
	log.Info().Str("bot", api.Self.UserName).Str("transport", cfg.Transport).Msg("starting")

	proc := bot.NewProcessor(api, disp)

	switch cfg.Transport {
	case config.TransportWebhook:
		runWebhook(ctx, cfg, api, proc)
	default:
		runPolling(ctx, api, proc)
	}

	log.Info().Msg("shutdown complete")
}

// newSessionStore returns the persistent store when SESSION_DB_PATH is
// configured, otherwise the in-memory one.
func newSessionStore(cfg config.Config) (session.Store, error) {
	if cfg.SessionDBPath == "" {
		return session.NewMemoryStore(), nil
	}
	db, err := repo.OpenSQLite(cfg.SessionDBPath)
	if err != nil {
		return nil, err
	}
	if err := repo.AutoMigrate(db); err != nil {
		return nil, err
	}
	log.Info().Str("path", cfg.SessionDBPath).Msg("using persistent session store")
	return repo.NewSQLiteSessionStore(db), nil
}

// runPolling clears any leftover webhook registration and consumes
// updates over long polling until the context is cancelled.
func runPolling(ctx context.Context, api *tgbotapi.BotAPI, proc *bot.Processor) {
	if _, err := api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: false}); err != nil {
		log.Warn().Err(err).Msg("webhook cleanup failed")
	}
	if err := bot.NewPoller(api, proc, 30).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("poller stopped")
	}
}

// runWebhook registers the webhook with Telegram and serves it until the
// context is cancelled, then shuts the server down gracefully.
func runWebhook(ctx context.Context, cfg config.Config, api *tgbotapi.BotAPI, proc *bot.Processor) {
	hookURL := cfg.WebhookBaseURL + "/telegram/webhook/" + cfg.TelegramToken
	wh, err := tgbotapi.NewWebhook(hookURL)
	if err != nil {
		log.Fatal().Err(err).Msg("webhook config invalid")
	}
	if _, err := api.Request(wh); err != nil {
		log.Fatal().Err(err).Msg("webhook registration failed")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.NewRouter(cfg, proc),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("webhook server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("webhook server failed")
		}
	case <-ctx.Done():
		c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(c); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
		if _, err := api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: false}); err != nil {
			log.Warn().Err(err).Msg("webhook deregistration failed")
		}
	}
}
