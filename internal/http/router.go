// Package httpapi wires the webhook HTTP transport (Gin) to the update
// processor. It centralizes cross-cutting concerns: tracing, correlation
// IDs, logging, panic recovery, metrics, and rate limiting.
//
// Middleware order matters:
//  1. OpenTelemetry (when enabled): trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics and the /metrics endpoint
//  7. Rate limiter keyed by client IP
package httpapi

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/rdwinata/lapakbot/internal/config"
	"github.com/rdwinata/lapakbot/internal/http/middleware"
)

// UpdateHandler consumes one decoded Telegram update. The bot processor
// implements it.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, upd tgbotapi.Update)
}

// maxUpdateBody caps webhook request bodies. Telegram updates are small;
// 1 MiB leaves generous headroom.
const maxUpdateBody = 1 << 20

// WebhookPath is the route pattern the webhook listens on. The bot token
// in the path is Telegram's standard way of authenticating the caller.
const WebhookPath = "/telegram/webhook/:token"

// NewRouter builds the Gin engine for the webhook transport: the
// Telegram webhook endpoint, /health, and /metrics, wrapped in the
// shared middleware stack.
func NewRouter(cfg config.Config, handler UpdateHandler) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	if cfg.OTEL.Enabled {
		r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxUpdateBody))
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": "not_found", "message": "route not found"})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"code": "method_not_allowed", "message": "method not allowed"})
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	r.POST(WebhookPath, webhookHandler(cfg.TelegramToken, handler))

	return r
}

// webhookHandler validates the path token and hands the decoded update
// to the processor.
//
// The update is processed before responding: Telegram retries any update
// that is not acknowledged, and the processor's own deduplication
// absorbs those retries. Server write timeouts must therefore exceed the
// slowest downstream call (the chatbot relay timeout).
func webhookHandler(token string, handler UpdateHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Constant-time compare; a wrong token gets the same 404 as an
		// unknown route.
		if subtle.ConstantTimeCompare([]byte(c.Param("token")), []byte(token)) != 1 {
			c.JSON(http.StatusNotFound, gin.H{"code": "not_found", "message": "route not found"})
			return
		}

		var upd tgbotapi.Update
		if err := json.NewDecoder(c.Request.Body).Decode(&upd); err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("malformed update payload")
			c.JSON(http.StatusBadRequest, gin.H{"code": "bad_request", "message": "malformed update"})
			return
		}

		middleware.LoggerFrom(c).Debug().Int("update_id", upd.UpdateID).Msg("webhook update")
		handler.HandleUpdate(c.Request.Context(), upd)

		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

// limitBody caps the request body size using http.MaxBytesReader;
// oversized bodies make downstream reads fail.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
