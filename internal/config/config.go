// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes the bot token, the
// two chatbot endpoints, spreadsheet coordinates, transport selection, and
// ambient settings such as logging, rate limiting, and observability.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Transport selects how updates reach the bot.
const (
	TransportPolling = "polling"
	TransportWebhook = "webhook"
)

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "lapakbot")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the application.
type Config struct {
	// Bot & backends (all required)
	TelegramToken   string // TELEGRAM_TOKEN
	ProductAPI      string // CHATBOT_PRODUCT_API
	TicketAPI       string // CHATBOT_TICKET_API
	SpreadsheetID   string // SPREADSHEET_ID
	OrderSheetName  string // ORDER_SHEET_NAME
	LogSheetName    string // LOG_SHEET_NAME
	CredentialsPath string // GOOGLE_CREDENTIALS_JSON_PATH

	// Transport
	Transport      string // TRANSPORT: polling|webhook
	WebhookBaseURL string // WEBHOOK_BASE_URL (required for webhook)
	Port           string // just the number
	GinMode        string // debug|release|test

	// Server timeouts (webhook variant)
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration

	// Behavior
	QATimeout     time.Duration // per-question chatbot request timeout
	SessionDBPath string        // SQLite path; empty = in-memory sessions

	// Logging
	LogLevel  string // debug|info|warn|error|fatal|panic
	LogPretty bool   // pretty console logs in dev

	// Rate limiting (webhook endpoint)
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Observability
	OTEL OTELConfig
}

// requiredVars are the settings that have no sensible default; startup
// fails fast when any of them is missing.
var requiredVars = []string{
	"TELEGRAM_TOKEN",
	"CHATBOT_PRODUCT_API",
	"CHATBOT_TICKET_API",
	"SPREADSHEET_ID",
	"ORDER_SHEET_NAME",
	"LOG_SHEET_NAME",
	"GOOGLE_CREDENTIALS_JSON_PATH",
}

// Load reads configuration from environment variables, applies defaults,
// normalizes values, and validates the result.
func Load() (Config, error) {
	for _, k := range requiredVars {
		if strings.TrimSpace(os.Getenv(k)) == "" {
			return Config{}, fmt.Errorf("environment variable %s is required", k)
		}
	}

	cfg := Config{
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		ProductAPI:      os.Getenv("CHATBOT_PRODUCT_API"),
		TicketAPI:       os.Getenv("CHATBOT_TICKET_API"),
		SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
		OrderSheetName:  os.Getenv("ORDER_SHEET_NAME"),
		LogSheetName:    os.Getenv("LOG_SHEET_NAME"),
		CredentialsPath: os.Getenv("GOOGLE_CREDENTIALS_JSON_PATH"),

		Transport:      strings.ToLower(getenv("TRANSPORT", TransportPolling)),
		WebhookBaseURL: strings.TrimRight(getenv("WEBHOOK_BASE_URL", ""), "/"),
		Port:           getenv("PORT", "8080"),
		GinMode:        strings.ToLower(getenv("GIN_MODE", "release")),

		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		// Updates are answered inline; the write timeout must outlast the
		// chatbot relay timeout or Telegram sees truncated responses.
		WriteTimeout: getdur("WRITE_TIMEOUT", 45*time.Second),
		IdleTimeout:  getdur("IDLE_TIMEOUT", 60*time.Second),

		QATimeout:     getdur("QA_TIMEOUT", 30*time.Second),
		SessionDBPath: getenv("SESSION_DB_PATH", ""),

		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty: getbool("LOG_PRETTY", false),

		RateRPS:   getfloat("RATE_RPS", 10.0),
		RateBurst: getint("RATE_BURST", 20),

		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "lapakbot"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.Transport {
	case TransportPolling, TransportWebhook:
	default:
		return cfg, errors.New("TRANSPORT must be polling or webhook")
	}
	if cfg.Transport == TransportWebhook && cfg.WebhookBaseURL == "" {
		return cfg, errors.New("WEBHOOK_BASE_URL is required when TRANSPORT=webhook")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.QATimeout <= 0 {
		return cfg, errors.New("QA_TIMEOUT must be > 0")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
