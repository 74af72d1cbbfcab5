package config

import (
	"strings"
	"testing"
	"time"
)

// setRequired populates every required variable with a placeholder.
func setRequired(t *testing.T) {
	t.Helper()
	for _, k := range requiredVars {
		t.Setenv(k, "x-"+strings.ToLower(k))
	}
}

func TestLoad_MissingRequiredVarFails(t *testing.T) {
	for _, missing := range requiredVars {
		t.Run(missing, func(t *testing.T) {
			setRequired(t)
			t.Setenv(missing, "")
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), missing) {
				t.Fatalf("expected error naming %s, got %v", missing, err)
			}
		})
	}
}

func TestLoad_DefaultsApply(t *testing.T) {
	setRequired(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Transport != TransportPolling {
		t.Errorf("default transport = %q", cfg.Transport)
	}
	if cfg.Port != "8080" {
		t.Errorf("default port = %q", cfg.Port)
	}
	if cfg.QATimeout != 30*time.Second {
		t.Errorf("default QA timeout = %v", cfg.QATimeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default log level = %q", cfg.LogLevel)
	}
	if cfg.SessionDBPath != "" {
		t.Errorf("default session db path should be empty")
	}
	if cfg.OTEL.Enabled {
		t.Errorf("OTEL should be disabled by default")
	}
}

func TestLoad_WebhookRequiresBaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("TRANSPORT", "webhook")
	if _, err := Load(); err == nil {
		t.Fatalf("webhook without WEBHOOK_BASE_URL should fail")
	}

	t.Setenv("WEBHOOK_BASE_URL", "https://bot.example.com/")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WebhookBaseURL != "https://bot.example.com" {
		t.Fatalf("base URL should drop trailing slash, got %q", cfg.WebhookBaseURL)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := map[string][2]string{
		"bad transport":   {"TRANSPORT", "carrier-pigeon"},
		"bad log level":   {"LOG_LEVEL", "loud"},
		"zero qa timeout": {"QA_TIMEOUT", "0s"},
		"negative rps":    {"RATE_RPS", "-1"},
		"zero burst":      {"RATE_BURST", "0"},
		"bad sample":      {"OTEL_TRACES_SAMPLER_ARG", "1.5"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(kv[0], kv[1])
			if _, err := Load(); err == nil {
				t.Fatalf("expected validation error for %s=%s", kv[0], kv[1])
			}
		})
	}
}

func TestLoad_NormalizesWarningAndGinMode(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("GIN_MODE", "weird")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("warning should normalize to warn, got %q", cfg.LogLevel)
	}
	if cfg.GinMode != "release" {
		t.Errorf("unknown gin mode should normalize to release, got %q", cfg.GinMode)
	}
}

func TestHelpers(t *testing.T) {
	t.Setenv("H_STR", "v")
	if getenv("H_STR", "d") != "v" || getenv("H_MISSING", "d") != "d" {
		t.Errorf("getenv")
	}
	t.Setenv("H_DUR", "90s")
	if getdur("H_DUR", time.Second) != 90*time.Second || getdur("H_NOPE", time.Second) != time.Second {
		t.Errorf("getdur")
	}
	t.Setenv("H_BOOL", "Yes")
	if !getbool("H_BOOL", false) || getbool("H_NOPE", true) != true {
		t.Errorf("getbool")
	}
	t.Setenv("H_INT", "7")
	if getint("H_INT", 1) != 7 || getint("H_NOPE", 1) != 1 {
		t.Errorf("getint")
	}
	t.Setenv("H_F", "0.5")
	if getfloat("H_F", 1) != 0.5 || getfloat("H_NOPE", 1) != 1 {
		t.Errorf("getfloat")
	}
}
