package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "3001" {
		t.Fatalf("expected port 3001, got %s", cfg.Port)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %s", cfg.TokenTTL)
	}
	if cfg.Stripe.Currency != "clp" {
		t.Fatalf("expected clp, got %s", cfg.Stripe.Currency)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
		t.Fatalf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
	if !cfg.UsingDefaultJWTSecret() || cfg.SigningSecret() != DefaultJWTSecret {
		t.Fatalf("expected fallback secret")
	}
	if cfg.OrderStore != "memory" {
		t.Fatalf("expected memory store, got %s", cfg.OrderStore)
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":             "9000",
		"JWT_SECRET":       "s3cret",
		"PAYMENT_CURRENCY": "USD",
		"CATALOG_TIMEOUT":  "2s",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9000" || cfg.SigningSecret() != "s3cret" || cfg.UsingDefaultJWTSecret() {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Stripe.Currency != "usd" {
		t.Fatalf("currency must be lower-cased, got %s", cfg.Stripe.Currency)
	}
	if cfg.Catalog.Timeout != 2*time.Second {
		t.Fatalf("expected 2s timeout, got %s", cfg.Catalog.Timeout)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"mongo store without uri": {"ORDER_STORE": "mongo"},
		"unknown store":           {"ORDER_STORE": "postgres"},
		"zero workers":            {"WEBHOOK_WORKERS": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := load(context.Background(), envconfig.MapLookuper(env)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestConfig_PrettyLogsOnlyInDevelopment(t *testing.T) {
	cases := []struct {
		env    map[string]string
		pretty bool
	}{
		{map[string]string{"LOG_PRETTY": "true"}, true},
		{map[string]string{"LOG_PRETTY": "true", "ENV": "production"}, false},
		{map[string]string{"LOG_PRETTY": "false", "ENV": "development"}, false},
		{map[string]string{}, false},
	}
	for _, tc := range cases {
		cfg, err := load(context.Background(), envconfig.MapLookuper(tc.env))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := cfg.PrettyLogs(); got != tc.pretty {
			t.Fatalf("env %v: expected pretty=%v, got %v", tc.env, tc.pretty, got)
		}
	}
}
