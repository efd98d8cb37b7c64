package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BGPStuffURL != "https://bgpstuff.net" {
		t.Fatalf("unexpected default url: %s", cfg.BGPStuffURL)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("unexpected default timeout: %v", cfg.RequestTimeout)
	}
	if cfg.RateLimit != 30 || cfg.RateWindow != time.Minute {
		t.Fatalf("unexpected default rate limit: %d per %v", cfg.RateLimit, cfg.RateWindow)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BGPSTUFF_URL", "https://test.bgpstuff.net")
	t.Setenv("REQUEST_TIMEOUT", "5")
	t.Setenv("RATE_LIMIT", "2")
	t.Setenv("RATE_WINDOW", "10")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BGPStuffURL != "https://test.bgpstuff.net" {
		t.Fatalf("unexpected url: %s", cfg.BGPStuffURL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.RequestTimeout)
	}
	if cfg.RateLimit != 2 || cfg.RateWindow != 10*time.Second {
		t.Fatalf("unexpected rate limit: %d per %v", cfg.RateLimit, cfg.RateWindow)
	}
}

func TestLoadRejectsInvalidDurations(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero request_timeout")
	}

	t.Setenv("REQUEST_TIMEOUT", "15")
	t.Setenv("RATE_WINDOW", "-1")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative rate_window")
	}
}
