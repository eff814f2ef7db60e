package cache

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Strategy != StrategyNetworkFirst {
		t.Errorf("expected default strategy network_first, got %v", cfg.Strategy)
	}
	if cfg.MaxAge != 5*time.Minute {
		t.Errorf("expected default MaxAge of 5m, got %v", cfg.MaxAge)
	}
	if cfg.StaleWhileRevalidate != time.Hour {
		t.Errorf("expected default StaleWhileRevalidate of 1h, got %v", cfg.StaleWhileRevalidate)
	}
	if cfg.ForceRefresh {
		t.Error("expected ForceRefresh to default to false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to validate, got %v", err)
	}
}

func TestConfig_ValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown strategy", Config{Strategy: Strategy(42), MaxAge: time.Minute, StaleWhileRevalidate: time.Hour}},
		{"negative max age", Config{Strategy: StrategyCacheFirst, MaxAge: -time.Second, StaleWhileRevalidate: time.Hour}},
		{"negative stale window", Config{Strategy: StrategyCacheFirst, MaxAge: time.Minute, StaleWhileRevalidate: -time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestParseStrategy(t *testing.T) {
	for _, name := range []string{"network_first", "cache_first", "network_only", "cache_only", "cache_with_expiry"} {
		s, err := ParseStrategy(name)
		if err != nil {
			t.Errorf("expected %q to parse, got %v", name, err)
			continue
		}
		if s.String() != name {
			t.Errorf("expected round trip for %q, got %q", name, s.String())
		}
	}

	if _, err := ParseStrategy("bogus"); err == nil {
		t.Error("expected an error for unknown strategy name")
	}
}

func TestConfig_Fresh(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	cfg := Config{
		MaxAge:               5 * time.Minute,
		StaleWhileRevalidate: time.Hour,
	}

	entryAged := func(age time.Duration) Entry {
		return Entry{Key: "k", StoredAt: now.Add(-age).UnixMilli(), MaxAgeSec: 300}
	}

	tests := []struct {
		name     string
		strategy Strategy
		age      time.Duration
		want     bool
	}{
		{"cache_only ignores age", StrategyCacheOnly, 48 * time.Hour, true},
		{"cache_first inside stale window", StrategyCacheFirst, 30 * time.Minute, true},
		{"cache_first outside stale window", StrategyCacheFirst, 2 * time.Hour, false},
		{"cache_with_expiry inside max age", StrategyCacheWithExpiry, time.Minute, true},
		{"cache_with_expiry outside max age", StrategyCacheWithExpiry, 10 * time.Minute, false},
		{"network_first fallback uses max age", StrategyNetworkFirst, time.Minute, true},
		{"network_first fallback stale", StrategyNetworkFirst, 10 * time.Minute, false},
		{"network_only uses max age", StrategyNetworkOnly, time.Minute, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := cfg
			cfg.Strategy = tt.strategy
			if got := cfg.Fresh(entryAged(tt.age), now); got != tt.want {
				t.Errorf("Fresh() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntry_Expired(t *testing.T) {
	now := time.Now()
	entry := Entry{StoredAt: now.Add(-10 * time.Minute).UnixMilli(), MaxAgeSec: 300}

	if !entry.Expired(now) {
		t.Error("expected entry older than its own max age to be expired")
	}

	fresh := Entry{StoredAt: now.UnixMilli(), MaxAgeSec: 300}
	if fresh.Expired(now) {
		t.Error("expected a just-stored entry not to be expired")
	}
}
