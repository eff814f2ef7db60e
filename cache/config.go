package cache

import (
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Strategy selects how the policy engine orchestrates cache and network for
// a single call.
type Strategy int

const (
	// StrategyNetworkFirst invokes the network first and falls back to a
	// valid cached entry only when the transport itself fails.
	StrategyNetworkFirst Strategy = iota

	// StrategyCacheFirst serves a valid cached entry without touching the
	// network; otherwise it invokes the network and writes through.
	StrategyCacheFirst

	// StrategyNetworkOnly always invokes the network, writing successful
	// responses through to the cache.
	StrategyNetworkOnly

	// StrategyCacheOnly never invokes the network. A miss yields a
	// NetworkError carrying ErrNoCachedData.
	StrategyCacheOnly

	// StrategyCacheWithExpiry behaves like StrategyCacheFirst with the
	// expiry-based freshness window, and supports ForceRefresh.
	StrategyCacheWithExpiry
)

var strategyNames = map[Strategy]string{
	StrategyNetworkFirst:    "network_first",
	StrategyCacheFirst:      "cache_first",
	StrategyNetworkOnly:     "network_only",
	StrategyCacheOnly:       "cache_only",
	StrategyCacheWithExpiry: "cache_with_expiry",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy resolves a strategy from its string name.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("cache: unknown strategy %q", name)
}

// Config carries the per-call cache policy. It is immutable for the duration
// of a call; callers construct one per request rather than sharing mutable
// state.
type Config struct {
	// Strategy selects the orchestration behavior.
	Strategy Strategy

	// MaxAge bounds entry freshness for the expiry-based strategies.
	// Default: 5 minutes.
	MaxAge time.Duration

	// StaleWhileRevalidate bounds entry freshness for StrategyCacheFirst.
	// Default: 1 hour.
	StaleWhileRevalidate time.Duration

	// ForceRefresh makes StrategyCacheWithExpiry skip the cache read and
	// always invoke the network.
	ForceRefresh bool
}

// DefaultConfig returns a Config populated with the default freshness
// windows and StrategyNetworkFirst.
func DefaultConfig() Config {
	return Config{
		Strategy:             StrategyNetworkFirst,
		MaxAge:               5 * time.Minute,
		StaleWhileRevalidate: time.Hour,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Strategy, validation.By(validStrategy)),
		validation.Field(&c.MaxAge, validation.By(nonNegativeDuration)),
		validation.Field(&c.StaleWhileRevalidate, validation.By(nonNegativeDuration)),
	)
}

func validStrategy(value any) error {
	s, ok := value.(Strategy)
	if !ok {
		return fmt.Errorf("must be a Strategy")
	}
	if _, known := strategyNames[s]; !known {
		return fmt.Errorf("must be a known strategy")
	}
	return nil
}

func nonNegativeDuration(value any) error {
	d, ok := value.(time.Duration)
	if !ok {
		return fmt.Errorf("must be a duration")
	}
	if d < 0 {
		return fmt.Errorf("must be non-negative")
	}
	return nil
}

// Fresh reports whether the entry is valid for this configuration at now.
// The freshness window depends on the strategy:
//
//   - StrategyCacheOnly: always valid, age is ignored
//   - StrategyCacheFirst: age within StaleWhileRevalidate
//   - all others: age within MaxAge (for the network strategies the cache is
//     only consulted as a fallback)
func (c Config) Fresh(e Entry, now time.Time) bool {
	switch c.Strategy {
	case StrategyCacheOnly:
		return true
	case StrategyCacheFirst:
		return e.Age(now) <= c.StaleWhileRevalidate
	default:
		return e.Age(now) <= c.MaxAge
	}
}
