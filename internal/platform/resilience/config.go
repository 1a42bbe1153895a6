package resilience

import "time"

// Defaults sized for the replay feed: it rate-limits aggressively, so the
// breaker trips after a short failure burst and probes sparingly.
const (
	defaultFeedFailureThreshold = 5
	defaultFeedOpenTimeout      = 15 * time.Second
	defaultFeedHalfOpenProbes   = 2
)

// CircuitBreakerConfig tunes the breaker in front of the replay feed
// client. A zero value leaves the breaker disabled; Normalize only fills
// in the numeric knobs.
type CircuitBreakerConfig struct {
	Enabled          bool
	FailureThreshold int
	OpenTimeout      time.Duration
	HalfOpenMaxReq   int
}

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: defaultFeedFailureThreshold,
		OpenTimeout:      defaultFeedOpenTimeout,
		HalfOpenMaxReq:   defaultFeedHalfOpenProbes,
	}
}

// NormalizeCircuitBreakerConfig replaces out-of-range knobs with the feed
// defaults. Enabled is left as-is so callers can keep the breaker off.
func NormalizeCircuitBreakerConfig(cfg CircuitBreakerConfig) CircuitBreakerConfig {
	if cfg.FailureThreshold < 1 {
		cfg.FailureThreshold = defaultFeedFailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaultFeedOpenTimeout
	}
	if cfg.HalfOpenMaxReq < 1 {
		cfg.HalfOpenMaxReq = defaultFeedHalfOpenProbes
	}
	return cfg
}
