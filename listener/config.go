// Package listener serves a namespace resolver over HTTP.
package listener

import (
	"errors"
	"time"
)

// DefaultAddress is the default address for the HTTP listener.
const DefaultAddress = "127.0.0.1:8780"

// DefaultRequestTimeout bounds each request when no timeout is configured.
const DefaultRequestTimeout = 30 * time.Second

// ErrEmptyAddress is returned when the address is empty.
var ErrEmptyAddress = errors.New("address must not be empty")

// ErrInvalidRateLimit is returned when the rate limit or burst is negative.
var ErrInvalidRateLimit = errors.New("rate limit must not be negative")

// ErrListenFailed is returned when the server fails to listen on the configured address.
var ErrListenFailed = errors.New("failed to listen")

// ErrShutdownFailed is returned when the server fails to shut down gracefully.
var ErrShutdownFailed = errors.New("shutdown failed")

// ErrNilHandler is returned when a nil http.Handler is provided.
var ErrNilHandler = errors.New("handler must not be nil")

// Config holds the configuration for the HTTP listener.
// A zero RateLimit disables rate limiting.
type Config struct {
	Address        string
	RequestTimeout time.Duration
	RateLimit      float64
	RateBurst      int
}

// SetDefaults sets default values for the Config.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Address == "" {
		c.Address = DefaultAddress
		changed = true
	}

	if c.RequestTimeout == 0 {
		c.RequestTimeout = DefaultRequestTimeout
		changed = true
	}

	if c.RateLimit > 0 && c.RateBurst == 0 {
		c.RateBurst = max(int(c.RateLimit), 1)
		changed = true
	}

	return changed
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}

	if c.RateLimit < 0 || c.RateBurst < 0 {
		return ErrInvalidRateLimit
	}

	return nil
}
