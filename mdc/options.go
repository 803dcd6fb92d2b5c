package mdc

import "time"

// Config holds the session configuration.
type Config struct {
	// Logger is used for exchange diagnostics (optional)
	Logger Logger

	// Timeout is the window for one complete response to arrive
	Timeout time.Duration

	// Retries is the number of additional attempts after a retryable
	// failure (framing, checksum, correlation, timeout)
	Retries int

	// DrainWindow bounds each read while discarding stale bytes left
	// over from an abandoned exchange
	DrainWindow time.Duration
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Timeout:     3 * time.Second,
		Retries:     2,
		DrainWindow: 50 * time.Millisecond,
	}
}

// Option is a functional option for configuring the Session.
type Option func(*Config)

// WithTimeout sets the per-attempt response timeout.
//
// Example:
//
//	sess := mdc.NewSession(conn, mdc.WithTimeout(10*time.Second))
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		if timeout > 0 {
			c.Timeout = timeout
		}
	}
}

// WithRetries sets the number of retry attempts for retryable failures.
// A value of 0 disables retries entirely.
//
// Example:
//
//	sess := mdc.NewSession(conn, mdc.WithRetries(5))
func WithRetries(retries int) Option {
	return func(c *Config) {
		if retries >= 0 {
			c.Retries = retries
		}
	}
}

// WithDrainWindow sets how long the session waits for stale bytes when
// recovering the stream after an abandoned exchange.
func WithDrainWindow(window time.Duration) Option {
	return func(c *Config) {
		if window > 0 {
			c.DrainWindow = window
		}
	}
}

// WithLogger sets a logger for session diagnostics.
//
// Example:
//
//	sess := mdc.NewSession(conn, mdc.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
