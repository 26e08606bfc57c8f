package dispatcher

// Config holds dispatcher configuration options.
type Config struct {
	// EnableMetrics enables per-action statistics collection.
	EnableMetrics bool

	// RecoverFromPanic wraps handler execution in panic recovery.
	RecoverFromPanic bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnableMetrics:    false,
		RecoverFromPanic: true,
	}
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}
