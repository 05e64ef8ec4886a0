package synclead

import "time"

// Config holds worker-specific settings.
type Config struct {
	Timeout time.Duration
}

// LoadConfig returns the default configuration for the sync-lead worker.
func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
