package recordreview

import "time"

// Config holds worker-specific settings.
type Config struct {
	Timeout time.Duration
}

// LoadConfig returns the default configuration for the record-review
// worker.
func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
