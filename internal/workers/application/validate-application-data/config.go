package validateapplicationdata

import "time"

// Config holds worker-specific settings.
type Config struct {
	Timeout time.Duration
}

// LoadConfig returns the default configuration for the
// validate-application-data worker.
func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
