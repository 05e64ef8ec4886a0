package checkprofilecompletion

import "time"

// Config holds worker-specific settings.
type Config struct {
	Timeout time.Duration
}

// LoadConfig returns the default configuration for the
// check-profile-completion worker.
func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
