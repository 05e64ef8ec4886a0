package verifydocument

import "time"

// Config holds worker-specific settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// LoadConfig returns the default configuration for the verify-document
// worker.
func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
