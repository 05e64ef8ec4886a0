package sendnotification

import "time"

// Config holds worker-specific settings.
type Config struct {
	Timeout     time.Duration
	SenderEmail string
}

// LoadConfig returns the default configuration for the send-notification
// worker.
func LoadConfig() *Config {
	return &Config{
		Timeout:     15 * time.Second,
		SenderEmail: "no-reply@admissions.example.com",
	}
}
