package scorereview

import "time"

type Config struct {
	// CacheTTL bounds how long a university rubric stays cached in Redis.
	CacheTTL time.Duration
	Timeout  time.Duration
}

func LoadConfig() *Config {
	return &Config{
		CacheTTL: 10 * time.Minute,
		Timeout:  10 * time.Second,
	}
}
