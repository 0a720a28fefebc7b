// internal/workers/visa/lookup-requirements/config.go
package lookuprequirements

import "time"

type Config struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  10 * time.Second,
		CacheTTL: time.Hour,
	}
}
