// internal/workers/search/apply-filters/config.go
package applyfilters

import "time"

type Config struct {
	Timeout time.Duration
	// MaxRecords caps the records returned to the process; Total still counts every match.
	MaxRecords int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    5 * time.Second,
		MaxRecords: 100,
	}
}
