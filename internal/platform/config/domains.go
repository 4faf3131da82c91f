package config

import "time"

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	PostgresDSN       string
	MaxConnections    int32
	MinConnections    int32
	MaxConnIdleTime   time.Duration
	MaxConnLifetime   time.Duration
	HealthCheckPeriod time.Duration
}

// RateLimitConfig holds per-client request limits.
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// Enabled reports whether requests are limited at all.
func (r RateLimitConfig) Enabled() bool {
	return r.RequestsPerMinute > 0 && r.Burst > 0
}

// ChartConfig holds rendered chart settings.
type ChartConfig struct {
	Format string
	Width  int
	Height int
}

// DatabaseCfg returns the database configuration.
func (c *Config) DatabaseCfg() DatabaseConfig {
	return DatabaseConfig{
		PostgresDSN:       c.PostgresDSN,
		MaxConnections:    c.DBMaxConnections,
		MinConnections:    c.DBMinConnections,
		MaxConnIdleTime:   c.DBMaxConnIdleTime,
		MaxConnLifetime:   c.DBMaxConnLifetime,
		HealthCheckPeriod: c.DBHealthCheckPeriod,
	}
}

// RateLimitCfg returns the rate limit configuration.
func (c *Config) RateLimitCfg() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: c.RateLimitRPM,
		Burst:             c.RateLimitBurst,
	}
}

// ChartCfg returns the chart rendering configuration.
func (c *Config) ChartCfg() ChartConfig {
	return ChartConfig{
		Format: c.ChartFormat,
		Width:  c.ChartWidth,
		Height: c.ChartHeight,
	}
}
