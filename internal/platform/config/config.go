package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	apperrors "github.com/lueurxax/launch-dashboard/internal/core/errors"
)

// Dataset sources.
const (
	DatasetSourceCSV      = "csv"
	DatasetSourcePostgres = "postgres"
)

// Chart image formats.
const (
	chartFormatSVG = "svg"
	chartFormatPNG = "png"
)

// AppEnvLocal enables human-friendly logs and pretty-printed pages.
const AppEnvLocal = "local"

const maxPort = 65535

type Config struct {
	AppEnv        string `env:"APP_ENV" envDefault:"local"`
	HTTPPort      int    `env:"HTTP_PORT" envDefault:"8050"`
	DatasetPath   string `env:"DATASET_PATH" envDefault:"spacex_launch_dash.csv"`
	DatasetSource string `env:"DATASET_SOURCE" envDefault:"csv"`

	// PostgreSQL dataset source and import target
	PostgresDSN         string        `env:"POSTGRES_DSN"`
	DBMaxConnections    int32         `env:"DB_MAX_CONNECTIONS" envDefault:"4"`
	DBMinConnections    int32         `env:"DB_MIN_CONNECTIONS" envDefault:"1"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`

	// Per-client request limits, 0 disables limiting
	RateLimitRPM   int `env:"RATE_LIMIT_RPM" envDefault:"600"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"60"`

	// Rendered charts
	ChartFormat string `env:"CHART_FORMAT" envDefault:"svg"`
	ChartWidth  int    `env:"CHART_WIDTH" envDefault:"800"`
	ChartHeight int    `env:"CHART_HEIGHT" envDefault:"450"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	applyPlatformAliases(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IsLocal reports whether the app runs in a local development environment.
func (c *Config) IsLocal() bool {
	return c.AppEnv == AppEnvLocal
}

// Validate checks values the env parser cannot check on its own.
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > maxPort {
		return fmt.Errorf("%w: HTTP_PORT %d out of range", apperrors.ErrInvalidConfig, c.HTTPPort)
	}

	switch c.DatasetSource {
	case DatasetSourceCSV:
		if c.DatasetPath == "" {
			return fmt.Errorf("%w: DATASET_PATH is required for csv source", apperrors.ErrInvalidConfig)
		}
	case DatasetSourcePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("%w: POSTGRES_DSN is required for postgres source", apperrors.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown DATASET_SOURCE %q", apperrors.ErrInvalidConfig, c.DatasetSource)
	}

	switch c.ChartFormat {
	case chartFormatSVG, chartFormatPNG:
	default:
		return fmt.Errorf("%w: unknown CHART_FORMAT %q", apperrors.ErrInvalidConfig, c.ChartFormat)
	}

	if c.RateLimitRPM < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("%w: rate limits must not be negative", apperrors.ErrInvalidConfig)
	}

	return nil
}

// applyPlatformAliases maps variables set by common hosting platforms onto
// their canonical names when the canonical variable is absent.
func applyPlatformAliases(cfg *Config) {
	if !hasEnv("HTTP_PORT") {
		setIntFromEnv("PORT", &cfg.HTTPPort)
	}

	if !hasEnv("POSTGRES_DSN") {
		setStringFromEnv("DATABASE_URL", &cfg.PostgresDSN)
	}
}

func hasEnv(key string) bool {
	_, ok := os.LookupEnv(key)
	return ok
}

func setStringFromEnv(key string, target *string) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	val = strings.TrimSpace(val)
	if val == "" {
		return
	}

	*target = val
}

func setIntFromEnv(key string, target *int) {
	val, ok := os.LookupEnv(key)
	if !ok {
		return
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return
	}

	*target = parsed
}
