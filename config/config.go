package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the service configuration.
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	NATS          NATSConfig          `yaml:"nats"`
	HTTP          HTTPConfig          `yaml:"http"`
	JWT           JWTConfig           `yaml:"jwt"`
	Downtime      DowntimeConfig      `yaml:"downtime"`
	Stats         StatsConfig         `yaml:"stats"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration. An empty URL selects the in-process
// event bus.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds the API server configuration.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// JWTConfig holds admin-token signing configuration.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// DowntimeConfig holds maintenance-gate refresh configuration.
type DowntimeConfig struct {
	SourceURL      string        `yaml:"source_url"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
	RefreshTimeout time.Duration `yaml:"refresh_timeout"`
}

// StatsConfig holds aggregation policy configuration.
type StatsConfig struct {
	// ClampToZero floors per-category counters at zero when compensating
	// events would drive them negative.
	ClampToZero bool `yaml:"clamp_to_zero"`
}

// ObservabilityConfig holds configuration for observability components.
type ObservabilityConfig struct {
	MetricsAddress string `yaml:"metrics_address"`
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
}

// LoadConfig reads the yaml config file at path and applies environment
// variable overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{Addr: ":8080"},
		JWT:  JWTConfig{DefaultTTL: 15 * time.Minute},
		Downtime: DowntimeConfig{
			CacheTTL:       30 * time.Second,
			RefreshTimeout: 5 * time.Second,
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres.dsn is required")
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("DOWNTIME_SOURCE_URL"); v != "" {
		cfg.Downtime.SourceURL = v
	}
	if v := os.Getenv("DOWNTIME_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Downtime.CacheTTL = d
		}
	}
	if v := os.Getenv("STATS_CLAMP_TO_ZERO"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Stats.ClampToZero = b
		}
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
}
