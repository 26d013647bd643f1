package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Global singleton for components that cannot take injected config (crontab reload).
var globalConfig *Config

// StorageBackend selects the persistence implementation for settings,
// instruction history and generation sessions.
type StorageBackend string

const (
	StorageMemory   StorageBackend = "memory"
	StorageRedis    StorageBackend = "redis"
	StoragePostgres StorageBackend = "postgres"
)

// Config holds all environment backed configuration for chapter-api.
type Config struct {
	// HTTP Server
	HTTPPort    int `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort int `env:"METRICS_PORT" envDefault:"9091"`

	// Storage
	StorageBackend StorageBackend `env:"STORAGE_BACKEND" envDefault:"memory"`
	RedisAddr      string         `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword  string         `env:"REDIS_PASSWORD"`
	RedisDB        int            `env:"REDIS_DB" envDefault:"0"`
	DatabaseURL    string         `env:"DATABASE_URL"`

	// Providers
	GeminiBaseURL     string `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	OpenRouterBaseURL string `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	// Attribution headers sent with every OpenRouter call.
	AppReferer string `env:"APP_REFERER" envDefault:"https://github.com/chapter-api"`
	AppTitle   string `env:"APP_TITLE" envDefault:"YouTube Chapter Generator"`

	// Catalog sync
	CatalogSyncEnabled         bool `env:"CATALOG_SYNC_ENABLED" envDefault:"true"`
	CatalogSyncIntervalMinutes int  `env:"CATALOG_SYNC_INTERVAL_MINUTES" envDefault:"60"`

	// Observability / Logging
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"120s"`
	ServiceName string        `env:"SERVICE_NAME" envDefault:"chapter-api"`
	Environment string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string        `env:"LOG_FORMAT" envDefault:"console"`

	// Features
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`

	// Internal
	EnvReloadedAt time.Time
}

// Load parses environment variables into Config and performs minimal validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.StorageBackend {
	case StorageMemory, StorageRedis, StoragePostgres:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	if cfg.StorageBackend == StoragePostgres && strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when STORAGE_BACKEND is postgres")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.EnvReloadedAt = time.Now()

	globalConfig = cfg

	return cfg, nil
}

// GetGlobal returns the global config instance for components outside the
// constructor graph. Prefer dependency injection with Load() where possible.
func GetGlobal() *Config {
	return globalConfig
}

var Version = "dev"

func IsDev() bool {
	return strings.HasPrefix(Version, "dev")
}
