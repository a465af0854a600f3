package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/utafrali/storefront/pkg/breaker"
	pkgconfig "github.com/utafrali/storefront/pkg/config"
	"github.com/utafrali/storefront/pkg/database"
	"github.com/utafrali/storefront/pkg/tracing"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// ServiceName identifies the storefront in logs, metrics and traces.
const ServiceName = "storefront"

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Version     string `env:"SERVICE_VERSION" envDefault:"dev"`

	// HTTP server
	HTTPPort        int           `env:"STOREFRONT_HTTP_PORT" envDefault:"8010"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	RateLimitRPS    float64       `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst  int           `env:"RATE_LIMIT_BURST" envDefault:"40"`

	// Catalog
	CatalogPath     string `env:"CATALOG_PATH"`
	PageSize        int    `env:"PAGE_SIZE" envDefault:"9"`
	DefaultMaxPrice int64  `env:"DEFAULT_MAX_PRICE" envDefault:"20000"`

	// Checkout
	CheckoutDelay time.Duration `env:"CHECKOUT_DELAY" envDefault:"0s"`

	// Storage
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"data/storefront.db"`

	// Redis
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass      string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	RedisKeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"storefront:"`

	// PostgreSQL
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"storefront"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"storefront"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	PostgresMaxConns int32  `env:"POSTGRES_MAX_CONNS" envDefault:"5"`

	// Storage circuit breaker
	BreakerTimeout      time.Duration `env:"STORAGE_BREAKER_TIMEOUT" envDefault:"15s"`
	BreakerMinRequests  uint32        `env:"STORAGE_BREAKER_MIN_REQUESTS" envDefault:"5"`
	BreakerFailureRatio float64       `env:"STORAGE_BREAKER_FAILURE_RATIO" envDefault:"0.5"`

	// Kafka
	EventsEnabled bool     `env:"EVENTS_ENABLED" envDefault:"false"`
	KafkaBrokers  []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if !slices.Contains([]string{DriverSQLite, DriverMemory, DriverRedis, DriverPostgres}, c.StorageDriver) {
		return fmt.Errorf("STORAGE_DRIVER must be one of sqlite, memory, redis, postgres: got %q", c.StorageDriver)
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("PAGE_SIZE must be positive: %d", c.PageSize)
	}
	if c.DefaultMaxPrice < 0 {
		return fmt.Errorf("DEFAULT_MAX_PRICE must not be negative: %d", c.DefaultMaxPrice)
	}
	if c.CheckoutDelay < 0 {
		return fmt.Errorf("CHECKOUT_DELAY must not be negative: %s", c.CheckoutDelay)
	}
	if c.BreakerFailureRatio <= 0 || c.BreakerFailureRatio > 1 {
		return fmt.Errorf("STORAGE_BREAKER_FAILURE_RATIO must be in (0, 1]: %g", c.BreakerFailureRatio)
	}
	if c.EventsEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when EVENTS_ENABLED is set")
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0: %g", c.OTELSampleRate)
	}
	return nil
}

// Postgres returns the connection settings for the postgres driver.
func (c *Config) Postgres() database.PostgresConfig {
	return database.PostgresConfig{
		Host:     c.PostgresHost,
		Port:     c.PostgresPort,
		User:     c.PostgresUser,
		Password: c.PostgresPassword,
		DBName:   c.PostgresDB,
		SSLMode:  c.PostgresSSLMode,
		MaxConns: c.PostgresMaxConns,
	}
}

// Redis returns the connection settings for the redis driver.
func (c *Config) Redis() database.RedisConfig {
	return database.RedisConfig{Addr: c.RedisAddr, Password: c.RedisPass, DB: c.RedisDB}
}

// Breaker returns the circuit breaker settings guarding storage.
func (c *Config) Breaker() breaker.Config {
	cfg := breaker.DefaultConfig("storage-" + c.StorageDriver)
	cfg.Timeout = c.BreakerTimeout
	cfg.MinRequests = c.BreakerMinRequests
	cfg.FailureRatio = c.BreakerFailureRatio
	return cfg
}

// Tracing returns the OpenTelemetry settings.
func (c *Config) Tracing() tracing.Config {
	return tracing.Config{
		ServiceName:    ServiceName,
		ServiceVersion: c.Version,
		Environment:    c.Environment,
		OTLPEndpoint:   c.OTELEndpoint,
		SampleRate:     c.OTELSampleRate,
		Enabled:        c.OTELEnabled,
	}
}
