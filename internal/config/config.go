package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/config"
)

// Cart storage backends.
const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Catalog sources.
const (
	CatalogStatic   = "static"
	CatalogPostgres = "postgres"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Currency    string `env:"CURRENCY" envDefault:"INR"`

	// HTTP server
	HTTPPort           int      `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart
	CartStorage          string `env:"CART_STORAGE" envDefault:"redis"`
	CartTTLHours         int    `env:"CART_TTL_HOURS" envDefault:"720"`
	CartSessionIdleMins  int    `env:"CART_SESSION_IDLE_MINUTES" envDefault:"30"`
	CartPersistTimeoutMs int    `env:"CART_PERSIST_TIMEOUT_MS" envDefault:"2000"`

	// Catalog
	CatalogSource string `env:"CATALOG_SOURCE" envDefault:"static"`

	// PostgreSQL, used when CatalogSource is "postgres"
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"storefront"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"storefront"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	PostgresMaxConns int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Tracing
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
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
	if c.CartStorage != StorageRedis && c.CartStorage != StorageMemory {
		return fmt.Errorf("invalid CART_STORAGE %q: want %s or %s", c.CartStorage, StorageRedis, StorageMemory)
	}
	if c.CatalogSource != CatalogStatic && c.CatalogSource != CatalogPostgres {
		return fmt.Errorf("invalid CATALOG_SOURCE %q: want %s or %s", c.CatalogSource, CatalogStatic, CatalogPostgres)
	}
	if c.CartTTLHours < 0 {
		return fmt.Errorf("CART_TTL_HOURS must not be negative: %d", c.CartTTLHours)
	}
	if c.CartSessionIdleMins < 0 {
		return fmt.Errorf("CART_SESSION_IDLE_MINUTES must not be negative: %d", c.CartSessionIdleMins)
	}
	if c.CartPersistTimeoutMs <= 0 {
		return fmt.Errorf("CART_PERSIST_TIMEOUT_MS must be positive: %d", c.CartPersistTimeoutMs)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be within [0, 1]: %v", c.OTELSampleRate)
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
	}
	return nil
}

// CartTTL returns the snapshot expiry.
func (c *Config) CartTTL() time.Duration {
	return time.Duration(c.CartTTLHours) * time.Hour
}

// SessionIdle returns how long an unused cart stays in memory.
func (c *Config) SessionIdle() time.Duration {
	return time.Duration(c.CartSessionIdleMins) * time.Minute
}

// PersistTimeout bounds a single snapshot write.
func (c *Config) PersistTimeout() time.Duration {
	return time.Duration(c.CartPersistTimeoutMs) * time.Millisecond
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
