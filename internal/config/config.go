package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Stock update policies decide what happens to product stock when a sale or
// adjustment is edited or deleted.
const (
	// PolicyReverse undoes the stored movement before applying the new one.
	PolicyReverse = "reverse"
	// PolicyLegacy applies the new movement on top of the old one and leaves
	// deletes without a stock effect.
	PolicyLegacy = "legacy"
)

// Config holds the application configuration.
type Config struct {
	AppPort           string
	DatabaseDriver    string // postgres, mysql or sqlite
	DatabaseDSN       string
	AutoMigrate       bool
	JWTSecret         string
	AuthEnabled       bool
	TokenTTL          time.Duration
	RabbitMQURL       string // empty disables event publishing
	RabbitMQQueue     string
	LogLevel          string
	LogFormat         string
	StockUpdatePolicy string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=gudang port=5432 sslmode=disable")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("AUTH_ENABLED", true)
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "stock_movements")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("STOCK_UPDATE_POLICY", PolicyReverse)
}

// Load reads an optional .env file, then environment variables, on top of the defaults.
func Load() (*Config, error) {
	// A missing .env is fine; the environment alone is a valid source.
	_ = godotenv.Load()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	return FromViper(v)
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:           v.GetString("APP_PORT"),
		DatabaseDriver:    strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:       v.GetString("DATABASE_DSN"),
		AutoMigrate:       v.GetBool("AUTO_MIGRATE"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		AuthEnabled:       v.GetBool("AUTH_ENABLED"),
		TokenTTL:          v.GetDuration("TOKEN_TTL"),
		RabbitMQURL:       v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:     v.GetString("RABBITMQ_QUEUE"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFormat:         v.GetString("LOG_FORMAT"),
		StockUpdatePolicy: strings.ToLower(v.GetString("STOCK_UPDATE_POLICY")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that have a closed set of options.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q (want postgres, mysql or sqlite)", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("DATABASE_DSN is required")
	}
	switch c.StockUpdatePolicy {
	case PolicyReverse, PolicyLegacy:
	default:
		return fmt.Errorf("unsupported STOCK_UPDATE_POLICY %q (want %s or %s)", c.StockUpdatePolicy, PolicyReverse, PolicyLegacy)
	}
	if c.AuthEnabled && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_ENABLED is true")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}
