package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ServiceConfig holds all configuration for the CMC Espace API.
type ServiceConfig struct {
	Port   string `env:"PORT" envDefault:"5050"`
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	DatabaseDSN string `env:"DB_DSN,required"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	JWTSecret string        `env:"JWT_SECRET,required"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`

	// Optional; the notifier falls back to a no-op when empty.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	// Bootstrap administrator, created at startup when the accounts table
	// is empty. Skipped when the password is unset.
	AdminName     string `env:"ADMIN_NAME" envDefault:"Admin CMC"`
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@cmc.ma"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Load reads configuration from environment variables. In development a .env
// file is loaded first if present.
func Load() (*ServiceConfig, error) {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	var cfg ServiceConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *ServiceConfig) Addr() string {
	return ":" + c.Port
}
