package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

const envProduction = "production"

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"APP_ENV,   default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	WebRoot  string `env:"WEB_ROOT,  default=web"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// SessionConfig holds the signing secret. The session lifetime is fixed at
// domain.SessionTTL and is not configurable.
type SessionConfig struct {
	Secret string `env:"JWT_SECRET, required"`
}

type MongoConfig struct {
	URI      string `env:"MONGODB_URI, required"`
	Database string `env:"MONGO_DB,    default=prizebond"`
}

// RedisConfig is optional: an empty Addr disables Redis.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// IsProduction reports whether cookies must be Secure and logs plain JSON.
func (c *Config) IsProduction() bool {
	return c.Env == envProduction
}

// Load reads configuration from environment variables using go-envconfig.
// Missing required values abort startup.
func Load() *Config {
	cfg, err := LoadWith(envconfig.OsLookuper())
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

// LoadWith reads configuration from l.
func LoadWith(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if cfg.Session.Secret == "" {
		return nil, errors.New("config: JWT_SECRET must not be empty")
	}
	return &cfg, nil
}
