// Package config reads process settings from the environment, after
// merging an optional .env file.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
)

type Config struct {
	InventoryFile string        `envconfig:"INVENTORY_FILE" default:"inventory.json"`
	SalesFile     string        `envconfig:"SALES_FILE" default:"sales_history.json"`
	LogFile       string        `envconfig:"LOG_FILE" default:"store_log.txt"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	StorageDriver string        `envconfig:"STORAGE_DRIVER" default:"file"`
	DatabaseURL   string        `envconfig:"DATABASE_URL"`
	AppPort       string        `envconfig:"APP_PORT" default:"8080"`
	JWTSecret     string        `envconfig:"JWT_SECRET"`
	TokenTTL      time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	AuditBuffer   int           `envconfig:"AUDIT_BUFFER" default:"1000"`
}

// Load merges the .env file in the working directory, when present, into
// the environment and decodes it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env")
	}
	return FromEnv()
}

// FromEnv decodes the current environment without touching .env.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "decode environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the storage settings.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case DriverFile:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres storage driver")
		}
	default:
		return errors.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	return nil
}

// Level parses LogLevel, falling back to info.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
