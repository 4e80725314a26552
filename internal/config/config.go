// Package config loads process configuration from the environment.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"harvest-market/internal/medium"

	"github.com/sethvargo/go-envconfig"
)

// Storage drivers accepted by STORE_DRIVER
const (
	DriverMemory = "memory"
	DriverDir    = "dir"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Store StoreConfig
	Auth  AuthConfig
}

type StoreConfig struct {
	Driver    string        `env:"STORE_DRIVER,    default=memory"`
	Namespace string        `env:"STORE_NAMESPACE, default=market"`
	DataDir   string        `env:"DATA_DIR,        default=./data"`
	Timeout   time.Duration `env:"STORE_TIMEOUT,   default=5s"`

	SQLitePath string `env:"SQLITE_PATH, default=./data/market.db"`

	RedisAddr string `env:"REDIS_ADDR, default=localhost:6379"`
	RedisDB   int    `env:"REDIS_DB,   default=0"`

	MongoURI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DB,  default=harvest_market"`
}

// DefaultJWTSecret is the placeholder signing secret used when JWT_SECRET is unset
const DefaultJWTSecret = "change-me"

type AuthConfig struct {
	JWTSecret           string        `env:"JWT_SECRET, default=change-me"`
	TokenTTL            time.Duration `env:"TOKEN_TTL,  default=24h"`
	MinCredentialLength int           `env:"MIN_CREDENTIAL_LENGTH, default=6"`
}

// DefaultSecret reports whether tokens would be signed with the placeholder secret.
func (a AuthConfig) DefaultSecret() bool {
	return a.JWTSecret == DefaultJWTSecret
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through an explicit lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s StoreConfig) validate() error {
	switch s.Driver {
	case DriverMemory, DriverDir, DriverRedis, DriverSQLite, DriverMongo:
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", s.Driver)
	}
	if s.Namespace == "" {
		return fmt.Errorf("config: STORE_NAMESPACE must not be empty")
	}
	return nil
}

// OpenMedium connects the configured storage medium. The returned close
// function releases it.
func (s StoreConfig) OpenMedium(ctx context.Context) (medium.Medium, func() error, error) {
	noop := func() error { return nil }

	switch s.Driver {
	case DriverMemory:
		return medium.NewMemory(), noop, nil
	case DriverDir:
		d, err := medium.NewDir(s.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("config: open dir medium: %w", err)
		}
		return d, noop, nil
	case DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(s.SQLitePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("config: create sqlite dir: %w", err)
		}
		db, err := medium.OpenSQLite(s.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("config: open sqlite medium: %w", err)
		}
		return db, db.Close, nil
	case DriverRedis:
		r, err := medium.ConnectRedis(ctx, medium.RedisConfig{Addr: s.RedisAddr, DB: s.RedisDB, Timeout: s.Timeout})
		if err != nil {
			return nil, nil, fmt.Errorf("config: open redis medium: %w", err)
		}
		return r, r.Close, nil
	case DriverMongo:
		m, err := medium.ConnectMongo(ctx, medium.MongoConfig{URI: s.MongoURI, Database: s.MongoDatabase, Timeout: s.Timeout})
		if err != nil {
			return nil, nil, fmt.Errorf("config: open mongo medium: %w", err)
		}
		return m, func() error { return m.Close(context.Background()) }, nil
	default:
		return nil, nil, fmt.Errorf("config: unknown STORE_DRIVER %q", s.Driver)
	}
}
