package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API    APIConfig
	Store  StoreConfig
	Redis  RedisConfig
	Server ServerConfig
	Mongo  MongoConfig
}

// APIConfig points the client at the backend.
type APIConfig struct {
	BaseURL string        `env:"GIGSLY_API_BASE_URL, default=http://localhost:8081"`
	Timeout time.Duration `env:"GIGSLY_API_TIMEOUT,  default=15s"`
}

// StoreConfig selects where the session token and cached user live.
type StoreConfig struct {
	Driver    string `env:"GIGSLY_STORE_DRIVER, default=file"` // file | memory | redis
	Dir       string `env:"GIGSLY_STORE_DIR"`
	KeyPrefix string `env:"GIGSLY_STORE_PREFIX, default=gigsly:"`
}

// RedisConfig backs the redis session store and the dev backend readiness
// probe. Addr may list several comma separated nodes.
type RedisConfig struct {
	Addr       string `env:"GIGSLY_REDIS_ADDR,     default=localhost:6379"`
	Password   string `env:"GIGSLY_REDIS_PASSWORD"`
	DB         int    `env:"GIGSLY_REDIS_DB,       default=0"`
	MasterName string `env:"GIGSLY_REDIS_MASTER"`
}

// ServerConfig is only read by the development backend.
type ServerConfig struct {
	Port      string        `env:"PORT,       default=8081"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"JWT_TTL,    default=24h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=gigsly"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from the given key/value pairs instead of the
// environment.
func LoadFrom(ctx context.Context, env map[string]string) (*Config, error) {
	return load(ctx, envconfig.MapLookuper(env))
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	switch cfg.Store.Driver {
	case "file", "memory", "redis":
	default:
		return nil, fmt.Errorf("config: unknown store driver %q", cfg.Store.Driver)
	}
	return &cfg, nil
}

// IsDevelopment reports whether ENV selects the development profile.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// APIBaseURL is the backend base with the /api prefix and no trailing slash.
func (c *Config) APIBaseURL() string {
	return strings.TrimRight(c.API.BaseURL, "/") + "/api"
}

// StoreDir resolves the directory used by the file store, defaulting to
// <user config dir>/gigsly.
func (c *Config) StoreDir() (string, error) {
	if c.Store.Dir != "" {
		return c.Store.Dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve store dir: %w", err)
	}
	return filepath.Join(base, "gigsly"), nil
}
