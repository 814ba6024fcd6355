package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "http://localhost:8081/api", cfg.APIBaseURL())
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, "gigsly:", cfg.Store.KeyPrefix)
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Server.TokenTTL)
	assert.Equal(t, "gigsly", cfg.Mongo.Database)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), map[string]string{
		"ENV":                 "production",
		"GIGSLY_API_BASE_URL": "https://api.gigsly.test/",
		"GIGSLY_STORE_DRIVER": "redis",
		"GIGSLY_STORE_DIR":    "/tmp/gigsly-test",
		"GIGSLY_REDIS_DB":     "3",
		"JWT_TTL":             "90m",
	})
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "https://api.gigsly.test/api", cfg.APIBaseURL())
	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 90*time.Minute, cfg.Server.TokenTTL)

	dir, err := cfg.StoreDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/gigsly-test", dir)
}

func TestLoadFrom_UnknownDriver(t *testing.T) {
	_, err := LoadFrom(context.Background(), map[string]string{"GIGSLY_STORE_DRIVER": "cookie"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store driver")
}
