package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, 5, cfg.Mongo.MaxRetries)
	assert.Equal(t, 5*time.Second, cfg.Mongo.RetryInterval)
	assert.Equal(t, "profile.events", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.True(t, cfg.AllowAllOrigins())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com ,")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_RETRY_INTERVAL", "250ms")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("REDIS_CACHE_TTL", "1m")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.App.CORSOrigins)
	assert.False(t, cfg.AllowAllOrigins())
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.Equal(t, 250*time.Millisecond, cfg.Mongo.RetryInterval)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, time.Minute, cfg.Redis.CacheTTL)
}

func TestLoadConfig_PrimaryEnvWins(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("PORT", "8080")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.App.Port)
}

func TestLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	yaml := "mongo:\n  database: portfolio\napp:\n  cors_origins: [\"*\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "portfolio", cfg.Mongo.Database)
	assert.True(t, cfg.AllowAllOrigins())
}
