package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, int64(10<<20), cfg.HTTP.MaxUploadBytes)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
	assert.Equal(t, StorageTypeS3, cfg.Storage.Type)
	assert.Equal(t, "resumes", cfg.Storage.Bucket)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, RedisModeDirect, cfg.Redis.Mode)
	assert.Equal(t, []string{"localhost:6379"}, cfg.Redis.Addrs)
	assert.False(t, cfg.LinkCacheEnabled(), "link cache needs redis")
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("HTTP_MAX_UPLOAD_BYTES", "2048")
	t.Setenv("APP_BASE_URL", "https://board.example.com")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_MODE", " Cluster ")
	t.Setenv("REDIS_ADDRS", "r1:6379, ,r2:6379")
	t.Setenv("STORAGE_TYPE", " Local ")
	t.Setenv("STORAGE_BASE_PATH", "/var/lib/board")
	t.Setenv("STORAGE_SIGNING_KEY", "k")
	t.Setenv("RESUME_LINK_CACHE_ENABLED", "true")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, int64(2048), cfg.HTTP.MaxUploadBytes)
	assert.Equal(t, "https://board.example.com", cfg.HTTP.BaseURL)
	assert.Equal(t, "db", cfg.Postgres.Host)
	assert.Equal(t, 6543, cfg.Postgres.Port)
	assert.Equal(t, RedisModeCluster, cfg.Redis.Mode)
	assert.Equal(t, []string{"r1:6379", "r2:6379"}, cfg.Redis.Addrs)
	assert.Equal(t, StorageTypeLocal, cfg.Storage.Type)
	assert.Equal(t, "/var/lib/board", cfg.Storage.BasePath)
	assert.True(t, cfg.LinkCacheEnabled())
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name string
		in   int64
		want int64
	}{
		{"zero uses default", 0, defaultMaxUploadBytes},
		{"negative uses default", -1, defaultMaxUploadBytes},
		{"within range kept", 1024, 1024},
		{"too large capped", 1 << 40, maxMaxUploadBytes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HTTPConfig{MaxUploadBytes: tt.in}
			h.Sanitize()
			assert.Equal(t, tt.want, h.MaxUploadBytes)
		})
	}
}

func TestDBConfig_Sanitize(t *testing.T) {
	c := DBConfig{MaxOpenConns: 0, MaxIdleConns: 5}
	c.Sanitize()
	assert.Equal(t, 1, c.MaxOpenConns)
	assert.Equal(t, 1, c.MaxIdleConns)
}

func TestStorageConfig_Sanitize(t *testing.T) {
	s := StorageConfig{Type: "", Bucket: "  "}
	s.Sanitize()
	assert.Equal(t, StorageTypeS3, s.Type)
	assert.Equal(t, "resumes", s.Bucket)

	s = StorageConfig{Type: "GCS", Bucket: "b"}
	s.Sanitize()
	assert.Equal(t, "gcs", s.Type)
}

func TestDetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	cfg := AppConfig{}
	cfg.Sanitize()
	assert.True(t, cfg.IsDev)
}
