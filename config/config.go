package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - database.go: Database and cache configuration
//   - http.go: HTTP server configuration
//   - storage.go: Resume blob storage configuration
type AppConfig struct {
	// IsDev switches logging to the text handler.
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Resume storage configuration
	Storage StorageConfig `envPrefix:"STORAGE_"`

	// ResumeLinkCacheEnabled caches presigned download links in Redis.
	// It has no effect unless Redis is enabled.
	ResumeLinkCacheEnabled bool `env:"RESUME_LINK_CACHE_ENABLED" envDefault:"true"`
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Postgres.Sanitize()
	c.Redis.Sanitize()
	c.HTTP.Sanitize()
	c.Storage.Sanitize()

	c.detectDevMode()
}

// LinkCacheEnabled reports whether download links should be cached.
func (c *AppConfig) LinkCacheEnabled() bool {
	return c.Redis.Enabled && c.ResumeLinkCacheEnabled
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
