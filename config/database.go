package config

import (
	"strings"
	"time"
)

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"recruit"`
	Password string `env:"PASSWORD"                envDefault:"recruit"`
	Name     string `env:"NAME"                    envDefault:"recruit_board"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`

	MaxOpenConns    int           `env:"MAX_OPEN_CONNS"     envDefault:"20"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS"     envDefault:"10"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME"  envDefault:"30m"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"5m"`
}

// Sanitize keeps the pool settings consistent.
func (c *DBConfig) Sanitize() {
	if c.MaxOpenConns < 1 {
		c.MaxOpenConns = 1
	}
	if c.MaxIdleConns < 0 {
		c.MaxIdleConns = 0
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		c.MaxIdleConns = c.MaxOpenConns
	}
}

// Redis deployment modes.
const (
	RedisModeDirect   = "direct"
	RedisModeSentinel = "sentinel"
	RedisModeCluster  = "cluster"
)

// RedisConfig configures the Redis link cache. Addrs means the server in
// direct mode, the sentinels in sentinel mode and the seed nodes in cluster
// mode. A redis:// or rediss:// URL replaces Addrs and credentials in direct
// mode.
type RedisConfig struct {
	// Enabled turns on the Redis-backed link cache. The board works without it.
	Enabled          bool     `env:"ENABLED"           envDefault:"false"`
	Mode             string   `env:"MODE"              envDefault:"direct"`
	Addrs            []string `env:"ADDRS"             envDefault:"localhost:6379"`
	URL              string   `env:"URL"               envDefault:""`
	Username         string   `env:"USERNAME"          envDefault:""`
	Password         string   `env:"PASSWORD"          envDefault:""`
	DB               int      `env:"DB"                envDefault:"0"`
	MasterName       string   `env:"MASTER_NAME"       envDefault:"mymaster"`
	SentinelPassword string   `env:"SENTINEL_PASSWORD" envDefault:""`
	TLS              bool     `env:"TLS"               envDefault:"false"`
}

// Sanitize normalizes the mode and drops blank addresses.
func (c *RedisConfig) Sanitize() {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	if c.Mode == "" {
		c.Mode = RedisModeDirect
	}
	c.URL = strings.TrimSpace(c.URL)

	addrs := c.Addrs[:0]
	for _, a := range c.Addrs {
		if a = strings.TrimSpace(a); a != "" {
			addrs = append(addrs, a)
		}
	}
	c.Addrs = addrs
}
