package bootstrap

import (
	"context"
	"crypto/tls"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx database/sql driver
	"github.com/redis/go-redis/v9"

	"github.com/target/recruit-board/config"
	"github.com/target/recruit-board/internal/data"
)

const connectTimeout = 5 * time.Second

// DatabaseConfig contains configuration for database connections.
type DatabaseConfig struct {
	DBConfig    config.DBConfig
	RedisConfig config.RedisConfig
	Logger      *slog.Logger
}

// ConnectDB establishes a connection to the PostgreSQL database.
func ConnectDB(cfg DatabaseConfig) (*sql.DB, error) {
	// Build DSN using url.URL to safely handle special characters in credentials
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.DBConfig.User, cfg.DBConfig.Password),
		Host:   net.JoinHostPort(cfg.DBConfig.Host, strconv.Itoa(cfg.DBConfig.Port)),
		Path:   "/" + cfg.DBConfig.Name,
	}
	q := u.Query()
	q.Set("sslmode", cfg.DBConfig.SSLMode)
	u.RawQuery = q.Encode()
	dsn := u.String()

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBConfig.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DBConfig.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConfig.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.DBConfig.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close database connection: %w", closeErr))
		}
		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("database connected",
			"host", cfg.DBConfig.Host,
			"port", cfg.DBConfig.Port,
			"database", cfg.DBConfig.Name,
		)
	}

	return db, nil
}

// ConnectRedis connects the link cache client for the configured mode and
// pings it.
//
//nolint:ireturn // the mode decides between single, failover and cluster clients.
func ConnectRedis(cfg DatabaseConfig) (redis.UniversalClient, error) {
	opts, err := redisOptions(cfg.RedisConfig)
	if err != nil {
		return nil, err
	}
	client := newRedisClient(cfg.RedisConfig.Mode, opts)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if pingErr := client.Ping(ctx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("redis connected",
			"mode", cfg.RedisConfig.Mode,
			"addrs", strings.Join(opts.Addrs, ","),
			"db", cfg.RedisConfig.DB,
		)
	}

	return client, nil
}

//nolint:ireturn // the mode decides between single, failover and cluster clients.
func newRedisClient(mode string, opts *redis.UniversalOptions) redis.UniversalClient {
	switch mode {
	case config.RedisModeCluster:
		return redis.NewClusterClient(opts.Cluster())
	case config.RedisModeSentinel:
		return redis.NewFailoverClient(opts.Failover())
	default:
		return redis.NewClient(opts.Simple())
	}
}

// redisOptions turns the REDIS_* settings into client options, checking that
// the mode has what it needs.
func redisOptions(cfg config.RedisConfig) (*redis.UniversalOptions, error) {
	opts := &redis.UniversalOptions{
		Addrs:    cfg.Addrs,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	switch cfg.Mode {
	case config.RedisModeDirect, "":
		if cfg.URL != "" {
			parsed, err := redis.ParseURL(cfg.URL)
			if err != nil {
				return nil, fmt.Errorf("parse redis url: %w", err)
			}
			opts.Addrs = []string{parsed.Addr}
			opts.Username = parsed.Username
			opts.Password = parsed.Password
			opts.DB = parsed.DB
			opts.TLSConfig = parsed.TLSConfig
		}
		if len(opts.Addrs) != 1 {
			return nil, fmt.Errorf("redis direct mode needs exactly one address, got %d", len(opts.Addrs))
		}
	case config.RedisModeSentinel:
		if len(opts.Addrs) == 0 {
			return nil, errors.New("redis sentinel mode needs at least one sentinel address")
		}
		if cfg.MasterName == "" {
			return nil, errors.New("redis sentinel mode needs a master name")
		}
		opts.MasterName = cfg.MasterName
		opts.SentinelPassword = cfg.SentinelPassword
	case config.RedisModeCluster:
		if len(opts.Addrs) == 0 {
			return nil, errors.New("redis cluster mode needs at least one seed address")
		}
		if cfg.DB != 0 {
			return nil, errors.New("redis cluster mode only supports database 0")
		}
	default:
		return nil, fmt.Errorf("unsupported redis mode: %q", cfg.Mode)
	}
	return opts, nil
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if err := data.RunMigrations(ctx, db, logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if logger != nil {
		logger.InfoContext(ctx, "database migrations completed")
	}

	return nil
}
