package database

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// DB wraps the pool behind the postgres points backend
type DB struct {
	*pgxpool.Pool
}

// PoolOptions bounds the pool and how long startup waits for Postgres
type PoolOptions struct {
	MaxConns    int32
	IdleTimeout time.Duration
	// ReadyTimeout is how long pings are retried before giving up
	ReadyTimeout time.Duration
}

// DefaultPoolOptions fits the ledger: one upsert or select per balance change
func DefaultPoolOptions() PoolOptions {
	return PoolOptions{
		MaxConns:     4,
		IdleTimeout:  5 * time.Minute,
		ReadyTimeout: 30 * time.Second,
	}
}

// NewConnection opens a pool with DefaultPoolOptions
func NewConnection(ctx context.Context, databaseURL string) (*DB, error) {
	return NewConnectionWithOptions(ctx, databaseURL, DefaultPoolOptions())
}

// NewConnectionWithOptions opens a pool and waits until Postgres answers a ping
func NewConnectionWithOptions(ctx context.Context, databaseURL string, opts PoolOptions) (*DB, error) {
	config, err := poolConfig(databaseURL, opts)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := waitForPing(ctx, pool, opts.ReadyTimeout); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

func poolConfig(databaseURL string, opts PoolOptions) (*pgxpool.Config, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// updated_at is compared across hosts
	config.ConnConfig.RuntimeParams["timezone"] = "UTC"
	if opts.MaxConns > 0 {
		config.MaxConns = opts.MaxConns
	}
	if opts.IdleTimeout > 0 {
		config.MaxConnIdleTime = opts.IdleTimeout
	}
	return config, nil
}

// waitForPing retries while Postgres is still starting next to the bot
func waitForPing(ctx context.Context, pool *pgxpool.Pool, readyTimeout time.Duration) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 250 * time.Millisecond
	policy.MaxElapsedTime = readyTimeout

	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := pool.Ping(ctx)
		if err != nil {
			log.WithFields(log.Fields{
				"attempt": attempt,
				"error":   err,
			}).Warn("Postgres not ready")
		}
		return err
	}, backoff.WithContext(policy, ctx))
}

// Close releases every pooled connection
func (db *DB) Close() {
	db.Pool.Close()
}
