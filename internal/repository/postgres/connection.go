package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dtroode/texcode-accounts/database"
)

var errNilPool = errors.New("connection pool is nil")

// Connection is the account database handle.
type Connection struct {
	*pgxpool.Pool
}

type connectionOptions struct {
	maxConns int32
	migrate  bool
}

// ConnectionOption tunes NewConnection.
type ConnectionOption func(*connectionOptions)

// WithMaxConns caps the pool size.
func WithMaxConns(n int32) ConnectionOption {
	return func(o *connectionOptions) {
		o.maxConns = n
	}
}

// WithoutMigrations skips applying the embedded schema.
func WithoutMigrations() ConnectionOption {
	return func(o *connectionOptions) {
		o.migrate = false
	}
}

// NewConnection opens a pool, checks it answers and applies pending
// migrations.
func NewConnection(ctx context.Context, dsn string, opts ...ConnectionOption) (*Connection, error) {
	o := connectionOptions{migrate: true}
	for _, opt := range opts {
		opt(&o)
	}

	conf, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	if o.maxConns > 0 {
		conf.MaxConns = o.maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to open connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	if o.migrate {
		if err := database.Migrate(ctx, dsn); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return &Connection{Pool: pool}, nil
}

// Close releases every pooled connection.
func (c *Connection) Close() error {
	if c.Pool != nil {
		c.Pool.Close()
	}
	return nil
}

// Ping reports whether the database answers.
func (c *Connection) Ping(ctx context.Context) error {
	if c.Pool == nil {
		return errNilPool
	}
	return c.Pool.Ping(ctx)
}
