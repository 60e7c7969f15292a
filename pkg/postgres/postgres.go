package postgres

import (
	"context"
	"fmt"

	"transaction-management/pkg/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Conn is the subset of a pgx connection the repositories use.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Acquirer hands out a connection scoped to one caller. The returned release
// func must be called exactly once, on every exit path.
type Acquirer interface {
	Acquire(ctx context.Context) (Conn, func(), error)
	Ping(ctx context.Context) error
}

// PoolAcquirer acquires connections from a pgxpool.Pool.
type PoolAcquirer struct {
	pool *pgxpool.Pool
}

func NewPoolAcquirer(pool *pgxpool.Pool) *PoolAcquirer {
	return &PoolAcquirer{pool: pool}
}

func (a *PoolAcquirer) Acquire(ctx context.Context) (Conn, func(), error) {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, nil, err
	}
	return conn, conn.Release, nil
}

func (a *PoolAcquirer) Ping(ctx context.Context) error {
	return a.pool.Ping(ctx)
}

func NewPool(ctx context.Context, cfg *config.DatabaseConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		zap.String("host", poolConfig.ConnConfig.Host),
		zap.String("database", poolConfig.ConnConfig.Database),
	)

	return pool, nil
}
