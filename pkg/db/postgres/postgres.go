// Package postgres содержит общие средства работы с PostgreSQL: пул соединений,
// миграции, транзакции и разбор ошибок сервера.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gobooklend/pkg/logger"
)

// Сообщения логгера.
const (
	LogConnecting        = "connecting to Postgres database"
	LogConnected         = "successfully connected to Postgres"
	LogClosing           = "closing Postgres connection pool"
	LogMigrationsApplied = "database migrations successfully applied"
)

// Сообщения об ошибках.
const (
	ErrParseConfig  = "failed to parse connection config"
	ErrCreatePool   = "failed to create connection pool"
	ErrPingDatabase = "failed to ping database"
)

// Database владеет пулом соединений pgx.
type Database struct {
	pool *pgxpool.Pool
}

// New открывает пул и проверяет соединение.
func New(ctx context.Context, dsn string, minConn, maxConn int) (*Database, error) {
	log := logger.Log(ctx).With(zap.Int("min_conn", minConn), zap.Int("max_conn", maxConn))
	log.Info(ctx, LogConnecting)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error(ctx, ErrParseConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrParseConfig, err)
	}
	poolCfg.MinConns = int32(minConn) //nolint:gosec
	poolCfg.MaxConns = int32(maxConn) //nolint:gosec

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		log.Error(ctx, ErrCreatePool, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreatePool, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		log.Error(ctx, ErrPingDatabase, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrPingDatabase, err)
	}

	log.Info(ctx, LogConnected)
	return &Database{pool: pool}, nil
}

// Pool возвращает пул соединений.
func (db *Database) Pool() *pgxpool.Pool {
	return db.pool
}

// Close закрывает пул. Безопасен для Database без пула.
func (db *Database) Close(ctx context.Context) {
	logger.Log(ctx).Info(ctx, LogClosing)
	if db.pool != nil {
		db.pool.Close()
	}
}

// Ping проверяет доступность базы.
func (db *Database) Ping(ctx context.Context) error {
	if db.pool == nil {
		return fmt.Errorf("%s: pool is not initialized", ErrPingDatabase)
	}
	return db.pool.Ping(ctx)
}
