// Package db подготавливает базу данных сервиса выдач: миграции и пул соединений.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"gobooklend/internal/library/config"
	"gobooklend/pkg/db/postgres"
	"gobooklend/pkg/logger"
)

// Константы для сообщений логгера.
const (
	LogDBInitializing    = "initializing library database"
	LogDBInitialized     = "library database initialized successfully"
	LogMigrationStarting = "starting database migrations for library service"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply library database migrations"
	ErrDBConnection = "failed to connect to library database"
	ErrGetPath      = "failed to get path"
)

// DB - соединение с базой данных сервиса выдач.
type DB struct {
	database *postgres.Database
}

// New применяет миграции из migrationsDir и открывает пул.
func New(ctx context.Context, cfg *config.PostgresConfig, migrationsDir string) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	migrationsPath, err := migrationsURL(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", ErrDBMigrations, ErrGetPath, err)
	}

	log.Info(ctx, LogMigrationStarting, zap.String("migrations_path", migrationsPath))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), migrationsPath); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), cfg.MinConn, cfg.MaxConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)
	return &DB{database: database}, nil
}

func migrationsURL(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return "file://" + dir, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return "file://" + abs, nil
}

// Close закрывает пул.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	return db.database.Ping(ctx)
}
