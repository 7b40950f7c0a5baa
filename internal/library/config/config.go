// Package config содержит конфигурацию сервиса выдачи книг.
package config

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	pkgconfig "gobooklend/pkg/config"
	"gobooklend/pkg/logger"
)

const (
	serviceName = "library"

	// EnvConfigPath - необязательный путь к файлу конфигурации.
	EnvConfigPath = "LIBRARY_CONFIG_PATH"

	LogConfigLoaded     = "library configuration loaded"
	ErrFailedLoadConfig = "failed to load library configuration"
)

// Config представляет полную конфигурацию сервиса.
type Config struct {
	Postgres  PostgresConfig  `yaml:"postgres"`
	HTTP      HTTPConfig      `yaml:"http"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	JWT       JWTConfig       `yaml:"jwt"`
	Redis     RedisConfig     `yaml:"redis"`
	Logging   LoggingConfig   `yaml:"logging"`
	Shutdown  ShutdownConfig  `yaml:"shutdown"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
}

// Load загружает конфигурацию из файла LIBRARY_CONFIG_PATH (если задан) и переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	cfg, err := pkgconfig.Load[Config](ctx, serviceName, os.Getenv(EnvConfigPath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("grpc_address", cfg.GRPC.GetAddress()),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.Duration("access_token_ttl", cfg.JWT.AccessTokenTTL),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout),
		zap.Bool("bootstrap_admin", cfg.Bootstrap.Enabled()))

	return cfg, nil
}
