// Package cache содержит реализацию кэша на Redis и хранилище отозванных токенов.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gobooklend/internal/library/adapters/resilience"
	"gobooklend/internal/library/config"
	"gobooklend/internal/library/ports/cache"
	"gobooklend/pkg/logger"
)

const (
	LogMethodGet    = "get"
	LogMethodSet    = "set"
	LogMethodDelete = "delete"

	ErrorFailedToConnect = "failed to connect to redis"
	ErrorFailedToGet     = "failed to get value from redis"
	ErrorFailedToSet     = "failed to set value in redis"
	ErrorFailedToDelete  = "failed to delete value from redis"
	ErrorFailedToClose   = "failed to close redis connection"

	breakerName = "redis"
)

// RedisCache реализует интерфейс Cache с использованием Redis.
type RedisCache struct {
	client     *redis.Client
	breaker    *resilience.CircuitBreaker
	defaultTTL time.Duration
}

// NewRedisCache подключается к Redis и проверяет соединение.
func NewRedisCache(ctx context.Context, cfg *config.RedisConfig) (cache.Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.GetAddress(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdle,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", ErrorFailedToConnect, err)
	}

	breaker := resilience.NewCircuitBreaker(breakerName, resilience.CircuitBreakerConfig{
		ErrorThreshold:   cfg.BreakerErrorThreshold,
		Timeout:          cfg.BreakerTimeout,
		SuccessThreshold: cfg.BreakerSuccessThreshold,
	})

	return &RedisCache{
		client:     client,
		breaker:    breaker,
		defaultTTL: cfg.DefaultTTL,
	}, nil
}

// Get получает значение по ключу; found=false, если ключа нет.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("key", key))

	var (
		value string
		found bool
	)
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		v, err := c.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		value, found = v, true
		return nil
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		return "", false, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}

	return value, found, nil
}

// Set устанавливает значение для ключа с временем жизни.
func (c *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.String("key", key))

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.client.Set(ctx, key, value, ttl).Err()
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	return nil
}

// Delete удаляет значение по ключу.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodDelete), zap.String("key", key))

	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.client.Del(ctx, key).Err()
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToDelete, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDelete, err)
	}

	return nil
}

// Close закрывает соединение с Redis.
func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
