// Package cache определяет порт key-value кэша.
package cache

import (
	"context"
	"time"
)

// Cache - строковое хранилище с временем жизни ключей.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
