package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"gobooklend/internal/library/ports/cache"
	svc "gobooklend/internal/library/ports/services"
)

const (
	tokenKeyPrefix = "revoked:token:"
	userKeyPrefix  = "revoked:user:"

	errCtxRevokeToken     = "revoking token"
	errCtxCheckToken      = "checking token revocation"
	errCtxRevokeUser      = "revoking user tokens"
	errCtxCheckUser       = "reading user revocation marker"
	errCtxMalformedMarker = "malformed revocation marker"
)

// TokenRevocation хранит отзывы токенов в кэше. Ключи живут не дольше
// самих токенов: запись по jti до истечения токена, пользовательская
// отметка на время жизни access токена.
type TokenRevocation struct {
	cache     cache.Cache
	accessTTL time.Duration
	now       func() time.Time
}

// NewTokenRevocation создает хранилище отзывов.
func NewTokenRevocation(c cache.Cache, accessTTL time.Duration) svc.TokenRevocation {
	return NewTokenRevocationWithClock(c, accessTTL, time.Now)
}

// NewTokenRevocationWithClock создает хранилище отзывов с заданным источником времени.
func NewTokenRevocationWithClock(c cache.Cache, accessTTL time.Duration, now func() time.Time) svc.TokenRevocation {
	return &TokenRevocation{cache: c, accessTTL: accessTTL, now: now}
}

// RevokeToken заносит токен в список отозванных до момента until.
func (r *TokenRevocation) RevokeToken(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	// Redis хранит TTL с точностью до миллисекунд
	if ttl < time.Millisecond {
		ttl = time.Millisecond
	}

	if err := r.cache.Set(ctx, tokenKeyPrefix+tokenID, strconv.FormatInt(until.Unix(), 10), ttl); err != nil {
		return fmt.Errorf("%s: %w", errCtxRevokeToken, err)
	}
	return nil
}

// IsTokenRevoked проверяет, отозван ли токен.
func (r *TokenRevocation) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	_, found, err := r.cache.Get(ctx, tokenKeyPrefix+tokenID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", errCtxCheckToken, err)
	}
	return found, nil
}

// RevokeUserTokens отзывает все токены пользователя, выпущенные раньше at.
// iat хранится с точностью до секунды, поэтому отметка округляется вверх.
func (r *TokenRevocation) RevokeUserTokens(ctx context.Context, userID string, at time.Time) error {
	marker := at.Truncate(time.Second)
	if marker.Before(at) {
		marker = marker.Add(time.Second)
	}

	if err := r.cache.Set(ctx, userKeyPrefix+userID, strconv.FormatInt(marker.Unix(), 10), r.accessTTL); err != nil {
		return fmt.Errorf("%s: %w", errCtxRevokeUser, err)
	}
	return nil
}

// UserTokensRevokedAt возвращает момент последнего массового отзыва.
func (r *TokenRevocation) UserTokensRevokedAt(ctx context.Context, userID string) (time.Time, bool, error) {
	value, found, err := r.cache.Get(ctx, userKeyPrefix+userID)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%s: %w", errCtxCheckUser, err)
	}
	if !found {
		return time.Time{}, false, nil
	}

	seconds, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%s %q: %w", errCtxMalformedMarker, value, err)
	}
	return time.Unix(seconds, 0).UTC(), true, nil
}
