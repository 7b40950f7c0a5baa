package services

import (
	"context"
	"time"

	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/domain/services"
)

// TokenService выпускает и проверяет токены доступа.
type TokenService interface {
	Issue(ctx context.Context, subject string, role entities.Role) (*services.AccessToken, error)
	Decode(ctx context.Context, token string) (*services.TokenClaims, error)
}

// TokenRevocation хранит отозванные токены.
type TokenRevocation interface {
	// RevokeToken отзывает токен tokenID до момента until.
	RevokeToken(ctx context.Context, tokenID string, until time.Time) error
	IsTokenRevoked(ctx context.Context, tokenID string) (bool, error)
	// RevokeUserTokens отзывает все токены пользователя, выпущенные раньше at.
	RevokeUserTokens(ctx context.Context, userID string, at time.Time) error
	// UserTokensRevokedAt возвращает момент последнего массового отзыва.
	UserTokensRevokedAt(ctx context.Context, userID string) (time.Time, bool, error)
}
