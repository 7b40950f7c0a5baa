package services

import (
	"time"

	"gobooklend/internal/library/domain/apperr"
)

// Ошибки токенов доступа.
var (
	ErrInvalidToken    = apperr.New(apperr.KindUnauthorized, "invalid access token")
	ErrExpiredToken    = apperr.New(apperr.KindUnauthorized, "access token has expired")
	ErrRevokedToken    = apperr.New(apperr.KindUnauthorized, "access token has been revoked")
	ErrTokenGeneration = apperr.New(apperr.KindInternal, "failed to generate access token")
)

// TokenConfig - параметры выпуска токенов.
type TokenConfig struct {
	SecretKey []byte
	Issuer    string
	Audience  string
	AccessTTL time.Duration
}

// AccessToken - выпущенный токен.
type AccessToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

// TokenClaims - содержимое проверенного токена.
type TokenClaims struct {
	Subject   string
	Role      string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
