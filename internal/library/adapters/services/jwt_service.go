package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/domain/services"
	svc "gobooklend/internal/library/ports/services"
	"gobooklend/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodIssue  = "Issue"
	methodDecode = "Decode"

	msgIssuingToken   = "issuing access token"
	msgTokenIssued    = "token issued successfully"
	msgDecodingToken  = "decoding token"
	msgTokenDecoded   = "token decoded successfully"
	msgInvalidToken   = "invalid token"
	msgTokenExpired   = "token has expired"
	msgEmptySecretKey = "empty secret key provided"
	//nolint:gosec
	errSigningToken = "error signing token"

	errCtxIssuingToken    = "issuing token"
	errCtxParsingToken    = "parsing token"
	errCtxValidatingToken = "validating token"
)

// Claims - представление токена для библиотеки JWT.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует TokenService на HS256.
type ServiceJWT struct {
	config services.TokenConfig
	now    func() time.Time
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(config services.TokenConfig) svc.TokenService {
	return &ServiceJWT{config: config, now: time.Now}
}

// NewJWTWithClock - то же, что NewJWT, с подменяемыми часами.
func NewJWTWithClock(config services.TokenConfig, now func() time.Time) svc.TokenService {
	return &ServiceJWT{config: config, now: now}
}

// Issue выпускает токен доступа для субъекта с его ролью.
func (s *ServiceJWT) Issue(ctx context.Context, subject string, role entities.Role) (*services.AccessToken, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIssue), zap.String("userID", subject))
	log.Debug(ctx, msgIssuingToken)

	if len(s.config.SecretKey) == 0 {
		log.Error(ctx, msgEmptySecretKey)
		return nil, fmt.Errorf("%s: %w: empty secret key", errCtxIssuingToken, services.ErrTokenGeneration)
	}

	now := s.now().UTC().Truncate(time.Second)
	expiresAt := now.Add(s.config.AccessTTL)
	tokenID := uuid.NewString()

	claims := Claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   subject,
			Issuer:    s.config.Issuer,
			Audience:  jwt.ClaimStrings{s.config.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.config.SecretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxIssuingToken, services.ErrTokenGeneration, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.Time("expiresAt", expiresAt))
	return &services.AccessToken{Token: signed, TokenID: tokenID, ExpiresAt: expiresAt}, nil
}

// Decode проверяет подпись, срок, издателя и аудиторию токена.
func (s *ServiceJWT) Decode(ctx context.Context, tokenString string) (*services.TokenClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodDecode))
	log.Debug(ctx, msgDecodingToken)

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}
	if s.config.Audience != "" {
		opts = append(opts, jwt.WithAudience(s.config.Audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return s.config.SecretKey, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrExpiredToken)
		}
		log.Debug(ctx, msgInvalidToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxParsingToken, services.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" || claims.ID == "" {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, services.ErrInvalidToken)
	}

	log.Debug(ctx, msgTokenDecoded, zap.String("userID", claims.Subject))
	return &services.TokenClaims{
		Subject:   claims.Subject,
		Role:      claims.Role,
		TokenID:   claims.ID,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
