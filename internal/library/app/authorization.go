package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gobooklend/internal/library/domain/apperr"
	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/domain/services"
	"gobooklend/internal/library/ports/api"
	svc "gobooklend/internal/library/ports/services"
	"gobooklend/pkg/logger"
)

const (
	methodAuthorize = "Authorize"

	msgMissingCredential = "request without credential"
	msgTokenRejected     = "access token rejected"
	msgUnknownRoleClaim  = "token carries unknown role"
	msgTokenRevoked      = "revoked token presented"
	msgOperationDenied   = "operation denied for role"
	msgErrRevocation     = "failed to check token revocation"

	errCtxAuthenticating = "authenticating"
	errCtxAuthorizing    = "authorizing"
	errCtxRevocation     = "checking revocation"
)

// AuthorizationGateImpl - проверка субъекта и роли перед операцией. Состояние не меняет.
type AuthorizationGateImpl struct {
	tokens     svc.TokenService
	revocation svc.TokenRevocation
	policy     services.Policy
}

// NewAuthorizationGate создает шлюз авторизации для таблицы policy.
func NewAuthorizationGate(tokens svc.TokenService, revocation svc.TokenRevocation, policy services.Policy) api.AuthorizationGate {
	return &AuthorizationGateImpl{tokens: tokens, revocation: revocation, policy: policy}
}

// Authenticate проверяет токен и восстанавливает субъекта.
func (g *AuthorizationGateImpl) Authenticate(ctx context.Context, credential string) (*services.Principal, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthorize))

	if credential == "" {
		log.Debug(ctx, msgMissingCredential)
		return nil, fmt.Errorf("%s: %w", errCtxAuthenticating, services.ErrMissingCredential)
	}

	claims, err := g.tokens.Decode(ctx, credential)
	if err != nil {
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		if apperr.KindOf(err) != apperr.KindUnauthorized {
			err = errors.Join(services.ErrInvalidToken, err)
		}
		return nil, fmt.Errorf("%s: %w", errCtxAuthenticating, err)
	}

	role, err := entities.ParseRole(claims.Role)
	if err != nil {
		log.Warn(ctx, msgUnknownRoleClaim, zap.String("role", claims.Role))
		return nil, fmt.Errorf("%s: %w", errCtxAuthenticating, services.ErrInvalidToken)
	}

	if err := g.checkRevoked(ctx, log, claims); err != nil {
		return nil, err
	}

	return &services.Principal{
		UserID:    claims.Subject,
		Role:      role,
		TokenID:   claims.TokenID,
		IssuedAt:  claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt,
	}, nil
}

func (g *AuthorizationGateImpl) checkRevoked(ctx context.Context, log *logger.Logger, claims *services.TokenClaims) error {
	revoked, err := g.revocation.IsTokenRevoked(ctx, claims.TokenID)
	if err != nil {
		log.Error(ctx, msgErrRevocation, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevocation, err)
	}
	if revoked {
		log.Info(ctx, msgTokenRevoked, zap.String("userID", claims.Subject))
		return fmt.Errorf("%s: %w", errCtxAuthenticating, services.ErrRevokedToken)
	}

	revokedAt, found, err := g.revocation.UserTokensRevokedAt(ctx, claims.Subject)
	if err != nil {
		log.Error(ctx, msgErrRevocation, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevocation, err)
	}
	if found && claims.IssuedAt.Before(revokedAt) {
		log.Info(ctx, msgTokenRevoked, zap.String("userID", claims.Subject))
		return fmt.Errorf("%s: %w", errCtxAuthenticating, services.ErrRevokedToken)
	}
	return nil
}

// Authorize аутентифицирует субъекта и сверяет его роль с таблицей политики.
func (g *AuthorizationGateImpl) Authorize(ctx context.Context, credential string, op services.Operation) (*services.Principal, error) {
	principal, err := g.Authenticate(ctx, credential)
	if err != nil {
		return nil, err
	}

	if !g.policy.Allows(op, principal.Role) {
		logger.Log(ctx).Info(ctx, msgOperationDenied,
			zap.String("method", methodAuthorize),
			zap.String("operation", string(op)),
			zap.String("role", principal.Role.String()),
			zap.String("userID", principal.UserID))
		return nil, fmt.Errorf("%s %s: %w", errCtxAuthorizing, op, services.ErrNotPermitted)
	}
	return principal, nil
}
