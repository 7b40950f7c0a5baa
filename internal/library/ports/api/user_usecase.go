package api

import (
	"context"

	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/domain/services"
)

// RegisterCommand - регистрация пользователя.
type RegisterCommand struct {
	Username string
	Password string
	Role     entities.Role
}

// UserUseCase - учетные записи и сессии.
type UserUseCase interface {
	Register(ctx context.Context, cmd RegisterCommand) (*entities.User, error)
	Login(ctx context.Context, username, password string) (*services.AccessToken, error)
	Logout(ctx context.Context, principal *services.Principal) error
	GetUser(ctx context.Context, id string) (*entities.User, error)
	UpdateUser(ctx context.Context, id string, upd entities.UserUpdate) (*entities.User, error)
	// EnsureAdmin создает пользователя SeniorStaff, если его еще нет.
	EnsureAdmin(ctx context.Context, username, password string) error
}

// AuthorizationGate проверяет право субъекта на операцию.
type AuthorizationGate interface {
	// Authenticate восстанавливает субъекта из bearer-токена.
	Authenticate(ctx context.Context, credential string) (*services.Principal, error)
	// Authorize аутентифицирует и проверяет, что роль допускает op.
	Authorize(ctx context.Context, credential string, op services.Operation) (*services.Principal, error)
}
