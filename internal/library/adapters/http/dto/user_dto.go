package dto

import (
	"time"
	"unicode/utf8"

	"gobooklend/internal/library/domain/apperr"
	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/domain/services"
	"gobooklend/internal/library/ports/api"
)

// RegisterRequest - тело POST /api/users/register. Роль может назначить только SeniorStaff.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Validate проверяет учетные данные и имя роли.
func (r *RegisterRequest) Validate() apperr.FieldErrors {
	f := apperr.FieldErrors{}
	if checkRequired(f, "username", r.Username, "username is required") {
		checkUsername(f, r.Username)
	}
	if checkRequired(f, "password", r.Password, "password is required") {
		checkPassword(f, "password", r.Password, services.MinPasswordLength)
	}
	if _, err := entities.ParseRole(r.Role); err != nil {
		f.Add("role", "invalid user role")
	}
	return f
}

// RequestedRole возвращает запрошенную роль; неизвестное имя дает RoleNone.
func (r *RegisterRequest) RequestedRole() entities.Role {
	role, _ := entities.ParseRole(r.Role)
	return role
}

// ToCommand преобразует запрос в команду регистрации.
func (r *RegisterRequest) ToCommand() api.RegisterCommand {
	return api.RegisterCommand{Username: r.Username, Password: r.Password, Role: r.RequestedRole()}
}

// LoginRequest - тело POST /api/users/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate проверяет наличие учетных данных.
func (r *LoginRequest) Validate() apperr.FieldErrors {
	f := apperr.FieldErrors{}
	checkRequired(f, "username", r.Username, "username is required")
	checkRequired(f, "password", r.Password, "password is required")
	return f
}

// UpdateUserRequest - частичное изменение пользователя.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// Validate проверяет только переданные поля.
func (r *UpdateUserRequest) Validate() apperr.FieldErrors {
	f := apperr.FieldErrors{}
	if r.Username != nil {
		checkUsername(f, *r.Username)
	}
	if r.Password != nil {
		checkPassword(f, "password", *r.Password, services.MinPasswordLength)
	}
	if r.Role != nil {
		if _, err := entities.ParseRole(*r.Role); err != nil {
			f.Add("role", "invalid user role")
		}
	}
	return f
}

// ToUpdate преобразует проверенный запрос в доменное изменение.
func (r *UpdateUserRequest) ToUpdate() entities.UserUpdate {
	upd := entities.UserUpdate{Username: r.Username, Password: r.Password}
	if r.Role != nil {
		role, _ := entities.ParseRole(*r.Role)
		upd.Role = &role
	}
	return upd
}

// UserResponse - представление пользователя без хеша пароля.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse строит ответ из пользователя.
func NewUserResponse(u *entities.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// TokenResponse - выданный токен доступа.
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// NewTokenResponse строит ответ на вход.
func NewTokenResponse(t *services.AccessToken) TokenResponse {
	return TokenResponse{AccessToken: t.Token, TokenType: "Bearer", ExpiresAt: t.ExpiresAt}
}

func checkUsername(f apperr.FieldErrors, username string) {
	n := utf8.RuneCountInString(username)
	if n < services.MinUsernameLength || n > services.MaxUsernameLength {
		f.Add("username", "username must be between 3 and 50 characters")
	}
}
