package entities

import (
	"time"

	"gobooklend/internal/library/domain/apperr"
)

// Ошибки домена пользователей.
var (
	ErrUserNotFound       = apperr.New(apperr.KindNotFound, "user not found")
	ErrUsernameTaken      = apperr.New(apperr.KindConflict, "username is already taken")
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthorized, "invalid username or password")
)

// User - учетная запись.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserUpdate - частичное изменение пользователя. nil означает "не менять".
type UserUpdate struct {
	Username *string
	Password *string
	Role     *Role
}
