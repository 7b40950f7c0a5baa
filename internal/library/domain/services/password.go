package services

import (
	"errors"

	"gobooklend/internal/library/domain/apperr"
)

// Ошибки работы с паролями.
var (
	ErrHashingFailed   = errors.New("failed to hash password")
	ErrInvalidPassword = apperr.New(apperr.KindValidation, "invalid password")
)

// Ограничения учетных данных.
const (
	MinPasswordLength = 8
	MinUsernameLength = 3
	MaxUsernameLength = 50
)
