// Package services определяет порты сервисов учетных данных.
package services

import "context"

// PasswordService хэширует и проверяет пароли.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, hash string) (bool, error)
}
