// Package services содержит реализации сервисов учетных данных: bcrypt для
// паролей и JWT для токенов доступа.
package services

import (
	"gobooklend/internal/library/domain/services"
	svc "gobooklend/internal/library/ports/services"
)

// ServiceFactory создает сервисы учетных данных.
type ServiceFactory struct {
	passwordService svc.PasswordService
	tokenService    svc.TokenService
}

// NewServiceFactory создает новую фабрику сервисов.
func NewServiceFactory(tokens services.TokenConfig, bcryptCost int) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService:    NewJWT(tokens),
	}
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() svc.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис для работы с токенами.
func (f *ServiceFactory) TokenService() svc.TokenService {
	return f.tokenService
}
