package entities

import (
	"fmt"

	"gobooklend/internal/library/domain/apperr"
)

// Role - роль сотрудника. Нулевое значение означает обычного читателя.
type Role int

// Роли пользователей.
const (
	RoleNone Role = iota
	RoleSeniorStaff
	RoleJuniorStaff
)

// Строковые представления ролей в хранилище, токенах и API.
const (
	roleNameNone        = "None"
	roleNameSeniorStaff = "SeniorStaff"
	roleNameJuniorStaff = "JuniorStaff"
)

// ErrUnknownRole - неизвестное имя роли.
var ErrUnknownRole = apperr.New(apperr.KindValidation, "unknown role")

// String возвращает имя роли.
func (r Role) String() string {
	switch r {
	case RoleSeniorStaff:
		return roleNameSeniorStaff
	case RoleJuniorStaff:
		return roleNameJuniorStaff
	default:
		return roleNameNone
	}
}

// IsStaff сообщает о наличии служебной роли.
func (r Role) IsStaff() bool {
	return r == RoleSeniorStaff || r == RoleJuniorStaff
}

// ParseRole разбирает имя роли. Пустая строка и "None" дают RoleNone.
func ParseRole(s string) (Role, error) {
	switch s {
	case "", roleNameNone:
		return RoleNone, nil
	case roleNameSeniorStaff:
		return RoleSeniorStaff, nil
	case roleNameJuniorStaff:
		return RoleJuniorStaff, nil
	default:
		return RoleNone, fmt.Errorf("%q: %w", s, ErrUnknownRole)
	}
}

// StorageValue возвращает значение для колонки users.role (NULL для читателя).
func (r Role) StorageValue() *string {
	if !r.IsStaff() {
		return nil
	}
	s := r.String()
	return &s
}

// RoleFromStorage восстанавливает роль из колонки users.role.
func RoleFromStorage(v *string) (Role, error) {
	if v == nil {
		return RoleNone, nil
	}
	return ParseRole(*v)
}
