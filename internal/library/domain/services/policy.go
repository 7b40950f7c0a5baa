package services

import (
	"time"

	"gobooklend/internal/library/domain/apperr"
	"gobooklend/internal/library/domain/entities"
)

// Operation - защищаемая операция.
type Operation string

// Операции, подлежащие авторизации.
const (
	OpAuthorCreate Operation = "author.create"
	OpAuthorUpdate Operation = "author.update"
	OpAuthorDelete Operation = "author.delete"

	OpBookCreate Operation = "book.create"
	OpBookUpdate Operation = "book.update"
	OpBookDelete Operation = "book.delete"

	OpBorrowerCreate Operation = "borrower.create"
	OpBorrowerUpdate Operation = "borrower.update"
	OpBorrowerList   Operation = "borrower.list"
	OpBorrowerGet    Operation = "borrower.get"
	OpBorrowerDelete Operation = "borrower.delete"

	OpLoanCreate Operation = "loan.create"
	OpLoanReturn Operation = "loan.return"
	OpLoanList   Operation = "loan.list"
	OpLoanGet    Operation = "loan.get"

	OpUserGet        Operation = "user.get"
	OpUserUpdate     Operation = "user.update"
	OpUserAssignRole Operation = "user.assignRole"
	OpUserLogout     Operation = "user.logout"
)

// Ошибки авторизации.
var (
	ErrMissingCredential = apperr.New(apperr.KindUnauthorized, "missing bearer credential")
	ErrNotPermitted      = apperr.New(apperr.KindForbidden, "role is not permitted to perform this operation")
)

// Principal - аутентифицированный субъект запроса.
type Principal struct {
	UserID    string
	Role      entities.Role
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Permission описывает, кому разрешена операция.
type Permission struct {
	AnyAuthenticated bool
	Roles            []entities.Role
}

// Permits проверяет роль против разрешения.
func (p Permission) Permits(role entities.Role) bool {
	if p.AnyAuthenticated {
		return true
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Policy - таблица операция → разрешение. Операции вне таблицы запрещены.
type Policy map[Operation]Permission

var (
	seniorOnly    = Permission{Roles: []entities.Role{entities.RoleSeniorStaff}}
	anyStaff      = Permission{Roles: []entities.Role{entities.RoleSeniorStaff, entities.RoleJuniorStaff}}
	authenticated = Permission{AnyAuthenticated: true}
)

// DefaultPolicy возвращает политику доступа сервиса.
func DefaultPolicy() Policy {
	return Policy{
		OpAuthorCreate: seniorOnly,
		OpAuthorUpdate: seniorOnly,
		OpAuthorDelete: seniorOnly,

		OpBookCreate: seniorOnly,
		OpBookUpdate: seniorOnly,
		OpBookDelete: seniorOnly,

		OpBorrowerCreate: authenticated,
		OpBorrowerUpdate: authenticated,
		OpBorrowerList:   anyStaff,
		OpBorrowerGet:    anyStaff,
		OpBorrowerDelete: anyStaff,

		OpLoanCreate: authenticated,
		OpLoanReturn: authenticated,
		OpLoanList:   anyStaff,
		OpLoanGet:    anyStaff,

		OpUserGet:        seniorOnly,
		OpUserUpdate:     seniorOnly,
		OpUserAssignRole: seniorOnly,
		OpUserLogout:     authenticated,
	}
}

// Allows сообщает, разрешена ли операция op для роли role.
func (p Policy) Allows(op Operation, role entities.Role) bool {
	perm, ok := p[op]
	if !ok {
		return false
	}
	return perm.Permits(role)
}
