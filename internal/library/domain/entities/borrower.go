package entities

import (
	"time"

	"gobooklend/internal/library/domain/apperr"
)

// Ошибки домена читателей.
var (
	ErrBorrowerNotFound      = apperr.New(apperr.KindNotFound, "borrower not found")
	ErrBorrowerExists        = apperr.New(apperr.KindConflict, "a borrower profile already exists for this user")
	ErrStaffCannotBorrow     = apperr.New(apperr.KindUnauthorized, "only users without a staff role can become borrowers")
	ErrBorrowerHasLoans      = apperr.New(apperr.KindConflict, "borrower has active loans and cannot be deleted")
)

// Borrower - профиль читателя, принадлежащий одному пользователю.
type Borrower struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BorrowerUpdate - частичное изменение профиля.
type BorrowerUpdate struct {
	Name  *string
	Email *string
	Phone *string
}

// Apply применяет изменения к профилю.
func (u BorrowerUpdate) Apply(b *Borrower) {
	if u.Name != nil {
		b.Name = *u.Name
	}
	if u.Email != nil {
		b.Email = *u.Email
	}
	if u.Phone != nil {
		b.Phone = *u.Phone
	}
}
