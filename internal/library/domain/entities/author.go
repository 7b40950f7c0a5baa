package entities

import (
	"time"

	"gobooklend/internal/library/domain/apperr"
)

// Ошибки домена авторов.
var (
	ErrAuthorNotFound = apperr.New(apperr.KindNotFound, "author not found")
	ErrAuthorHasBooks = apperr.New(apperr.KindConflict, "author has associated books and cannot be deleted")
)

// Author - автор книг.
type Author struct {
	ID        string
	Name      string
	Bio       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuthorUpdate - частичное изменение автора.
type AuthorUpdate struct {
	Name *string
	Bio  *string
}

// Apply применяет изменения к автору.
func (u AuthorUpdate) Apply(a *Author) {
	if u.Name != nil {
		a.Name = *u.Name
	}
	if u.Bio != nil {
		a.Bio = *u.Bio
	}
}
