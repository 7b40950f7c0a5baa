package entities

import (
	"fmt"
	"strings"
	"time"

	"gobooklend/internal/library/domain/apperr"
)

// ISBNLength - длина ISBN-13.
const ISBNLength = 13

// Ошибки домена книг.
var (
	ErrBookNotFound   = apperr.New(apperr.KindNotFound, "book not found")
	ErrBookOnLoan     = apperr.New(apperr.KindConflict, "book is currently on loan and cannot be deleted")
	ErrBookHasHistory = apperr.New(apperr.KindConflict, "book has loan history and cannot be deleted")
	ErrBookISBNTaken  = apperr.New(apperr.KindConflict, "a book with this ISBN already exists")
)

// Book - единица фонда. Одна строка соответствует одному экземпляру.
type Book struct {
	ID            string
	Title         string
	ISBN          string
	PublishedDate time.Time
	AuthorIDs     []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BookUpdate - частичное изменение книги. AuthorIDs != nil заменяет набор авторов.
type BookUpdate struct {
	Title         *string
	ISBN          *string
	PublishedDate *time.Time
	AuthorIDs     []string
}

// Apply применяет изменения к книге.
func (u BookUpdate) Apply(b *Book) {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.ISBN != nil {
		b.ISBN = *u.ISBN
	}
	if u.PublishedDate != nil {
		b.PublishedDate = DateOf(*u.PublishedDate)
	}
	if u.AuthorIDs != nil {
		b.AuthorIDs = u.AuthorIDs
	}
}

// ValidISBN проверяет, что isbn состоит ровно из 13 цифр.
func ValidISBN(isbn string) bool {
	if len(isbn) != ISBNLength {
		return false
	}
	for _, r := range isbn {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MissingAuthorsError перечисляет несуществующих авторов.
func MissingAuthorsError(ids []string) error {
	return fmt.Errorf("authors %s: %w", strings.Join(ids, ", "), ErrAuthorNotFound)
}
