package dto

import (
	"time"

	"gobooklend/internal/library/domain/apperr"
	"gobooklend/internal/library/domain/entities"
)

const (
	maxBioLength   = 1000
	maxTitleLength = 200
)

// AuthorRequest - тело POST /api/authors.
type AuthorRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// Validate проверяет автора.
func (r *AuthorRequest) Validate() apperr.FieldErrors {
	f := apperr.FieldErrors{}
	if checkRequired(f, "name", r.Name, "name is required") {
		checkMaxLength(f, "name", r.Name, maxNameLength, "name cannot exceed 100 characters")
	}
	checkMaxLength(f, "bio", r.Bio, maxBioLength, "bio cannot exceed 1000 characters")
	return f
}

// ToEntity преобразует запрос в автора.
func (r *AuthorRequest) ToEntity() *entities.Author {
	return &entities.Author{Name: r.Name, Bio: r.Bio}
}

// UpdateAuthorRequest - частичное изменение автора.
type UpdateAuthorRequest struct {
	Name *string `json:"name,omitempty"`
	Bio  *string `json:"bio,omitempty"`
}

// Validate проверяет только переданные поля.
func (r *UpdateAuthorRequest) Validate() apperr.FieldErrors {
	f := apperr.FieldErrors{}
	if r.Name != nil && checkRequired(f, "name", *r.Name, "name cannot be empty") {
		checkMaxLength(f, "name", *r.Name, maxNameLength, "name cannot exceed 100 characters")
	}
	if r.Bio != nil {
		checkMaxLength(f, "bio", *r.Bio, maxBioLength, "bio cannot exceed 1000 characters")
	}
	return f
}

// ToUpdate преобразует запрос в доменное изменение.
func (r *UpdateAuthorRequest) ToUpdate() entities.AuthorUpdate {
	return entities.AuthorUpdate{Name: r.Name, Bio: r.Bio}
}

// AuthorResponse - представление автора.
type AuthorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewAuthorResponse строит ответ из автора.
func NewAuthorResponse(a *entities.Author) AuthorResponse {
	return AuthorResponse{ID: a.ID, Name: a.Name, Bio: a.Bio, CreatedAt: a.CreatedAt, UpdatedAt: a.UpdatedAt}
}

// NewAuthorResponses строит список ответов.
func NewAuthorResponses(authors []*entities.Author) []AuthorResponse {
	out := make([]AuthorResponse, 0, len(authors))
	for _, a := range authors {
		out = append(out, NewAuthorResponse(a))
	}
	return out
}

// BookRequest - тело POST /api/books.
type BookRequest struct {
	Title         string   `json:"title"`
	ISBN          string   `json:"isbn"`
	PublishedDate string   `json:"publishedDate"`
	AuthorIDs     []string `json:"authorIds"`
}

// Validate проверяет книгу.
func (r *BookRequest) Validate() apperr.FieldErrors {
	f := apperr.FieldErrors{}
	if checkRequired(f, "title", r.Title, "title is required") {
		checkMaxLength(f, "title", r.Title, maxTitleLength, "title cannot exceed 200 characters")
	}
	if checkRequired(f, "isbn", r.ISBN, "ISBN is required") {
		checkISBN(f, r.ISBN)
	}
	if checkRequired(f, "publishedDate", r.PublishedDate, "published date is required") {
		checkDate(f, "publishedDate", r.PublishedDate)
	}
	if len(r.AuthorIDs) == 0 {
		f.Add("authorIds", "at least one author is required")
	} else {
		checkAuthorIDs(f, r.AuthorIDs)
	}
	return f
}

// ToEntity преобразует проверенный запрос в книгу.
func (r *BookRequest) ToEntity() *entities.Book {
	published, _ := entities.ParseDate(r.PublishedDate)
	return &entities.Book{
		Title:         r.Title,
		ISBN:          r.ISBN,
		PublishedDate: published,
		AuthorIDs:     r.AuthorIDs,
	}
}

// UpdateBookRequest - частичное изменение книги. authorIds заменяет набор авторов целиком.
type UpdateBookRequest struct {
	Title         *string  `json:"title,omitempty"`
	ISBN          *string  `json:"isbn,omitempty"`
	PublishedDate *string  `json:"publishedDate,omitempty"`
	AuthorIDs     []string `json:"authorIds,omitempty"`
}

// Validate проверяет только переданные поля.
func (r *UpdateBookRequest) Validate() apperr.FieldErrors {
	f := apperr.FieldErrors{}
	if r.Title != nil && checkRequired(f, "title", *r.Title, "title cannot be empty") {
		checkMaxLength(f, "title", *r.Title, maxTitleLength, "title cannot exceed 200 characters")
	}
	if r.ISBN != nil {
		checkISBN(f, *r.ISBN)
	}
	if r.PublishedDate != nil {
		checkDate(f, "publishedDate", *r.PublishedDate)
	}
	if r.AuthorIDs != nil {
		checkAuthorIDs(f, r.AuthorIDs)
	}
	return f
}

// ToUpdate преобразует проверенный запрос в доменное изменение.
func (r *UpdateBookRequest) ToUpdate() entities.BookUpdate {
	upd := entities.BookUpdate{Title: r.Title, ISBN: r.ISBN, AuthorIDs: r.AuthorIDs}
	upd.PublishedDate = parseOptionalDate(r.PublishedDate)
	return upd
}

// BookResponse - представление книги.
type BookResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	ISBN          string    `json:"isbn"`
	PublishedDate string    `json:"publishedDate"`
	AuthorIDs     []string  `json:"authorIds"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NewBookResponse строит ответ из книги.
func NewBookResponse(b *entities.Book) BookResponse {
	authorIDs := b.AuthorIDs
	if authorIDs == nil {
		authorIDs = []string{}
	}
	return BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		ISBN:          b.ISBN,
		PublishedDate: formatDate(b.PublishedDate),
		AuthorIDs:     authorIDs,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// NewBookResponses строит список ответов.
func NewBookResponses(books []*entities.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, NewBookResponse(b))
	}
	return out
}

func checkISBN(f apperr.FieldErrors, isbn string) {
	if !entities.ValidISBN(isbn) {
		f.Add("isbn", "ISBN must be exactly 13 digits")
	}
}

func checkAuthorIDs(f apperr.FieldErrors, ids []string) {
	if len(ids) == 0 {
		f.Add("authorIds", "at least one author is required")
		return
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if blank(id) {
			f.Add("authorIds", "author ID cannot be empty")
			return
		}
		if _, dup := seen[id]; dup {
			f.Add("authorIds", "duplicate author IDs are not allowed")
			return
		}
		seen[id] = struct{}{}
	}
}
