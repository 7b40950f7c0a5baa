package api

import (
	"context"

	"gobooklend/internal/library/domain/entities"
)

// AuthorUseCase - каталог авторов.
type AuthorUseCase interface {
	CreateAuthor(ctx context.Context, author *entities.Author) (*entities.Author, error)
	GetAuthor(ctx context.Context, id string) (*entities.Author, error)
	ListAuthors(ctx context.Context) ([]*entities.Author, error)
	UpdateAuthor(ctx context.Context, id string, upd entities.AuthorUpdate) (*entities.Author, error)
	DeleteAuthor(ctx context.Context, id string) error
}

// BookUseCase - каталог книг.
type BookUseCase interface {
	CreateBook(ctx context.Context, book *entities.Book) (*entities.Book, error)
	GetBook(ctx context.Context, id string) (*entities.Book, error)
	ListBooks(ctx context.Context) ([]*entities.Book, error)
	UpdateBook(ctx context.Context, id string, upd entities.BookUpdate) (*entities.Book, error)
	DeleteBook(ctx context.Context, id string) error
}
