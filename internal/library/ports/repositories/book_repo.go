package repositories

import (
	"context"

	"gobooklend/internal/library/domain/entities"
)

// BookRepository - хранилище книг вместе со связями книга-автор.
type BookRepository interface {
	Create(ctx context.Context, book *entities.Book) (*entities.Book, error)
	FindByID(ctx context.Context, id string) (*entities.Book, error)
	List(ctx context.Context) ([]*entities.Book, error)
	// Update сохраняет поля книги и, если book.AuthorIDs != nil, заменяет набор авторов.
	Update(ctx context.Context, book *entities.Book) (*entities.Book, error)
	Delete(ctx context.Context, id string) error
}
