// Package repositories определяет порты хранилища сущностей.
package repositories

import (
	"context"

	"gobooklend/internal/library/domain/entities"
)

// AuthorRepository - хранилище авторов.
type AuthorRepository interface {
	Create(ctx context.Context, author *entities.Author) (*entities.Author, error)
	FindByID(ctx context.Context, id string) (*entities.Author, error)
	// FindByIDs возвращает найденных авторов; отсутствующие id просто не попадают в результат.
	FindByIDs(ctx context.Context, ids []string) ([]*entities.Author, error)
	List(ctx context.Context) ([]*entities.Author, error)
	Update(ctx context.Context, author *entities.Author) (*entities.Author, error)
	Delete(ctx context.Context, id string) error
	HasBooks(ctx context.Context, id string) (bool, error)
}
