package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/ports/api"
	"gobooklend/internal/library/ports/repositories"
	"gobooklend/pkg/logger"
)

const (
	methodCreateAuthor = "CreateAuthor"
	methodUpdateAuthor = "UpdateAuthor"
	methodDeleteAuthor = "DeleteAuthor"

	msgAuthorCreated  = "author created"
	msgAuthorUpdated  = "author updated"
	msgAuthorDeleted  = "author deleted"
	msgAuthorHasBooks = "author has books"
	msgErrAuthorStore = "author store operation failed"

	errCtxCreatingAuthor = "creating author"
	errCtxFindingAuthor  = "finding author"
	errCtxListingAuthors = "listing authors"
	errCtxUpdatingAuthor = "updating author"
	errCtxDeletingAuthor = "deleting author"
	errCtxCheckingBooks  = "checking author books"
)

// AuthorUseCaseImpl - CRUD авторов с запретом удаления автора, у которого есть книги.
type AuthorUseCaseImpl struct {
	authors repositories.AuthorRepository
}

// NewAuthorUseCase создает сценарии работы с авторами.
func NewAuthorUseCase(authors repositories.AuthorRepository) api.AuthorUseCase {
	return &AuthorUseCaseImpl{authors: authors}
}

// CreateAuthor создает автора.
func (u *AuthorUseCaseImpl) CreateAuthor(ctx context.Context, author *entities.Author) (*entities.Author, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateAuthor))

	created, err := u.authors.Create(ctx, author)
	if err != nil {
		logStoreError(ctx, log, msgErrAuthorStore, err)
		return nil, fmt.Errorf("%s: %w", errCtxCreatingAuthor, err)
	}

	log.Info(ctx, msgAuthorCreated, zap.String("authorID", created.ID))
	return created, nil
}

// GetAuthor возвращает автора.
func (u *AuthorUseCaseImpl) GetAuthor(ctx context.Context, id string) (*entities.Author, error) {
	a, err := u.authors.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingAuthor, err)
	}
	return a, nil
}

// ListAuthors возвращает всех авторов.
func (u *AuthorUseCaseImpl) ListAuthors(ctx context.Context) ([]*entities.Author, error) {
	list, err := u.authors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingAuthors, err)
	}
	return list, nil
}

// UpdateAuthor частично обновляет автора.
func (u *AuthorUseCaseImpl) UpdateAuthor(ctx context.Context, id string, upd entities.AuthorUpdate) (*entities.Author, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateAuthor), zap.String("authorID", id))

	a, err := u.authors.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingAuthor, err)
	}
	upd.Apply(a)

	updated, err := u.authors.Update(ctx, a)
	if err != nil {
		logStoreError(ctx, log, msgErrAuthorStore, err)
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingAuthor, err)
	}

	log.Info(ctx, msgAuthorUpdated)
	return updated, nil
}

// DeleteAuthor удаляет автора без книг.
func (u *AuthorUseCaseImpl) DeleteAuthor(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteAuthor), zap.String("authorID", id))

	if _, err := u.authors.FindByID(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", errCtxFindingAuthor, err)
	}

	hasBooks, err := u.authors.HasBooks(ctx, id)
	if err != nil {
		log.Error(ctx, msgErrAuthorStore, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCheckingBooks, err)
	}
	if hasBooks {
		log.Info(ctx, msgAuthorHasBooks)
		return fmt.Errorf("%s: %w", errCtxDeletingAuthor, entities.ErrAuthorHasBooks)
	}

	if err := u.authors.Delete(ctx, id); err != nil {
		logStoreError(ctx, log, msgErrAuthorStore, err)
		return fmt.Errorf("%s: %w", errCtxDeletingAuthor, err)
	}

	log.Info(ctx, msgAuthorDeleted)
	return nil
}
