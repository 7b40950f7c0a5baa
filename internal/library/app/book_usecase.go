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
	methodCreateBook = "CreateBook"
	methodUpdateBook = "UpdateBook"
	methodDeleteBook = "DeleteBook"

	msgBookCreated    = "book created"
	msgBookUpdated    = "book updated"
	msgBookDeleted    = "book deleted"
	msgBookOnLoan     = "book is currently on loan"
	msgMissingAuthors = "book references unknown authors"
	msgErrBookStore   = "book store operation failed"

	errCtxResolvingAuthors = "resolving authors"
	errCtxCreatingBook     = "creating book"
	errCtxListingBooks     = "listing books"
	errCtxUpdatingBook     = "updating book"
	errCtxDeletingBook     = "deleting book"
	errCtxCheckingLoanable = "checking whether book is out"
)

// BookUseCaseImpl - CRUD книг с проверкой авторов и запретом удаления выданной книги.
type BookUseCaseImpl struct {
	books   repositories.BookRepository
	authors repositories.AuthorRepository
	oracle  api.AvailabilityOracle
}

// NewBookUseCase создает сценарии работы с книгами.
func NewBookUseCase(
	books repositories.BookRepository,
	authors repositories.AuthorRepository,
	oracle api.AvailabilityOracle,
) api.BookUseCase {
	return &BookUseCaseImpl{books: books, authors: authors, oracle: oracle}
}

// CreateBook создает книгу. Все авторы должны существовать.
func (u *BookUseCaseImpl) CreateBook(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateBook), zap.String("isbn", book.ISBN))

	if err := u.ensureAuthors(ctx, log, book.AuthorIDs); err != nil {
		return nil, err
	}

	book.PublishedDate = entities.DateOf(book.PublishedDate)
	created, err := u.books.Create(ctx, book)
	if err != nil {
		logStoreError(ctx, log, msgErrBookStore, err)
		return nil, fmt.Errorf("%s: %w", errCtxCreatingBook, err)
	}

	log.Info(ctx, msgBookCreated, zap.String("bookID", created.ID))
	return created, nil
}

// GetBook возвращает книгу.
func (u *BookUseCaseImpl) GetBook(ctx context.Context, id string) (*entities.Book, error) {
	b, err := u.books.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingBook, err)
	}
	return b, nil
}

// ListBooks возвращает все книги.
func (u *BookUseCaseImpl) ListBooks(ctx context.Context) ([]*entities.Book, error) {
	list, err := u.books.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListingBooks, err)
	}
	return list, nil
}

// UpdateBook частично обновляет книгу; переданный список авторов заменяет текущий.
func (u *BookUseCaseImpl) UpdateBook(ctx context.Context, id string, upd entities.BookUpdate) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateBook), zap.String("bookID", id))

	b, err := u.books.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingBook, err)
	}
	if upd.AuthorIDs != nil {
		if err := u.ensureAuthors(ctx, log, upd.AuthorIDs); err != nil {
			return nil, err
		}
	}

	upd.Apply(b)
	if upd.AuthorIDs == nil {
		b.AuthorIDs = nil
	}

	updated, err := u.books.Update(ctx, b)
	if err != nil {
		logStoreError(ctx, log, msgErrBookStore, err)
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingBook, err)
	}

	log.Info(ctx, msgBookUpdated)
	return updated, nil
}

// DeleteBook удаляет книгу, если она сейчас не выдана.
func (u *BookUseCaseImpl) DeleteBook(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteBook), zap.String("bookID", id))

	if _, err := u.books.FindByID(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", errCtxFindingBook, err)
	}

	out, err := u.oracle.IsCurrentlyOut(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxCheckingLoanable, err)
	}
	if out {
		log.Info(ctx, msgBookOnLoan)
		return fmt.Errorf("%s: %w", errCtxDeletingBook, entities.ErrBookOnLoan)
	}

	if err := u.books.Delete(ctx, id); err != nil {
		logStoreError(ctx, log, msgErrBookStore, err)
		return fmt.Errorf("%s: %w", errCtxDeletingBook, err)
	}

	log.Info(ctx, msgBookDeleted)
	return nil
}

func (u *BookUseCaseImpl) ensureAuthors(ctx context.Context, log *logger.Logger, ids []string) error {
	found, err := u.authors.FindByIDs(ctx, ids)
	if err != nil {
		log.Error(ctx, msgErrBookStore, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxResolvingAuthors, err)
	}

	known := make(map[string]struct{}, len(found))
	for _, a := range found {
		known[a.ID] = struct{}{}
	}

	var missing []string
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		log.Info(ctx, msgMissingAuthors, zap.Strings("missing", missing))
		return fmt.Errorf("%s: %w", errCtxResolvingAuthors, entities.MissingAuthorsError(missing))
	}
	return nil
}
