package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/ports/repositories"
	"gobooklend/pkg/db/postgres"
	"gobooklend/pkg/logger"
)

const (
	bookColumns = `id, title, isbn, published_date, created_at, updated_at`

	selectBooks = `
        SELECT b.id, b.title, b.isbn, b.published_date, b.created_at, b.updated_at,
               COALESCE(array_agg(ba.author_id::text ORDER BY ba.position)
                        FILTER (WHERE ba.author_id IS NOT NULL), '{}')::text[]
        FROM books b
        LEFT JOIN book_authors ba ON ba.book_id = b.id
    `

	selectBookAuthors = `
        SELECT COALESCE(array_agg(author_id::text ORDER BY position), '{}')::text[]
        FROM book_authors
        WHERE book_id = $1
    `

	insertBookAuthors = `
        INSERT INTO book_authors (book_id, author_id, position)
        SELECT $1, a.id::uuid, a.ord
        FROM unnest($2::text[]) WITH ORDINALITY AS a(id, ord)
    `
)

// BookRepository реализует repositories.BookRepository.
type BookRepository struct {
	pool PgxPoolInterface
}

// NewBookRepository создает репозиторий книг.
func NewBookRepository(pool PgxPoolInterface) repositories.BookRepository {
	return &BookRepository{pool: pool}
}

func scanBookRow(row pgx.Row, withAuthors bool) (*entities.Book, error) {
	var b entities.Book
	dest := []interface{}{&b.ID, &b.Title, &b.ISBN, &b.PublishedDate, &b.CreatedAt, &b.UpdatedAt}
	if withAuthors {
		dest = append(dest, &b.AuthorIDs)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &b, nil
}

// translateBookError переводит ошибки сервера в доменные.
func translateBookError(err error) error {
	switch {
	case postgres.IsUniqueViolation(err):
		return entities.ErrBookISBNTaken
	case postgres.IsForeignKeyViolation(err) && postgres.Constraint(err) == "book_authors_author_id_fkey":
		return entities.ErrAuthorNotFound
	case postgres.IsForeignKeyViolation(err):
		return entities.ErrBookHasHistory
	case isMissing(err):
		return entities.ErrBookNotFound
	default:
		return nil
	}
}

// Create сохраняет книгу и ее авторов в одной транзакции.
func (r *BookRepository) Create(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "Create"))

	var created *entities.Book
	err := postgres.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		created, err = scanBookRow(tx.QueryRow(ctx,
			`INSERT INTO books (title, isbn, published_date) VALUES ($1, $2, $3) RETURNING `+bookColumns,
			book.Title, book.ISBN, book.PublishedDate,
		), false)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, insertBookAuthors, created.ID, book.AuthorIDs); err != nil {
			return err
		}
		created.AuthorIDs = append([]string(nil), book.AuthorIDs...)
		return nil
	})
	if err != nil {
		if domainErr := translateBookError(err); domainErr != nil {
			log.Debug(ctx, "book rejected by store", zap.Error(err))
			return nil, domainErr
		}
		log.Error(ctx, "failed to create book", zap.Error(err))
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return created, nil
}

// FindByID находит книгу вместе с авторами.
func (r *BookRepository) FindByID(ctx context.Context, id string) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "FindByID"))
	if !validID(id) {
		return nil, entities.ErrBookNotFound
	}

	b, err := scanBookRow(r.pool.QueryRow(ctx, selectBooks+` WHERE b.id = $1 GROUP BY b.id`, id), true)
	if err != nil {
		if isMissing(err) {
			log.Debug(ctx, "book not found", zap.String("id", id))
			return nil, entities.ErrBookNotFound
		}
		log.Error(ctx, "error finding book by id", zap.Error(err))
		return nil, fmt.Errorf("error querying book by id: %w", err)
	}
	return b, nil
}

// List возвращает все книги.
func (r *BookRepository) List(ctx context.Context) ([]*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "List"))

	rows, err := r.pool.Query(ctx, selectBooks+` GROUP BY b.id ORDER BY b.title, b.id`)
	if err != nil {
		log.Error(ctx, "failed to list books", zap.Error(err))
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := make([]*entities.Book, 0)
	for rows.Next() {
		b, err := scanBookRow(rows, true)
		if err != nil {
			log.Error(ctx, "failed to scan book", zap.Error(err))
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return books, nil
}

// Update сохраняет поля книги и при необходимости заменяет авторов.
func (r *BookRepository) Update(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "Update"))

	var updated *entities.Book
	err := postgres.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		updated, err = scanBookRow(tx.QueryRow(ctx,
			`UPDATE books SET title = $1, isbn = $2, published_date = $3 WHERE id = $4 RETURNING `+bookColumns,
			book.Title, book.ISBN, book.PublishedDate, book.ID,
		), false)
		if err != nil {
			return err
		}

		if book.AuthorIDs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM book_authors WHERE book_id = $1`, book.ID); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, insertBookAuthors, book.ID, book.AuthorIDs); err != nil {
				return err
			}
		}
		return tx.QueryRow(ctx, selectBookAuthors, book.ID).Scan(&updated.AuthorIDs)
	})
	if err != nil {
		if domainErr := translateBookError(err); domainErr != nil {
			return nil, domainErr
		}
		log.Error(ctx, "failed to update book", zap.Error(err))
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return updated, nil
}

// Delete удаляет книгу. Книга с историей выдач не удаляется.
func (r *BookRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "book"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		if domainErr := translateBookError(err); domainErr != nil {
			return domainErr
		}
		log.Error(ctx, "failed to delete book", zap.Error(err))
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrBookNotFound
	}
	return nil
}
