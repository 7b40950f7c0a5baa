package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/ports/repositories"
	"gobooklend/pkg/db/postgres"
	"gobooklend/pkg/logger"
)

const (
	tableAuthors = "authors"

	authorColumns = `id, name, bio, created_at, updated_at`
)

// AuthorRepository реализует repositories.AuthorRepository.
type AuthorRepository struct {
	pool PgxPoolInterface
}

// NewAuthorRepository создает репозиторий авторов.
func NewAuthorRepository(pool PgxPoolInterface) repositories.AuthorRepository {
	return &AuthorRepository{pool: pool}
}

func scanAuthor(row pgx.Row) (*entities.Author, error) {
	var a entities.Author
	if err := row.Scan(&a.ID, &a.Name, &a.Bio, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create создает автора.
func (r *AuthorRepository) Create(ctx context.Context, author *entities.Author) (*entities.Author, error) {
	log := logger.Log(ctx).With(zap.String("repository", "author"), zap.String("method", "Create"))

	created, err := scanAuthor(r.pool.QueryRow(ctx,
		`INSERT INTO authors (name, bio) VALUES ($1, $2) RETURNING `+authorColumns,
		author.Name, author.Bio,
	))
	if err != nil {
		log.Error(ctx, "failed to create author", zap.Error(err))
		return nil, fmt.Errorf("failed to create author: %w", err)
	}
	return created, nil
}

// FindByID находит автора по ID.
func (r *AuthorRepository) FindByID(ctx context.Context, id string) (*entities.Author, error) {
	log := logger.Log(ctx).With(zap.String("repository", "author"), zap.String("method", "FindByID"))
	if !validID(id) {
		return nil, entities.ErrAuthorNotFound
	}

	a, err := scanAuthor(r.pool.QueryRow(ctx, `SELECT `+authorColumns+` FROM authors WHERE id = $1`, id))
	if err != nil {
		if isMissing(err) {
			log.Debug(ctx, "author not found", zap.String("id", id))
			return nil, entities.ErrAuthorNotFound
		}
		log.Error(ctx, "error finding author by id", zap.Error(err))
		return nil, fmt.Errorf("error querying author by id: %w", err)
	}
	return a, nil
}

// FindByIDs возвращает существующих авторов из списка.
func (r *AuthorRepository) FindByIDs(ctx context.Context, ids []string) ([]*entities.Author, error) {
	log := logger.Log(ctx).With(zap.String("repository", "author"), zap.String("method", "FindByIDs"))

	wanted := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		if validID(id) {
			wanted = append(wanted, id)
		}
	}
	if len(wanted) == 0 {
		return []*entities.Author{}, nil
	}

	query, args, err := builder().
		From(tableAuthors).
		Select("id", "name", "bio", "created_at", "updated_at").
		Where(goqu.C("id").In(wanted...)).
		Order(goqu.C("name").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("failed to build authors query: %w", err)
	}

	authors, err := r.collect(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "failed to find authors", zap.Error(err))
		return nil, err
	}
	return authors, nil
}

// List возвращает всех авторов.
func (r *AuthorRepository) List(ctx context.Context) ([]*entities.Author, error) {
	authors, err := r.collect(ctx, `SELECT `+authorColumns+` FROM authors ORDER BY name, id`)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to list authors", zap.String("repository", "author"), zap.Error(err))
		return nil, err
	}
	return authors, nil
}

func (r *AuthorRepository) collect(ctx context.Context, query string, args ...interface{}) ([]*entities.Author, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	authors := make([]*entities.Author, 0)
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return authors, nil
}

// Update сохраняет имя и биографию.
func (r *AuthorRepository) Update(ctx context.Context, author *entities.Author) (*entities.Author, error) {
	log := logger.Log(ctx).With(zap.String("repository", "author"), zap.String("method", "Update"))

	updated, err := scanAuthor(r.pool.QueryRow(ctx,
		`UPDATE authors SET name = $1, bio = $2 WHERE id = $3 RETURNING `+authorColumns,
		author.Name, author.Bio, author.ID,
	))
	if err != nil {
		if isMissing(err) {
			return nil, entities.ErrAuthorNotFound
		}
		log.Error(ctx, "failed to update author", zap.Error(err))
		return nil, fmt.Errorf("failed to update author: %w", err)
	}
	return updated, nil
}

// Delete удаляет автора. Связь с книгой запрещает удаление.
func (r *AuthorRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "author"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return entities.ErrAuthorHasBooks
		}
		if postgres.IsInvalidText(err) {
			return entities.ErrAuthorNotFound
		}
		log.Error(ctx, "failed to delete author", zap.Error(err))
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrAuthorNotFound
	}
	return nil
}

// HasBooks сообщает, связан ли автор хотя бы с одной книгой.
func (r *AuthorRepository) HasBooks(ctx context.Context, id string) (bool, error) {
	found, err := exists(ctx, r.pool, `SELECT EXISTS (SELECT 1 FROM book_authors WHERE author_id = $1)`, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		logger.Log(ctx).Error(ctx, "failed to check author books", zap.String("repository", "author"), zap.Error(err))
		return false, fmt.Errorf("failed to check author books: %w", err)
	}
	return found, nil
}
