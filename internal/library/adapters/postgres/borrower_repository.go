package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/ports/repositories"
	"gobooklend/pkg/db/postgres"
	"gobooklend/pkg/logger"
)

const borrowerColumns = `id, user_id, name, email, phone, created_at, updated_at`

// BorrowerRepository реализует repositories.BorrowerRepository.
type BorrowerRepository struct {
	pool PgxPoolInterface
}

// NewBorrowerRepository создает репозиторий читателей.
func NewBorrowerRepository(pool PgxPoolInterface) repositories.BorrowerRepository {
	return &BorrowerRepository{pool: pool}
}

func scanBorrower(row pgx.Row) (*entities.Borrower, error) {
	var b entities.Borrower
	if err := row.Scan(&b.ID, &b.UserID, &b.Name, &b.Email, &b.Phone, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create создает профиль. Второй профиль того же пользователя отвергается
// уникальным индексом.
func (r *BorrowerRepository) Create(ctx context.Context, borrower *entities.Borrower) (*entities.Borrower, error) {
	log := logger.Log(ctx).With(zap.String("repository", "borrower"), zap.String("method", "Create"))

	created, err := scanBorrower(r.pool.QueryRow(ctx,
		`INSERT INTO borrowers (user_id, name, email, phone) VALUES ($1, $2, $3, $4) RETURNING `+borrowerColumns,
		borrower.UserID, borrower.Name, borrower.Email, borrower.Phone,
	))
	if err != nil {
		switch {
		case postgres.IsUniqueViolation(err):
			return nil, entities.ErrBorrowerExists
		case postgres.IsForeignKeyViolation(err):
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "failed to create borrower", zap.Error(err))
		return nil, fmt.Errorf("failed to create borrower: %w", err)
	}
	return created, nil
}

// FindByID находит профиль по ID.
func (r *BorrowerRepository) FindByID(ctx context.Context, id string) (*entities.Borrower, error) {
	return r.findOne(ctx, "FindByID", `id`, id)
}

// FindByUserID находит профиль пользователя.
func (r *BorrowerRepository) FindByUserID(ctx context.Context, userID string) (*entities.Borrower, error) {
	return r.findOne(ctx, "FindByUserID", `user_id`, userID)
}

func (r *BorrowerRepository) findOne(ctx context.Context, method, column, value string) (*entities.Borrower, error) {
	log := logger.Log(ctx).With(zap.String("repository", "borrower"), zap.String("method", method))
	if !validID(value) {
		return nil, entities.ErrBorrowerNotFound
	}

	b, err := scanBorrower(r.pool.QueryRow(ctx,
		`SELECT `+borrowerColumns+` FROM borrowers WHERE `+column+` = $1`, value))
	if err != nil {
		if isMissing(err) {
			log.Debug(ctx, "borrower not found", zap.String(column, value))
			return nil, entities.ErrBorrowerNotFound
		}
		log.Error(ctx, "error finding borrower", zap.Error(err))
		return nil, fmt.Errorf("error querying borrower: %w", err)
	}
	return b, nil
}

// List возвращает все профили.
func (r *BorrowerRepository) List(ctx context.Context) ([]*entities.Borrower, error) {
	log := logger.Log(ctx).With(zap.String("repository", "borrower"), zap.String("method", "List"))

	rows, err := r.pool.Query(ctx, `SELECT `+borrowerColumns+` FROM borrowers ORDER BY name, id`)
	if err != nil {
		log.Error(ctx, "failed to list borrowers", zap.Error(err))
		return nil, fmt.Errorf("failed to list borrowers: %w", err)
	}
	defer rows.Close()

	borrowers := make([]*entities.Borrower, 0)
	for rows.Next() {
		b, err := scanBorrower(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan borrower: %w", err)
		}
		borrowers = append(borrowers, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return borrowers, nil
}

// Update сохраняет контактные данные.
func (r *BorrowerRepository) Update(ctx context.Context, borrower *entities.Borrower) (*entities.Borrower, error) {
	log := logger.Log(ctx).With(zap.String("repository", "borrower"), zap.String("method", "Update"))

	updated, err := scanBorrower(r.pool.QueryRow(ctx,
		`UPDATE borrowers SET name = $1, email = $2, phone = $3 WHERE id = $4 RETURNING `+borrowerColumns,
		borrower.Name, borrower.Email, borrower.Phone, borrower.ID,
	))
	if err != nil {
		if isMissing(err) {
			return nil, entities.ErrBorrowerNotFound
		}
		log.Error(ctx, "failed to update borrower", zap.Error(err))
		return nil, fmt.Errorf("failed to update borrower: %w", err)
	}
	return updated, nil
}

// Delete удаляет профиль. Записи о прошлых выдачах остаются без ссылки на читателя.
func (r *BorrowerRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "borrower"), zap.String("method", "Delete"))

	result, err := r.pool.Exec(ctx, `DELETE FROM borrowers WHERE id = $1`, id)
	if err != nil {
		if postgres.IsInvalidText(err) {
			return entities.ErrBorrowerNotFound
		}
		log.Error(ctx, "failed to delete borrower", zap.Error(err))
		return fmt.Errorf("failed to delete borrower: %w", err)
	}
	if result.RowsAffected() == 0 {
		return entities.ErrBorrowerNotFound
	}
	return nil
}

// HasActiveLoans сообщает, есть ли у читателя выдача, идущая в день day.
func (r *BorrowerRepository) HasActiveLoans(ctx context.Context, id string, day time.Time) (bool, error) {
	found, err := exists(ctx, r.pool, `
        SELECT EXISTS (
            SELECT 1 FROM loans
            WHERE borrower_id = $1
              AND loan_date <= $2
              AND (return_date IS NULL OR return_date > $2)
        )`, id, entities.DateOf(day))
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to check active loans",
			zap.String("repository", "borrower"), zap.String("borrowerID", id), zap.Error(err))
		return false, fmt.Errorf("failed to check active loans: %w", err)
	}
	return found, nil
}
