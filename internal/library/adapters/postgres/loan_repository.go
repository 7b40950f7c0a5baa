package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/domain/services"
	"gobooklend/internal/library/ports/repositories"
	"gobooklend/pkg/db/postgres"
	"gobooklend/pkg/logger"
)

const (
	tableLoans = "loans"

	colID         = "id"
	colBookID     = "book_id"
	colBorrowerID = "borrower_id"
	colLoanDate   = "loan_date"
	colReturnDate = "return_date"
	colCreatedAt  = "created_at"
	colUpdatedAt  = "updated_at"

	// borrower_id обнуляется при удалении читателя; такая выдача читается с пустым BorrowerID.
	loanColumns = `id, book_id, COALESCE(borrower_id::text, '') AS borrower_id, loan_date, return_date, created_at, updated_at`

	// Полуоткрытые периоды [loan_date, return_date); NULL справа - бесконечность.
	overlapPredicate = `daterange(?, ?, '[)') && daterange(?, ?, '[)')`

	queryHasOverlap = `
        SELECT EXISTS (
            SELECT 1 FROM loans
            WHERE book_id = $1
              AND daterange(loan_date, return_date, '[)') && daterange($2::date, $3::date, '[)')
        )`

	queryHasOpenLoan = `
        SELECT EXISTS (
            SELECT 1 FROM loans
            WHERE book_id = $1
              AND (return_date IS NULL OR return_date > $2)
        )`
)

// LoanRepository реализует repositories.LoanRepository.
type LoanRepository struct {
	pool PgxPoolInterface
}

// NewLoanRepository создает репозиторий выдач.
func NewLoanRepository(pool PgxPoolInterface) repositories.LoanRepository {
	return &LoanRepository{pool: pool}
}

func scanLoan(row pgx.Row) (*entities.Loan, error) {
	var l entities.Loan
	if err := row.Scan(&l.ID, &l.BookID, &l.BorrowerID, &l.LoanDate, &l.ReturnDate, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func dateValue(t *time.Time) exp.CastExpression {
	if t == nil {
		return goqu.Cast(goqu.L("NULL"), "DATE")
	}
	return goqu.Cast(goqu.V(entities.DateOf(*t)), "DATE")
}

// buildConditionalInsert строит INSERT ... SELECT ... WHERE NOT EXISTS:
// строка вставляется, только если период не пересекается с другими выдачами
// книги. Проверка и вставка выполняются одним оператором.
func buildConditionalInsert(loan *entities.Loan) (string, []interface{}, error) {
	b := builder()
	bookID := goqu.Cast(goqu.V(loan.BookID), "UUID")
	loanDate := loan.LoanDate

	overlapping := b.From(tableLoans).
		Select(goqu.L("1")).
		Where(
			goqu.C(colBookID).Eq(bookID),
			goqu.L(overlapPredicate,
				goqu.C(colLoanDate), goqu.C(colReturnDate),
				dateValue(&loanDate), dateValue(loan.ReturnDate)),
		)

	candidate := b.Select(
		bookID,
		goqu.Cast(goqu.V(loan.BorrowerID), "UUID"),
		dateValue(&loanDate),
		dateValue(loan.ReturnDate),
	).Where(goqu.L("NOT EXISTS ?", overlapping))

	return b.Insert(tableLoans).
		Cols(colBookID, colBorrowerID, colLoanDate, colReturnDate).
		FromQuery(candidate).
		Returning(colID, colBookID, colBorrowerID, colLoanDate, colReturnDate, colCreatedAt, colUpdatedAt).
		Prepared(true).
		ToSQL()
}

// translateLoanError переводит отказы сервера в доменные ошибки.
func translateLoanError(err error) error {
	switch {
	case postgres.IsOverlapRejection(err):
		return entities.ErrBookUnavailable
	case postgres.IsCheckViolation(err):
		return entities.ErrReturnBeforeLoan
	case postgres.IsForeignKeyViolation(err) && postgres.Constraint(err) == "loans_book_id_fkey":
		return entities.ErrBookNotFound
	case postgres.IsForeignKeyViolation(err):
		return entities.ErrBorrowerNotFound
	case isMissing(err):
		return entities.ErrLoanNotFound
	default:
		return nil
	}
}

// Create вставляет выдачу одним условным оператором. Если конкурентная
// транзакция успела занять период, вставка не произойдет или будет отвергнута
// ограничением исключения; оба случая дают entities.ErrBookUnavailable.
func (r *LoanRepository) Create(ctx context.Context, loan *entities.Loan) (*entities.Loan, error) {
	log := logger.Log(ctx).With(
		zap.String("repository", "loan"),
		zap.String("method", "Create"),
		zap.String("bookID", loan.BookID),
	)

	query, args, err := buildConditionalInsert(loan)
	if err != nil {
		return nil, fmt.Errorf("failed to build loan insert: %w", err)
	}

	created, err := scanLoan(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Info(ctx, "loan insert skipped: period overlaps an existing loan")
			return nil, entities.ErrBookUnavailable
		}
		if domainErr := translateLoanError(err); domainErr != nil {
			log.Info(ctx, "loan rejected by store", zap.Error(err))
			return nil, domainErr
		}
		log.Error(ctx, "failed to create loan", zap.Error(err))
		return nil, fmt.Errorf("failed to create loan: %w", err)
	}

	log.Debug(ctx, "loan stored", zap.String("loanID", created.ID))
	return created, nil
}

// FindByID находит выдачу по ID.
func (r *LoanRepository) FindByID(ctx context.Context, id string) (*entities.Loan, error) {
	log := logger.Log(ctx).With(zap.String("repository", "loan"), zap.String("method", "FindByID"))
	if !validID(id) {
		return nil, entities.ErrLoanNotFound
	}

	l, err := scanLoan(r.pool.QueryRow(ctx, `SELECT `+loanColumns+` FROM loans WHERE id = $1`, id))
	if err != nil {
		if isMissing(err) {
			log.Debug(ctx, "loan not found", zap.String("id", id))
			return nil, entities.ErrLoanNotFound
		}
		log.Error(ctx, "error finding loan by id", zap.Error(err))
		return nil, fmt.Errorf("error querying loan by id: %w", err)
	}
	return l, nil
}

// List возвращает все выдачи в порядке создания.
func (r *LoanRepository) List(ctx context.Context) ([]*entities.Loan, error) {
	log := logger.Log(ctx).With(zap.String("repository", "loan"), zap.String("method", "List"))

	rows, err := r.pool.Query(ctx, `SELECT `+loanColumns+` FROM loans ORDER BY created_at, id`)
	if err != nil {
		log.Error(ctx, "failed to list loans", zap.Error(err))
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	defer rows.Close()

	loans := make([]*entities.Loan, 0)
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		loans = append(loans, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return loans, nil
}

// SetReturnDate фиксирует дату возврата.
func (r *LoanRepository) SetReturnDate(ctx context.Context, id string, returnDate time.Time) (*entities.Loan, error) {
	log := logger.Log(ctx).With(zap.String("repository", "loan"), zap.String("method", "SetReturnDate"))

	l, err := scanLoan(r.pool.QueryRow(ctx,
		`UPDATE loans SET return_date = $1 WHERE id = $2 RETURNING `+loanColumns,
		entities.DateOf(returnDate), id,
	))
	if err != nil {
		if domainErr := translateLoanError(err); domainErr != nil {
			log.Info(ctx, "return date rejected by store", zap.Error(err))
			return nil, domainErr
		}
		log.Error(ctx, "failed to set return date", zap.Error(err))
		return nil, fmt.Errorf("failed to set return date: %w", err)
	}
	return l, nil
}

// HasOverlappingLoan сообщает, занята ли книга хотя бы один день периода.
func (r *LoanRepository) HasOverlappingLoan(ctx context.Context, bookID string, period services.DateRange) (bool, error) {
	if !validID(bookID) {
		return false, nil
	}
	found, err := exists(ctx, r.pool, queryHasOverlap, bookID, period.Start, period.End)
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to check overlapping loans",
			zap.String("repository", "loan"), zap.String("bookID", bookID), zap.Error(err))
		return false, fmt.Errorf("failed to check overlapping loans: %w", err)
	}
	return found, nil
}

// HasOpenLoan сообщает, выдана ли книга на день day.
func (r *LoanRepository) HasOpenLoan(ctx context.Context, bookID string, day time.Time) (bool, error) {
	if !validID(bookID) {
		return false, nil
	}
	found, err := exists(ctx, r.pool, queryHasOpenLoan, bookID, entities.DateOf(day))
	if err != nil {
		logger.Log(ctx).Error(ctx, "failed to check open loans",
			zap.String("repository", "loan"), zap.String("bookID", bookID), zap.Error(err))
		return false, fmt.Errorf("failed to check open loans: %w", err)
	}
	return found, nil
}
