package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gobooklend/internal/library/domain/apperr"
	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/ports/api"
	"gobooklend/internal/library/ports/repositories"
	"gobooklend/pkg/logger"
)

const (
	methodCreateLoan = "CreateLoan"
	methodCloseLoan  = "CloseLoan"
	methodGetLoan    = "GetLoan"
	methodListLoans  = "ListLoans"

	msgCreatingLoan       = "creating loan"
	msgLoanCreated        = "loan created"
	msgLoanConflict       = "loan rejected: book unavailable"
	msgLoanRaceRejected   = "loan rejected by store: concurrent overlapping loan"
	msgClosingLoan        = "closing loan"
	msgLoanClosed         = "loan closed"
	msgReturnBeforeLoan   = "return date precedes loan date"
	msgErrCreateLoan      = "failed to create loan"
	msgErrCloseLoan       = "failed to close loan"
	msgErrListLoans       = "failed to list loans"
	msgErrResolveLoanRefs = "failed to resolve loan references"

	errCtxFindingBook      = "finding book"
	errCtxFindingBorrower  = "finding borrower"
	errCtxCheckingAvail    = "checking availability"
	errCtxCreatingLoan     = "creating loan"
	errCtxFindingLoan      = "finding loan"
	errCtxClosingLoan      = "closing loan"
	errCtxListingLoans     = "listing loans"
	errCtxValidatingPeriod = "validating loan period"
)

// LoanUseCaseImpl реализует жизненный цикл выдачи: открыта → закрыта.
type LoanUseCaseImpl struct {
	loans     repositories.LoanRepository
	books     repositories.BookRepository
	borrowers repositories.BorrowerRepository
	oracle    api.AvailabilityOracle
	clock     Clock
}

// NewLoanUseCase создает сценарии работы с выдачами.
func NewLoanUseCase(
	loans repositories.LoanRepository,
	books repositories.BookRepository,
	borrowers repositories.BorrowerRepository,
	oracle api.AvailabilityOracle,
	clock Clock,
) api.LoanUseCase {
	return &LoanUseCaseImpl{
		loans:     loans,
		books:     books,
		borrowers: borrowers,
		oracle:    oracle,
		clock:     clock,
	}
}

// CreateLoan выдает книгу читателю. Проверка доступности выполняется заранее,
// а хранилище повторно отвергает пересечение атомарно, так что гонка двух
// одновременных выдач тоже заканчивается ErrBookUnavailable.
func (u *LoanUseCaseImpl) CreateLoan(ctx context.Context, cmd api.CreateLoanCommand) (*entities.Loan, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodCreateLoan),
		zap.String("bookID", cmd.BookID),
		zap.String("borrowerID", cmd.BorrowerID),
	)
	log.Debug(ctx, msgCreatingLoan)

	loanDate := entities.DateOf(cmd.LoanDate)
	var returnDate *time.Time
	if cmd.ReturnDate != nil {
		rd := entities.DateOf(*cmd.ReturnDate)
		if !rd.After(loanDate) {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingPeriod, entities.ErrLoanPeriodInvalid)
		}
		returnDate = &rd
	}

	if _, err := u.books.FindByID(ctx, cmd.BookID); err != nil {
		return nil, u.refError(ctx, log, errCtxFindingBook, err)
	}
	if _, err := u.borrowers.FindByID(ctx, cmd.BorrowerID); err != nil {
		return nil, u.refError(ctx, log, errCtxFindingBorrower, err)
	}

	available, err := u.oracle.IsAvailable(ctx, cmd.BookID, loanDate, returnDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCheckingAvail, err)
	}
	if !available {
		log.Info(ctx, msgLoanConflict)
		return nil, fmt.Errorf("%s: %w", errCtxCheckingAvail, entities.ErrBookUnavailable)
	}

	created, err := u.loans.Create(ctx, &entities.Loan{
		BookID:     cmd.BookID,
		BorrowerID: cmd.BorrowerID,
		LoanDate:   loanDate,
		ReturnDate: returnDate,
	})
	if err != nil {
		if errors.Is(err, entities.ErrBookUnavailable) {
			log.Info(ctx, msgLoanRaceRejected)
		} else {
			log.Error(ctx, msgErrCreateLoan, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxCreatingLoan, err)
	}

	log.Info(ctx, msgLoanCreated, zap.String("loanID", created.ID))
	return created, nil
}

func (u *LoanUseCaseImpl) refError(ctx context.Context, log *logger.Logger, errCtx string, err error) error {
	if !errors.Is(err, apperr.ErrNotFound) {
		log.Error(ctx, msgErrResolveLoanRefs, zap.String("step", errCtx), zap.Error(err))
	}
	return fmt.Errorf("%s: %w", errCtx, err)
}

// CloseLoan фиксирует фактический возврат книги. nil означает возврат сегодня.
func (u *LoanUseCaseImpl) CloseLoan(ctx context.Context, loanID string, actualReturnDate *time.Time) (*entities.Loan, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCloseLoan), zap.String("loanID", loanID))
	log.Debug(ctx, msgClosingLoan)

	loan, err := u.loans.FindByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingLoan, err)
	}

	// Хранимая дата возврата может быть плановой, в том числе уже прошедшей.
	actual := u.clock.today()
	if actualReturnDate != nil {
		actual = entities.DateOf(*actualReturnDate)
	}
	if actual.Before(entities.DateOf(loan.LoanDate)) {
		log.Debug(ctx, msgReturnBeforeLoan, zap.Time("returnDate", actual), zap.Time("loanDate", loan.LoanDate))
		return nil, fmt.Errorf("%s: %w", errCtxClosingLoan, entities.ErrReturnBeforeLoan)
	}

	closed, err := u.loans.SetReturnDate(ctx, loanID, actual)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			log.Error(ctx, msgErrCloseLoan, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxClosingLoan, err)
	}

	log.Info(ctx, msgLoanClosed, zap.Time("returnDate", actual))
	return closed, nil
}

// GetLoan возвращает выдачу по идентификатору.
func (u *LoanUseCaseImpl) GetLoan(ctx context.Context, loanID string) (*entities.Loan, error) {
	loan, err := u.loans.FindByID(ctx, loanID)
	if err != nil {
		logger.Log(ctx).Debug(ctx, errCtxFindingLoan, zap.String("method", methodGetLoan), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingLoan, err)
	}
	return loan, nil
}

// ListLoans возвращает все выдачи в порядке создания.
func (u *LoanUseCaseImpl) ListLoans(ctx context.Context) ([]*entities.Loan, error) {
	loans, err := u.loans.List(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrListLoans, zap.String("method", methodListLoans), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingLoans, err)
	}
	return loans, nil
}
