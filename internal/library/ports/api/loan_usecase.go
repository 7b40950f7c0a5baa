// Package api определяет входные порты сценариев использования.
package api

import (
	"context"
	"time"

	"gobooklend/internal/library/domain/entities"
)

// CreateLoanCommand - запрос на выдачу. ReturnDate == nil означает бессрочную выдачу.
type CreateLoanCommand struct {
	BookID     string
	BorrowerID string
	LoanDate   time.Time
	ReturnDate *time.Time
}

// LoanUseCase - управление жизненным циклом выдач.
type LoanUseCase interface {
	CreateLoan(ctx context.Context, cmd CreateLoanCommand) (*entities.Loan, error)
	// CloseLoan фиксирует возврат; nil означает "сегодня".
	CloseLoan(ctx context.Context, loanID string, actualReturnDate *time.Time) (*entities.Loan, error)
	GetLoan(ctx context.Context, loanID string) (*entities.Loan, error)
	ListLoans(ctx context.Context) ([]*entities.Loan, error)
}

// AvailabilityOracle решает, свободна ли книга.
type AvailabilityOracle interface {
	IsAvailable(ctx context.Context, bookID string, start time.Time, end *time.Time) (bool, error)
	IsCurrentlyOut(ctx context.Context, bookID string) (bool, error)
}
