package entities

import (
	"time"

	"gobooklend/internal/library/domain/apperr"
)

// Ошибки домена выдач.
var (
	ErrLoanNotFound      = apperr.New(apperr.KindNotFound, "loan not found")
	ErrBookUnavailable   = apperr.New(apperr.KindConflict, "book is not available for the requested period")
	ErrReturnBeforeLoan  = apperr.New(apperr.KindValidation, "return date cannot precede the loan date")
	ErrLoanPeriodInvalid = apperr.New(apperr.KindValidation, "return date must be after the loan date")
)

// Loan - выдача книги читателю. Занимает книгу на [LoanDate, ReturnDate),
// при ReturnDate == nil правая граница не ограничена.
type Loan struct {
	ID         string
	BookID     string
	BorrowerID string
	LoanDate   time.Time
	ReturnDate *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
