package repositories

import (
	"context"
	"time"

	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/domain/services"
)

// LoanRepository - хранилище выдач.
type LoanRepository interface {
	// Create сохраняет выдачу, только если ее период не пересекается с
	// существующими выдачами той же книги; иначе entities.ErrBookUnavailable.
	Create(ctx context.Context, loan *entities.Loan) (*entities.Loan, error)
	FindByID(ctx context.Context, id string) (*entities.Loan, error)
	List(ctx context.Context) ([]*entities.Loan, error)
	// SetReturnDate фиксирует дату возврата; пересечение с другой выдачей
	// дает entities.ErrBookUnavailable.
	SetReturnDate(ctx context.Context, id string, returnDate time.Time) (*entities.Loan, error)
	HasOverlappingLoan(ctx context.Context, bookID string, period services.DateRange) (bool, error)
	// HasOpenLoan сообщает, есть ли выдача книги без даты возврата или с датой позже day.
	HasOpenLoan(ctx context.Context, bookID string, day time.Time) (bool, error)
}
