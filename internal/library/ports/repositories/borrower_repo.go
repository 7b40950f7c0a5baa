package repositories

import (
	"context"
	"time"

	"gobooklend/internal/library/domain/entities"
)

// BorrowerRepository - хранилище профилей читателей.
type BorrowerRepository interface {
	Create(ctx context.Context, borrower *entities.Borrower) (*entities.Borrower, error)
	FindByID(ctx context.Context, id string) (*entities.Borrower, error)
	FindByUserID(ctx context.Context, userID string) (*entities.Borrower, error)
	List(ctx context.Context) ([]*entities.Borrower, error)
	Update(ctx context.Context, borrower *entities.Borrower) (*entities.Borrower, error)
	Delete(ctx context.Context, id string) error
	// HasActiveLoans сообщает, есть ли у читателя выдача, период которой включает day.
	HasActiveLoans(ctx context.Context, id string, day time.Time) (bool, error)
}
