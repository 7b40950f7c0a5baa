package api

import (
	"context"

	"gobooklend/internal/library/domain/entities"
)

// CreateBorrowerCommand - регистрация профиля читателя.
type CreateBorrowerCommand struct {
	UserID string
	Name   string
	Email  string
	Phone  string
}

// BorrowerUseCase - профили читателей.
type BorrowerUseCase interface {
	CreateBorrower(ctx context.Context, cmd CreateBorrowerCommand) (*entities.Borrower, error)
	GetBorrower(ctx context.Context, id string) (*entities.Borrower, error)
	ListBorrowers(ctx context.Context) ([]*entities.Borrower, error)
	UpdateBorrower(ctx context.Context, id string, upd entities.BorrowerUpdate) (*entities.Borrower, error)
	DeleteBorrower(ctx context.Context, id string) error
}
