package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TxStarter - все, что умеет начинать транзакцию (пул, соединение, мок).
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// WithTx выполняет fn в транзакции. Ошибка fn или отмена ctx приводят к откату.
func WithTx(ctx context.Context, db TxStarter, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
