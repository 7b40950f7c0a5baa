// Package postgres реализует порты хранилища поверх PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // регистрация диалекта
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"gobooklend/internal/library/ports/repositories"
	"gobooklend/pkg/db/postgres"
)

const dialectPostgres = "postgres"

// PgxPoolInterface - подмножество pgxpool.Pool, которое нужно репозиториям.
type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// RepositoryFactory создает все репозитории сервиса поверх одного пула.
type RepositoryFactory struct {
	authorRepo   repositories.AuthorRepository
	bookRepo     repositories.BookRepository
	borrowerRepo repositories.BorrowerRepository
	loanRepo     repositories.LoanRepository
	userRepo     repositories.UserRepository
}

// NewRepositoryFactory создает фабрику репозиториев.
func NewRepositoryFactory(pool PgxPoolInterface) *RepositoryFactory {
	return &RepositoryFactory{
		authorRepo:   NewAuthorRepository(pool),
		bookRepo:     NewBookRepository(pool),
		borrowerRepo: NewBorrowerRepository(pool),
		loanRepo:     NewLoanRepository(pool),
		userRepo:     NewUserRepository(pool),
	}
}

// AuthorRepository возвращает репозиторий авторов.
func (f *RepositoryFactory) AuthorRepository() repositories.AuthorRepository { return f.authorRepo }

// BookRepository возвращает репозиторий книг.
func (f *RepositoryFactory) BookRepository() repositories.BookRepository { return f.bookRepo }

// BorrowerRepository возвращает репозиторий читателей.
func (f *RepositoryFactory) BorrowerRepository() repositories.BorrowerRepository {
	return f.borrowerRepo
}

// LoanRepository возвращает репозиторий выдач.
func (f *RepositoryFactory) LoanRepository() repositories.LoanRepository { return f.loanRepo }

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository { return f.userRepo }

func builder() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

// validID отсекает идентификаторы, которые не могут быть uuid: такие строки
// гарантированно не найдутся, и запрос к базе не нужен.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// isMissing - строка не найдена или идентификатор не разобран сервером.
func isMissing(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || postgres.IsInvalidText(err)
}

// exists выполняет запрос вида SELECT EXISTS(...).
func exists(ctx context.Context, pool PgxPoolInterface, query string, args ...interface{}) (bool, error) {
	var found bool
	if err := pool.QueryRow(ctx, query, args...).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}
