package http_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/domain/services"
	"gobooklend/internal/library/ports/api"
)

type mockLoanUseCase struct {
	mock.Mock
}

func (m *mockLoanUseCase) CreateLoan(ctx context.Context, cmd api.CreateLoanCommand) (*entities.Loan, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Loan), args.Error(1)
}

func (m *mockLoanUseCase) CloseLoan(ctx context.Context, loanID string, actualReturnDate *time.Time) (*entities.Loan, error) {
	args := m.Called(ctx, loanID, actualReturnDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Loan), args.Error(1)
}

func (m *mockLoanUseCase) GetLoan(ctx context.Context, loanID string) (*entities.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Loan), args.Error(1)
}

func (m *mockLoanUseCase) ListLoans(ctx context.Context) ([]*entities.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Loan), args.Error(1)
}

type mockBorrowerUseCase struct {
	mock.Mock
}

func (m *mockBorrowerUseCase) CreateBorrower(ctx context.Context, cmd api.CreateBorrowerCommand) (*entities.Borrower, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Borrower), args.Error(1)
}

func (m *mockBorrowerUseCase) GetBorrower(ctx context.Context, id string) (*entities.Borrower, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Borrower), args.Error(1)
}

func (m *mockBorrowerUseCase) ListBorrowers(ctx context.Context) ([]*entities.Borrower, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Borrower), args.Error(1)
}

func (m *mockBorrowerUseCase) UpdateBorrower(ctx context.Context, id string, upd entities.BorrowerUpdate) (*entities.Borrower, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Borrower), args.Error(1)
}

func (m *mockBorrowerUseCase) DeleteBorrower(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockAuthorUseCase struct {
	mock.Mock
}

func (m *mockAuthorUseCase) CreateAuthor(ctx context.Context, author *entities.Author) (*entities.Author, error) {
	args := m.Called(ctx, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Author), args.Error(1)
}

func (m *mockAuthorUseCase) GetAuthor(ctx context.Context, id string) (*entities.Author, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Author), args.Error(1)
}

func (m *mockAuthorUseCase) ListAuthors(ctx context.Context) ([]*entities.Author, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Author), args.Error(1)
}

func (m *mockAuthorUseCase) UpdateAuthor(ctx context.Context, id string, upd entities.AuthorUpdate) (*entities.Author, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Author), args.Error(1)
}

func (m *mockAuthorUseCase) DeleteAuthor(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockBookUseCase struct {
	mock.Mock
}

func (m *mockBookUseCase) CreateBook(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	args := m.Called(ctx, book)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Book), args.Error(1)
}

func (m *mockBookUseCase) GetBook(ctx context.Context, id string) (*entities.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Book), args.Error(1)
}

func (m *mockBookUseCase) ListBooks(ctx context.Context) ([]*entities.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Book), args.Error(1)
}

func (m *mockBookUseCase) UpdateBook(ctx context.Context, id string, upd entities.BookUpdate) (*entities.Book, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Book), args.Error(1)
}

func (m *mockBookUseCase) DeleteBook(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserUseCase struct {
	mock.Mock
}

func (m *mockUserUseCase) Register(ctx context.Context, cmd api.RegisterCommand) (*entities.User, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserUseCase) Login(ctx context.Context, username, password string) (*services.AccessToken, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AccessToken), args.Error(1)
}

func (m *mockUserUseCase) Logout(ctx context.Context, principal *services.Principal) error {
	return m.Called(ctx, principal).Error(0)
}

func (m *mockUserUseCase) GetUser(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserUseCase) UpdateUser(ctx context.Context, id string, upd entities.UserUpdate) (*entities.User, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserUseCase) EnsureAdmin(ctx context.Context, username, password string) error {
	return m.Called(ctx, username, password).Error(0)
}

// memoryRevocation - отзыв токенов в памяти процесса.
type memoryRevocation struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	users  map[string]time.Time
}

func newMemoryRevocation() *memoryRevocation {
	return &memoryRevocation{tokens: map[string]time.Time{}, users: map[string]time.Time{}}
}

func (r *memoryRevocation) RevokeToken(_ context.Context, tokenID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[tokenID] = until
	return nil
}

func (r *memoryRevocation) IsTokenRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.tokens[tokenID]
	return ok, nil
}

func (r *memoryRevocation) RevokeUserTokens(_ context.Context, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[userID] = at
	return nil
}

func (r *memoryRevocation) UserTokensRevokedAt(_ context.Context, userID string) (time.Time, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	at, ok := r.users[userID]
	return at, ok, nil
}
