package app_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/domain/services"
)

type mockLoanRepository struct {
	mock.Mock
}

func (m *mockLoanRepository) Create(ctx context.Context, loan *entities.Loan) (*entities.Loan, error) {
	args := m.Called(ctx, loan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Loan), args.Error(1)
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id string) (*entities.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Loan), args.Error(1)
}

func (m *mockLoanRepository) List(ctx context.Context) ([]*entities.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Loan), args.Error(1)
}

func (m *mockLoanRepository) SetReturnDate(ctx context.Context, id string, returnDate time.Time) (*entities.Loan, error) {
	args := m.Called(ctx, id, returnDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Loan), args.Error(1)
}

func (m *mockLoanRepository) HasOverlappingLoan(ctx context.Context, bookID string, period services.DateRange) (bool, error) {
	args := m.Called(ctx, bookID, period)
	return args.Bool(0), args.Error(1)
}

func (m *mockLoanRepository) HasOpenLoan(ctx context.Context, bookID string, day time.Time) (bool, error) {
	args := m.Called(ctx, bookID, day)
	return args.Bool(0), args.Error(1)
}

type mockBookRepository struct {
	mock.Mock
}

func (m *mockBookRepository) Create(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	args := m.Called(ctx, book)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Book), args.Error(1)
}

func (m *mockBookRepository) FindByID(ctx context.Context, id string) (*entities.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Book), args.Error(1)
}

func (m *mockBookRepository) List(ctx context.Context) ([]*entities.Book, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Book), args.Error(1)
}

func (m *mockBookRepository) Update(ctx context.Context, book *entities.Book) (*entities.Book, error) {
	args := m.Called(ctx, book)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Book), args.Error(1)
}

func (m *mockBookRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockAuthorRepository struct {
	mock.Mock
}

func (m *mockAuthorRepository) Create(ctx context.Context, author *entities.Author) (*entities.Author, error) {
	args := m.Called(ctx, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Author), args.Error(1)
}

func (m *mockAuthorRepository) FindByID(ctx context.Context, id string) (*entities.Author, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Author), args.Error(1)
}

func (m *mockAuthorRepository) FindByIDs(ctx context.Context, ids []string) ([]*entities.Author, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Author), args.Error(1)
}

func (m *mockAuthorRepository) List(ctx context.Context) ([]*entities.Author, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Author), args.Error(1)
}

func (m *mockAuthorRepository) Update(ctx context.Context, author *entities.Author) (*entities.Author, error) {
	args := m.Called(ctx, author)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Author), args.Error(1)
}

func (m *mockAuthorRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAuthorRepository) HasBooks(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockBorrowerRepository struct {
	mock.Mock
}

func (m *mockBorrowerRepository) Create(ctx context.Context, borrower *entities.Borrower) (*entities.Borrower, error) {
	args := m.Called(ctx, borrower)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Borrower), args.Error(1)
}

func (m *mockBorrowerRepository) FindByID(ctx context.Context, id string) (*entities.Borrower, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Borrower), args.Error(1)
}

func (m *mockBorrowerRepository) FindByUserID(ctx context.Context, userID string) (*entities.Borrower, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Borrower), args.Error(1)
}

func (m *mockBorrowerRepository) List(ctx context.Context) ([]*entities.Borrower, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Borrower), args.Error(1)
}

func (m *mockBorrowerRepository) Update(ctx context.Context, borrower *entities.Borrower) (*entities.Borrower, error) {
	args := m.Called(ctx, borrower)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Borrower), args.Error(1)
}

func (m *mockBorrowerRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBorrowerRepository) HasActiveLoans(ctx context.Context, id string, day time.Time) (bool, error) {
	args := m.Called(ctx, id, day)
	return args.Bool(0), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Issue(ctx context.Context, subject string, role entities.Role) (*services.AccessToken, error) {
	args := m.Called(ctx, subject, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AccessToken), args.Error(1)
}

func (m *mockTokenService) Decode(ctx context.Context, token string) (*services.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenClaims), args.Error(1)
}

type mockRevocation struct {
	mock.Mock
}

func (m *mockRevocation) RevokeToken(ctx context.Context, tokenID string, until time.Time) error {
	return m.Called(ctx, tokenID, until).Error(0)
}

func (m *mockRevocation) IsTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRevocation) RevokeUserTokens(ctx context.Context, userID string, at time.Time) error {
	return m.Called(ctx, userID, at).Error(0)
}

func (m *mockRevocation) UserTokensRevokedAt(ctx context.Context, userID string) (time.Time, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(time.Time), args.Bool(1), args.Error(2)
}

func day(s string) time.Time {
	t, err := entities.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func fixedClock(s string) func() time.Time {
	t := day(s).Add(10 * time.Hour)
	return func() time.Time { return t }
}
