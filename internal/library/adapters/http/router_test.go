package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpadapter "gobooklend/internal/library/adapters/http"
	"gobooklend/internal/library/adapters/http/middleware"
	"gobooklend/internal/library/adapters/services"
	"gobooklend/internal/library/app"
	"gobooklend/internal/library/config"
	"gobooklend/internal/library/domain/entities"
	domainservices "gobooklend/internal/library/domain/services"
	"gobooklend/internal/library/ports/api"
	svc "gobooklend/internal/library/ports/services"
)

type testServer struct {
	fiber      *fiber.App
	loans      *mockLoanUseCase
	borrowers  *mockBorrowerUseCase
	authors    *mockAuthorUseCase
	books      *mockBookUseCase
	users      *mockUserUseCase
	tokens     svc.TokenService
	revocation *memoryRevocation
}

func newTestServer(t *testing.T, production bool) *testServer {
	t.Helper()

	s := &testServer{
		loans:      new(mockLoanUseCase),
		borrowers:  new(mockBorrowerUseCase),
		authors:    new(mockAuthorUseCase),
		books:      new(mockBookUseCase),
		users:      new(mockUserUseCase),
		revocation: newMemoryRevocation(),
		tokens: services.NewJWT(domainservices.TokenConfig{
			SecretKey: []byte("http-test-secret"),
			Issuer:    "gobooklend",
			Audience:  "gobooklend-api",
			AccessTTL: time.Hour,
		}),
	}

	s.fiber = httpadapter.NewApp(&config.HTTPConfig{
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		BodyLimit:    1 << 20,
	}, production)

	httpadapter.SetupRouter(s.fiber, httpadapter.UseCases{
		Loans:     s.loans,
		Borrowers: s.borrowers,
		Authors:   s.authors,
		Books:     s.books,
		Users:     s.users,
		Gate:      app.NewAuthorizationGate(s.tokens, s.revocation, domainservices.DefaultPolicy()),
	})

	t.Cleanup(func() {
		s.loans.AssertExpectations(t)
		s.borrowers.AssertExpectations(t)
		s.authors.AssertExpectations(t)
		s.books.AssertExpectations(t)
		s.users.AssertExpectations(t)
	})
	return s
}

func (s *testServer) token(t *testing.T, role entities.Role) string {
	t.Helper()
	issued, err := s.tokens.Issue(context.Background(), "user-"+role.String(), role)
	require.NoError(t, err)
	return issued.Token
}

func (s *testServer) do(t *testing.T, method, path, body, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.fiber.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func day(s string) time.Time {
	d, err := entities.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAuthorizationRunsBeforeValidation(t *testing.T) {
	s := newTestServer(t, false)

	resp := s.do(t, http.MethodPost, "/api/authors", `{"name": ""}`, "")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, httpadapter.MIMEProblemJSON, resp.Header.Get("Content-Type"))
	problem := decode[httpadapter.Problem](t, resp)
	assert.Equal(t, http.StatusUnauthorized, problem.Status)
	assert.Equal(t, "/api/authors", problem.Instance)
	assert.Empty(t, problem.Errors, "тело не должно проверяться без учетных данных")
	s.authors.AssertNotCalled(t, "CreateAuthor", mock.Anything, mock.Anything)
}

func TestRolePolicy(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		role       entities.Role
		setupMocks func(s *testServer)
		wantStatus int
	}{
		{
			name:       "junior staff cannot delete a book",
			method:     http.MethodDelete,
			path:       "/api/books/b1",
			role:       entities.RoleJuniorStaff,
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "senior staff deletes a book",
			method: http.MethodDelete,
			path:   "/api/books/b1",
			role:   entities.RoleSeniorStaff,
			setupMocks: func(s *testServer) {
				s.books.On("DeleteBook", mock.Anything, "b1").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "patron cannot list loans",
			method:     http.MethodGet,
			path:       "/api/loans",
			role:       entities.RoleNone,
			wantStatus: http.StatusForbidden,
		},
		{
			name:   "junior staff lists borrowers",
			method: http.MethodGet,
			path:   "/api/borrowers",
			role:   entities.RoleJuniorStaff,
			setupMocks: func(s *testServer) {
				s.borrowers.On("ListBorrowers", mock.Anything).Return([]*entities.Borrower{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "catalog reads are public",
			method: http.MethodGet,
			path:   "/api/books",
			setupMocks: func(s *testServer) {
				s.books.On("ListBooks", mock.Anything).Return([]*entities.Book{}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, false)
			if tt.setupMocks != nil {
				tt.setupMocks(s)
			}

			token := ""
			if tt.name != "catalog reads are public" {
				token = s.token(t, tt.role)
			}

			resp := s.do(t, tt.method, tt.path, "", token)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestRevokedTokenIsRejected(t *testing.T) {
	s := newTestServer(t, false)
	token := s.token(t, entities.RoleSeniorStaff)
	claims, err := s.tokens.Decode(context.Background(), token)
	require.NoError(t, err)
	require.NoError(t, s.revocation.RevokeToken(context.Background(), claims.TokenID, claims.ExpiresAt))

	resp := s.do(t, http.MethodGet, "/api/loans", "", token)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateLoan(t *testing.T) {
	created := time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC)

	t.Run("created", func(t *testing.T) {
		s := newTestServer(t, false)
		returnDate := day("2024-02-01")
		s.loans.On("CreateLoan", mock.Anything, api.CreateLoanCommand{
			BookID:     "b1",
			BorrowerID: "br1",
			LoanDate:   day("2024-01-15"),
			ReturnDate: &returnDate,
		}).Return(&entities.Loan{
			ID:         "l1",
			BookID:     "b1",
			BorrowerID: "br1",
			LoanDate:   day("2024-01-15"),
			ReturnDate: &returnDate,
			CreatedAt:  created,
			UpdatedAt:  created,
		}, nil)

		resp := s.do(t, http.MethodPost, "/api/loans",
			`{"bookId":"b1","borrowerId":"br1","loanDate":"2024-01-15","returnDate":"2024-02-01"}`,
			s.token(t, entities.RoleNone))

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		body := decode[map[string]any](t, resp)
		assert.Equal(t, "l1", body["id"])
		assert.Equal(t, "2024-01-15", body["loanDate"])
		assert.Equal(t, "2024-02-01", body["returnDate"])
		assert.Equal(t, "2024-01-15T09:30:00Z", body["createdAt"])
	})

	t.Run("overlapping loan is a conflict", func(t *testing.T) {
		s := newTestServer(t, false)
		s.loans.On("CreateLoan", mock.Anything, mock.Anything).
			Return(nil, errors.Join(errors.New("creating loan"), entities.ErrBookUnavailable))

		resp := s.do(t, http.MethodPost, "/api/loans",
			`{"bookId":"b1","borrowerId":"br1","loanDate":"2024-02-01"}`,
			s.token(t, entities.RoleNone))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		problem := decode[httpadapter.Problem](t, resp)
		assert.Equal(t, "Conflict", problem.Title)
		assert.Contains(t, problem.Detail, entities.ErrBookUnavailable.Error())
		assert.Equal(t, resp.Header.Get(middleware.HeaderRequestID), problem.TraceID)
		assert.NotEmpty(t, problem.TraceID)
	})

	t.Run("invalid fields are reported per field", func(t *testing.T) {
		s := newTestServer(t, false)

		resp := s.do(t, http.MethodPost, "/api/loans",
			`{"bookId":"b1","loanDate":"15/01/2024","returnDate":"2024-01-01"}`,
			s.token(t, entities.RoleNone))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		problem := decode[httpadapter.Problem](t, resp)
		assert.Contains(t, problem.Errors, "borrowerId")
		assert.Contains(t, problem.Errors, "loanDate")
		s.loans.AssertNotCalled(t, "CreateLoan", mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		s := newTestServer(t, false)

		resp := s.do(t, http.MethodPost, "/api/loans", `{"bookId":`, s.token(t, entities.RoleNone))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		problem := decode[httpadapter.Problem](t, resp)
		assert.Contains(t, problem.Errors, "body")
	})
}

func TestReturnLoan(t *testing.T) {
	t.Run("empty body returns today", func(t *testing.T) {
		s := newTestServer(t, false)
		returned := day("2024-01-20")
		s.loans.On("CloseLoan", mock.Anything, "l1", (*time.Time)(nil)).
			Return(&entities.Loan{ID: "l1", LoanDate: day("2024-01-01"), ReturnDate: &returned}, nil)

		resp := s.do(t, http.MethodPut, "/api/loans/l1", "", s.token(t, entities.RoleNone))

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode[map[string]any](t, resp)
		assert.Equal(t, "2024-01-20", body["returnDate"])
	})

	t.Run("return before loan date is a validation error", func(t *testing.T) {
		s := newTestServer(t, false)
		returnDate := day("2023-12-31")
		s.loans.On("CloseLoan", mock.Anything, "l1", &returnDate).
			Return(nil, entities.ErrReturnBeforeLoan)

		resp := s.do(t, http.MethodPut, "/api/loans/l1", `{"returnDate":"2023-12-31"}`, s.token(t, entities.RoleJuniorStaff))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown loan", func(t *testing.T) {
		s := newTestServer(t, false)
		s.loans.On("CloseLoan", mock.Anything, "missing", (*time.Time)(nil)).Return(nil, entities.ErrLoanNotFound)

		resp := s.do(t, http.MethodPut, "/api/loans/missing", "{}", s.token(t, entities.RoleNone))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestBorrowerEndpoints(t *testing.T) {
	t.Run("staff user cannot become a borrower", func(t *testing.T) {
		s := newTestServer(t, false)
		s.borrowers.On("CreateBorrower", mock.Anything, api.CreateBorrowerCommand{
			UserID: "u1", Name: "Ann", Email: "ann@example.com", Phone: "+15551234567",
		}).Return(nil, entities.ErrStaffCannotBorrow)

		resp := s.do(t, http.MethodPost, "/api/borrowers",
			`{"userId":"u1","name":"Ann","email":"ann@example.com","phone":"+15551234567"}`,
			s.token(t, entities.RoleNone))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid email and phone", func(t *testing.T) {
		s := newTestServer(t, false)

		resp := s.do(t, http.MethodPost, "/api/borrowers",
			`{"userId":"u1","name":"Ann","email":"not-an-email","phone":"012"}`,
			s.token(t, entities.RoleNone))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		problem := decode[httpadapter.Problem](t, resp)
		assert.Equal(t, []string{"invalid email format"}, problem.Errors["email"])
		assert.Equal(t, []string{"invalid phone number format"}, problem.Errors["phone"])
	})

	t.Run("delete with active loans", func(t *testing.T) {
		s := newTestServer(t, false)
		s.borrowers.On("DeleteBorrower", mock.Anything, "br1").Return(entities.ErrBorrowerHasLoans)

		resp := s.do(t, http.MethodDelete, "/api/borrowers/br1", "", s.token(t, entities.RoleJuniorStaff))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestUserEndpoints(t *testing.T) {
	t.Run("register patron without token", func(t *testing.T) {
		s := newTestServer(t, false)
		s.users.On("Register", mock.Anything, api.RegisterCommand{Username: "reader", Password: "Secret123"}).
			Return(&entities.User{ID: "u1", Username: "reader"}, nil)

		resp := s.do(t, http.MethodPost, "/api/users/register", `{"username":"reader","password":"Secret123"}`, "")

		require.Equal(t, http.StatusCreated, resp.StatusCode)
		body := decode[map[string]any](t, resp)
		assert.Equal(t, "None", body["role"])
		assert.NotContains(t, body, "passwordHash")
	})

	t.Run("register with a role needs senior staff", func(t *testing.T) {
		s := newTestServer(t, false)

		resp := s.do(t, http.MethodPost, "/api/users/register",
			`{"username":"clerk","password":"Secret123","role":"JuniorStaff"}`, s.token(t, entities.RoleJuniorStaff))

		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("senior staff registers staff", func(t *testing.T) {
		s := newTestServer(t, false)
		s.users.On("Register", mock.Anything, api.RegisterCommand{
			Username: "clerk", Password: "Secret123", Role: entities.RoleJuniorStaff,
		}).Return(&entities.User{ID: "u2", Username: "clerk", Role: entities.RoleJuniorStaff}, nil)

		resp := s.do(t, http.MethodPost, "/api/users/register",
			`{"username":"clerk","password":"Secret123","role":"JuniorStaff"}`, s.token(t, entities.RoleSeniorStaff))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("weak password", func(t *testing.T) {
		s := newTestServer(t, false)

		resp := s.do(t, http.MethodPost, "/api/users/register", `{"username":"reader","password":"short"}`, "")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		problem := decode[httpadapter.Problem](t, resp)
		assert.NotEmpty(t, problem.Errors["password"])
	})

	t.Run("login", func(t *testing.T) {
		s := newTestServer(t, false)
		expires := time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC)
		s.users.On("Login", mock.Anything, "reader", "Secret123").
			Return(&domainservices.AccessToken{Token: "tok", TokenID: "jti", ExpiresAt: expires}, nil)

		resp := s.do(t, http.MethodPost, "/api/users/login", `{"username":"reader","password":"Secret123"}`, "")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode[map[string]any](t, resp)
		assert.Equal(t, "tok", body["accessToken"])
		assert.Equal(t, "Bearer", body["tokenType"])
	})

	t.Run("logout passes the principal", func(t *testing.T) {
		s := newTestServer(t, false)
		s.users.On("Logout", mock.Anything, mock.MatchedBy(func(p *domainservices.Principal) bool {
			return p.UserID == "user-None" && p.TokenID != ""
		})).Return(nil)

		resp := s.do(t, http.MethodPost, "/api/users/logout", "", s.token(t, entities.RoleNone))

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestErrorTranslation(t *testing.T) {
	t.Run("internal detail is hidden in production", func(t *testing.T) {
		s := newTestServer(t, true)
		s.books.On("ListBooks", mock.Anything).Return(nil, errors.New("pq: connection reset by peer"))

		resp := s.do(t, http.MethodGet, "/api/books", "", "")

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		problem := decode[httpadapter.Problem](t, resp)
		assert.NotContains(t, problem.Detail, "connection reset")
	})

	t.Run("internal detail is shown in development", func(t *testing.T) {
		s := newTestServer(t, false)
		s.books.On("ListBooks", mock.Anything).Return(nil, errors.New("pq: connection reset by peer"))

		resp := s.do(t, http.MethodGet, "/api/books", "", "")

		problem := decode[httpadapter.Problem](t, resp)
		assert.Contains(t, problem.Detail, "connection reset")
	})

	t.Run("unknown route", func(t *testing.T) {
		s := newTestServer(t, false)

		resp := s.do(t, http.MethodGet, "/api/shelves", "", "")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, httpadapter.MIMEProblemJSON, resp.Header.Get("Content-Type"))
	})

	t.Run("panic becomes internal error", func(t *testing.T) {
		s := newTestServer(t, false)
		s.authors.On("GetAuthor", mock.Anything, "a1").Run(func(mock.Arguments) {
			panic("boom")
		})

		resp := s.do(t, http.MethodGet, "/api/authors/a1", "", "")

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	t.Run("client request id is echoed", func(t *testing.T) {
		s := newTestServer(t, false)
		s.authors.On("GetAuthor", mock.Anything, "a1").Return(nil, entities.ErrAuthorNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/authors/a1", nil)
		req.Header.Set(middleware.HeaderRequestID, "req-42")
		resp, err := s.fiber.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, "req-42", resp.Header.Get(middleware.HeaderRequestID))
		problem := decode[httpadapter.Problem](t, resp)
		assert.Equal(t, "req-42", problem.TraceID)
		assert.Equal(t, http.StatusNotFound, problem.Status)
	})
}
