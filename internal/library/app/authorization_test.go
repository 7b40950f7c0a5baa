package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gobooklend/internal/library/app"
	"gobooklend/internal/library/domain/apperr"
	"gobooklend/internal/library/domain/services"
)

var issuedAt = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

func claimsFor(role string) *services.TokenClaims {
	return &services.TokenClaims{
		Subject:   "U1",
		Role:      role,
		TokenID:   "T1",
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(time.Hour),
	}
}

func notRevoked(r *mockRevocation) {
	r.On("IsTokenRevoked", mock.Anything, "T1").Return(false, nil)
	r.On("UserTokensRevokedAt", mock.Anything, "U1").Return(time.Time{}, false, nil)
}

func TestAuthorize(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		credential string
		op         services.Operation
		setupMocks func(*mockTokenService, *mockRevocation)
		allowed    bool
		wantKind   apperr.Kind
	}{
		{
			name:       "missing credential",
			credential: "",
			op:         services.OpBookCreate,
			setupMocks: func(*mockTokenService, *mockRevocation) {},
			wantKind:   apperr.KindUnauthorized,
		},
		{
			name:       "junior staff cannot delete books",
			credential: "tok",
			op:         services.OpBookDelete,
			setupMocks: func(tokens *mockTokenService, r *mockRevocation) {
				tokens.On("Decode", ctx, "tok").Return(claimsFor("JuniorStaff"), nil)
				notRevoked(r)
			},
			wantKind: apperr.KindForbidden,
		},
		{
			name:       "senior staff can delete books",
			credential: "tok",
			op:         services.OpBookDelete,
			setupMocks: func(tokens *mockTokenService, r *mockRevocation) {
				tokens.On("Decode", ctx, "tok").Return(claimsFor("SeniorStaff"), nil)
				notRevoked(r)
			},
			allowed: true,
		},
		{
			name:       "junior staff lists loans",
			credential: "tok",
			op:         services.OpLoanList,
			setupMocks: func(tokens *mockTokenService, r *mockRevocation) {
				tokens.On("Decode", ctx, "tok").Return(claimsFor("JuniorStaff"), nil)
				notRevoked(r)
			},
			allowed: true,
		},
		{
			name:       "plain user may borrow",
			credential: "tok",
			op:         services.OpLoanCreate,
			setupMocks: func(tokens *mockTokenService, r *mockRevocation) {
				tokens.On("Decode", ctx, "tok").Return(claimsFor("None"), nil)
				notRevoked(r)
			},
			allowed: true,
		},
		{
			name:       "expired token",
			credential: "tok",
			op:         services.OpLoanCreate,
			setupMocks: func(tokens *mockTokenService, _ *mockRevocation) {
				tokens.On("Decode", ctx, "tok").Return(nil, services.ErrExpiredToken)
			},
			wantKind: apperr.KindUnauthorized,
		},
		{
			name:       "malformed token",
			credential: "tok",
			op:         services.OpLoanCreate,
			setupMocks: func(tokens *mockTokenService, _ *mockRevocation) {
				tokens.On("Decode", ctx, "tok").Return(nil, errors.New("bad segment"))
			},
			wantKind: apperr.KindUnauthorized,
		},
		{
			name:       "unknown role claim",
			credential: "tok",
			op:         services.OpLoanCreate,
			setupMocks: func(tokens *mockTokenService, _ *mockRevocation) {
				tokens.On("Decode", ctx, "tok").Return(claimsFor("Librarian"), nil)
			},
			wantKind: apperr.KindUnauthorized,
		},
		{
			name:       "token revoked by logout",
			credential: "tok",
			op:         services.OpLoanCreate,
			setupMocks: func(tokens *mockTokenService, r *mockRevocation) {
				tokens.On("Decode", ctx, "tok").Return(claimsFor("None"), nil)
				r.On("IsTokenRevoked", mock.Anything, "T1").Return(true, nil)
			},
			wantKind: apperr.KindUnauthorized,
		},
		{
			name:       "token issued before role change",
			credential: "tok",
			op:         services.OpLoanCreate,
			setupMocks: func(tokens *mockTokenService, r *mockRevocation) {
				tokens.On("Decode", ctx, "tok").Return(claimsFor("SeniorStaff"), nil)
				r.On("IsTokenRevoked", mock.Anything, "T1").Return(false, nil)
				r.On("UserTokensRevokedAt", mock.Anything, "U1").Return(issuedAt.Add(time.Minute), true, nil)
			},
			wantKind: apperr.KindUnauthorized,
		},
		{
			name:       "token issued in the same second as the change",
			credential: "tok",
			op:         services.OpLoanCreate,
			setupMocks: func(tokens *mockTokenService, r *mockRevocation) {
				tokens.On("Decode", ctx, "tok").Return(claimsFor("SeniorStaff"), nil)
				r.On("IsTokenRevoked", mock.Anything, "T1").Return(false, nil)
				r.On("UserTokensRevokedAt", mock.Anything, "U1").Return(issuedAt, true, nil)
			},
			allowed: true,
		},
		{
			name:       "revocation store unavailable",
			credential: "tok",
			op:         services.OpLoanCreate,
			setupMocks: func(tokens *mockTokenService, r *mockRevocation) {
				tokens.On("Decode", ctx, "tok").Return(claimsFor("None"), nil)
				r.On("IsTokenRevoked", mock.Anything, "T1").Return(false, errors.New("redis down"))
			},
			wantKind: apperr.KindInternal,
		},
		{
			name:       "operation missing from policy",
			credential: "tok",
			op:         services.Operation("book:burn"),
			setupMocks: func(tokens *mockTokenService, r *mockRevocation) {
				tokens.On("Decode", ctx, "tok").Return(claimsFor("SeniorStaff"), nil)
				notRevoked(r)
			},
			wantKind: apperr.KindForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := new(mockTokenService)
			revocation := new(mockRevocation)
			tt.setupMocks(tokens, revocation)

			gate := app.NewAuthorizationGate(tokens, revocation, services.DefaultPolicy())
			principal, err := gate.Authorize(ctx, tt.credential, tt.op)

			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, "U1", principal.UserID)
				assert.Equal(t, "T1", principal.TokenID)
				return
			}
			require.Error(t, err)
			assert.Nil(t, principal)
			assert.Equal(t, tt.wantKind, apperr.KindOf(err))
			tokens.AssertExpectations(t)
		})
	}
}
