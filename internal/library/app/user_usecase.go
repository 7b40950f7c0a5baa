package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gobooklend/internal/library/domain/apperr"
	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/domain/services"
	"gobooklend/internal/library/ports/api"
	"gobooklend/internal/library/ports/repositories"
	svc "gobooklend/internal/library/ports/services"
	"gobooklend/pkg/logger"
)

const (
	methodRegister    = "Register"
	methodLogin       = "Login"
	methodLogout      = "Logout"
	methodUpdateUser  = "UpdateUser"
	methodEnsureAdmin = "EnsureAdmin"

	msgStartRegistration = "starting user registration"
	msgUsernameTaken     = "username already taken"
	msgUserRegistered    = "user registered"
	msgLoginAttempt      = "login attempt"
	msgLoginUnknownUser  = "login attempt with unknown username"
	msgLoginBadPassword  = "invalid password provided"
	msgUserLoggedIn      = "user logged in"
	msgUserLoggedOut     = "user logged out"
	msgUserUpdated       = "user updated"
	msgUserTokensRevoked = "outstanding tokens revoked after credential change"
	msgAdminExists       = "bootstrap admin already exists"
	msgAdminRoleMismatch = "bootstrap admin exists without SeniorStaff role, leaving unchanged"
	msgAdminCreated      = "bootstrap admin created"
	msgErrHashPassword   = "failed to hash password"
	msgErrVerifyPassword = "failed to verify password"
	msgErrUserStore      = "user store operation failed"
	msgErrIssueToken     = "failed to issue access token"
	msgErrRevokeToken    = "failed to revoke token"

	errCtxCheckingUsername = "checking username"
	errCtxHashingPassword  = "hashing password"
	errCtxCreatingUser     = "creating user"
	errCtxVerifyingPass    = "verifying password"
	errCtxIssuingToken     = "issuing token"
	errCtxRevokingToken    = "revoking token"
	errCtxUpdatingUser     = "updating user"
	errCtxInvalidCreds     = "invalid credentials"
)

// UserUseCaseImpl - учетные записи, вход и выход.
type UserUseCaseImpl struct {
	users      repositories.UserRepository
	passwords  svc.PasswordService
	tokens     svc.TokenService
	revocation svc.TokenRevocation
	clock      Clock
}

// NewUserUseCase создает сценарии работы с пользователями.
func NewUserUseCase(
	users repositories.UserRepository,
	passwords svc.PasswordService,
	tokens svc.TokenService,
	revocation svc.TokenRevocation,
	clock Clock,
) api.UserUseCase {
	return &UserUseCaseImpl{
		users:      users,
		passwords:  passwords,
		tokens:     tokens,
		revocation: revocation,
		clock:      clock,
	}
}

// Register создает пользователя с уникальным именем.
func (u *UserUseCaseImpl) Register(ctx context.Context, cmd api.RegisterCommand) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRegister), zap.String("username", cmd.Username))
	log.Debug(ctx, msgStartRegistration)

	if err := u.ensureUsernameFree(ctx, log, cmd.Username); err != nil {
		return nil, err
	}

	hash, err := u.passwords.Hash(ctx, cmd.Password)
	if err != nil {
		log.Error(ctx, msgErrHashPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
	}

	created, err := u.users.Create(ctx, &entities.User{
		Username:     cmd.Username,
		PasswordHash: hash,
		Role:         cmd.Role,
	})
	if err != nil {
		logStoreError(ctx, log, msgErrUserStore, err)
		return nil, fmt.Errorf("%s: %w", errCtxCreatingUser, err)
	}

	log.Info(ctx, msgUserRegistered, zap.String("userID", created.ID), zap.String("role", created.Role.String()))
	return created, nil
}

func (u *UserUseCaseImpl) ensureUsernameFree(ctx context.Context, log *logger.Logger, username string) error {
	existing, err := u.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrUserStore, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCheckingUsername, err)
	}
	if existing != nil {
		log.Info(ctx, msgUsernameTaken)
		return fmt.Errorf("%s: %w", errCtxCheckingUsername, entities.ErrUsernameTaken)
	}
	return nil
}

// Login проверяет пароль и выпускает токен доступа.
func (u *UserUseCaseImpl) Login(ctx context.Context, username, password string) (*services.AccessToken, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin), zap.String("username", username))
	log.Debug(ctx, msgLoginAttempt)

	user, err := u.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Info(ctx, msgLoginUnknownUser)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCreds, entities.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrUserStore, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	ok, err := u.passwords.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCreds, entities.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrVerifyPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPass, err)
	}
	if !ok {
		log.Info(ctx, msgLoginBadPassword, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCreds, entities.ErrInvalidCredentials)
	}

	token, err := u.tokens.Issue(ctx, user.ID, user.Role)
	if err != nil {
		log.Error(ctx, msgErrIssueToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxIssuingToken, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return token, nil
}

// Logout отзывает предъявленный токен до истечения его срока.
func (u *UserUseCaseImpl) Logout(ctx context.Context, principal *services.Principal) error {
	log := logger.Log(ctx).With(zap.String("method", methodLogout), zap.String("userID", principal.UserID))

	if err := u.revocation.RevokeToken(ctx, principal.TokenID, principal.ExpiresAt); err != nil {
		log.Error(ctx, msgErrRevokeToken, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevokingToken, err)
	}

	log.Info(ctx, msgUserLoggedOut)
	return nil
}

// GetUser возвращает пользователя.
func (u *UserUseCaseImpl) GetUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}
	return user, nil
}

// UpdateUser меняет имя, пароль или роль. Смена пароля или роли отзывает
// ранее выпущенные токены пользователя.
func (u *UserUseCaseImpl) UpdateUser(ctx context.Context, id string, upd entities.UserUpdate) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateUser), zap.String("userID", id))

	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	if upd.Username != nil && *upd.Username != user.Username {
		if err := u.ensureUsernameFree(ctx, log, *upd.Username); err != nil {
			return nil, err
		}
		user.Username = *upd.Username
	}

	revoke := false
	if upd.Password != nil {
		hash, err := u.passwords.Hash(ctx, *upd.Password)
		if err != nil {
			log.Error(ctx, msgErrHashPassword, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxHashingPassword, err)
		}
		user.PasswordHash = hash
		revoke = true
	}
	if upd.Role != nil && *upd.Role != user.Role {
		user.Role = *upd.Role
		revoke = true
	}

	updated, err := u.users.Update(ctx, user)
	if err != nil {
		logStoreError(ctx, log, msgErrUserStore, err)
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingUser, err)
	}

	if revoke {
		if err := u.revocation.RevokeUserTokens(ctx, id, u.clock.now()); err != nil {
			log.Error(ctx, msgErrRevokeToken, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxRevokingToken, err)
		}
		log.Info(ctx, msgUserTokensRevoked)
	}

	log.Info(ctx, msgUserUpdated)
	return updated, nil
}

// EnsureAdmin создает пользователя SeniorStaff при первом запуске.
func (u *UserUseCaseImpl) EnsureAdmin(ctx context.Context, username, password string) error {
	log := logger.Log(ctx).With(zap.String("method", methodEnsureAdmin), zap.String("username", username))

	existing, err := u.users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		if existing.Role != entities.RoleSeniorStaff {
			log.Warn(ctx, msgAdminRoleMismatch, zap.String("role", existing.Role.String()))
			return nil
		}
		log.Debug(ctx, msgAdminExists)
		return nil
	case !errors.Is(err, entities.ErrUserNotFound):
		return fmt.Errorf("%s: %w", errCtxCheckingUsername, err)
	}

	if _, err := u.Register(ctx, api.RegisterCommand{
		Username: username,
		Password: password,
		Role:     entities.RoleSeniorStaff,
	}); err != nil {
		return err
	}

	log.Info(ctx, msgAdminCreated)
	return nil
}
