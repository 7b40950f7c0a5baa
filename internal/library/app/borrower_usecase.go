package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"gobooklend/internal/library/domain/apperr"
	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/ports/api"
	"gobooklend/internal/library/ports/repositories"
	"gobooklend/pkg/logger"
)

const (
	methodCreateBorrower = "CreateBorrower"
	methodDeleteBorrower = "DeleteBorrower"
	methodUpdateBorrower = "UpdateBorrower"
	methodListBorrowers  = "ListBorrowers"

	msgCreatingBorrower    = "creating borrower profile"
	msgBorrowerCreated     = "borrower profile created"
	msgStaffCannotBorrow   = "user with a staff role cannot become a borrower"
	msgBorrowerExists      = "borrower profile already exists for user"
	msgDeletingBorrower    = "deleting borrower"
	msgBorrowerHasLoans    = "borrower has active loans"
	msgBorrowerDeleted     = "borrower deleted"
	msgBorrowerUpdated     = "borrower updated"
	msgErrCheckProfile     = "failed to check existing borrower profile"
	msgErrCheckActiveLoans = "failed to check active loans"
	msgErrBorrowerStore    = "borrower store operation failed"

	errCtxFindingUser      = "finding user"
	errCtxCheckingProfile  = "checking existing borrower profile"
	errCtxCreatingBorrower = "creating borrower"
	errCtxCheckingLoans    = "checking active loans"
	errCtxDeletingBorrower = "deleting borrower"
	errCtxUpdatingBorrower = "updating borrower"
	errCtxListingBorrowers = "listing borrowers"
)

// BorrowerUseCaseImpl следит за правилами профилей читателей: один профиль на
// пользователя и запрет удаления при активных выдачах.
type BorrowerUseCaseImpl struct {
	borrowers repositories.BorrowerRepository
	users     repositories.UserRepository
	clock     Clock
}

// NewBorrowerUseCase создает сценарии работы с читателями.
func NewBorrowerUseCase(
	borrowers repositories.BorrowerRepository,
	users repositories.UserRepository,
	clock Clock,
) api.BorrowerUseCase {
	return &BorrowerUseCaseImpl{borrowers: borrowers, users: users, clock: clock}
}

// CreateBorrower создает профиль читателя для пользователя без служебной роли.
func (u *BorrowerUseCaseImpl) CreateBorrower(ctx context.Context, cmd api.CreateBorrowerCommand) (*entities.Borrower, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateBorrower), zap.String("userID", cmd.UserID))
	log.Debug(ctx, msgCreatingBorrower)

	user, err := u.users.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}
	if user.Role.IsStaff() {
		log.Info(ctx, msgStaffCannotBorrow, zap.String("role", user.Role.String()))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingBorrower, entities.ErrStaffCannotBorrow)
	}

	existing, err := u.borrowers.FindByUserID(ctx, cmd.UserID)
	if err != nil && !errors.Is(err, entities.ErrBorrowerNotFound) {
		log.Error(ctx, msgErrCheckProfile, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingProfile, err)
	}
	if existing != nil {
		log.Info(ctx, msgBorrowerExists, zap.String("borrowerID", existing.ID))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingBorrower, entities.ErrBorrowerExists)
	}

	created, err := u.borrowers.Create(ctx, &entities.Borrower{
		UserID: cmd.UserID,
		Name:   cmd.Name,
		Email:  cmd.Email,
		Phone:  cmd.Phone,
	})
	if err != nil {
		logStoreError(ctx, log, msgErrBorrowerStore, err)
		return nil, fmt.Errorf("%s: %w", errCtxCreatingBorrower, err)
	}

	log.Info(ctx, msgBorrowerCreated, zap.String("borrowerID", created.ID))
	return created, nil
}

// GetBorrower возвращает профиль по идентификатору.
func (u *BorrowerUseCaseImpl) GetBorrower(ctx context.Context, id string) (*entities.Borrower, error) {
	b, err := u.borrowers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingBorrower, err)
	}
	return b, nil
}

// ListBorrowers возвращает все профили.
func (u *BorrowerUseCaseImpl) ListBorrowers(ctx context.Context) ([]*entities.Borrower, error) {
	list, err := u.borrowers.List(ctx)
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrBorrowerStore, zap.String("method", methodListBorrowers), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingBorrowers, err)
	}
	return list, nil
}

// UpdateBorrower частично обновляет контактные данные.
func (u *BorrowerUseCaseImpl) UpdateBorrower(ctx context.Context, id string, upd entities.BorrowerUpdate) (*entities.Borrower, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateBorrower), zap.String("borrowerID", id))

	b, err := u.borrowers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFindingBorrower, err)
	}
	upd.Apply(b)

	updated, err := u.borrowers.Update(ctx, b)
	if err != nil {
		logStoreError(ctx, log, msgErrBorrowerStore, err)
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingBorrower, err)
	}

	log.Info(ctx, msgBorrowerUpdated)
	return updated, nil
}

// DeleteBorrower удаляет профиль, если у читателя нет выдачи, активной сегодня.
func (u *BorrowerUseCaseImpl) DeleteBorrower(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteBorrower), zap.String("borrowerID", id))
	log.Debug(ctx, msgDeletingBorrower)

	if _, err := u.borrowers.FindByID(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", errCtxFindingBorrower, err)
	}

	active, err := u.borrowers.HasActiveLoans(ctx, id, u.clock.today())
	if err != nil {
		log.Error(ctx, msgErrCheckActiveLoans, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCheckingLoans, err)
	}
	if active {
		log.Info(ctx, msgBorrowerHasLoans)
		return fmt.Errorf("%s: %w", errCtxDeletingBorrower, entities.ErrBorrowerHasLoans)
	}

	if err := u.borrowers.Delete(ctx, id); err != nil {
		logStoreError(ctx, log, msgErrBorrowerStore, err)
		return fmt.Errorf("%s: %w", errCtxDeletingBorrower, err)
	}

	log.Info(ctx, msgBorrowerDeleted)
	return nil
}

// logStoreError пишет ошибки хранилища: доменные на уровне info, прочие как error.
func logStoreError(ctx context.Context, log *logger.Logger, msg string, err error) {
	if apperr.KindOf(err) == apperr.KindInternal {
		log.Error(ctx, msg, zap.Error(err))
		return
	}
	log.Info(ctx, msg, zap.Error(err))
}
