package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/domain/services"
	"gobooklend/internal/library/ports/api"
	"gobooklend/internal/library/ports/repositories"
	"gobooklend/pkg/logger"
)

const (
	methodIsAvailable    = "IsAvailable"
	methodIsCurrentlyOut = "IsCurrentlyOut"

	msgCheckingAvailability = "checking book availability"
	msgBookUnavailable      = "requested period overlaps an existing loan"
	msgErrCheckOverlap      = "failed to check overlapping loans"
	msgErrCheckOpenLoan     = "failed to check open loans"

	errCtxCheckingOverlap  = "checking overlapping loans"
	errCtxCheckingOpenLoan = "checking open loans"
)

// AvailabilityOracleImpl отвечает на вопрос, свободна ли книга на период.
type AvailabilityOracleImpl struct {
	loans repositories.LoanRepository
	clock Clock
}

// NewAvailabilityOracle создает оракул доступности.
func NewAvailabilityOracle(loans repositories.LoanRepository, clock Clock) api.AvailabilityOracle {
	return &AvailabilityOracleImpl{loans: loans, clock: clock}
}

// IsAvailable возвращает false, если период [start, end) пересекается с периодом
// любой существующей выдачи книги. end == nil - бессрочный период.
func (o *AvailabilityOracleImpl) IsAvailable(ctx context.Context, bookID string, start time.Time, end *time.Time) (bool, error) {
	log := logger.Log(ctx).With(zap.String("method", methodIsAvailable), zap.String("bookID", bookID))

	period := services.NewDateRange(start, end)
	if period.Empty() {
		return false, entities.ErrLoanPeriodInvalid
	}
	log.Debug(ctx, msgCheckingAvailability, zap.Time("start", period.Start), zap.Bool("unbounded", period.Unbounded()))

	overlap, err := o.loans.HasOverlappingLoan(ctx, bookID, period)
	if err != nil {
		log.Error(ctx, msgErrCheckOverlap, zap.Error(err))
		return false, fmt.Errorf("%s: %w", errCtxCheckingOverlap, err)
	}
	if overlap {
		log.Debug(ctx, msgBookUnavailable)
	}
	return !overlap, nil
}

// IsCurrentlyOut сообщает, выдана ли книга сейчас: есть выдача без даты
// возврата или с датой возврата в будущем.
func (o *AvailabilityOracleImpl) IsCurrentlyOut(ctx context.Context, bookID string) (bool, error) {
	out, err := o.loans.HasOpenLoan(ctx, bookID, o.clock.today())
	if err != nil {
		logger.Log(ctx).Error(ctx, msgErrCheckOpenLoan,
			zap.String("method", methodIsCurrentlyOut), zap.String("bookID", bookID), zap.Error(err))
		return false, fmt.Errorf("%s: %w", errCtxCheckingOpenLoan, err)
	}
	return out, nil
}
