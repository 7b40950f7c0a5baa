package resilience_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobooklend/internal/library/adapters/resilience"
	"gobooklend/internal/library/domain/apperr"
	"gobooklend/pkg/logger"
)

type manualClock struct{ t time.Time }

func (c *manualClock) Now() time.Time          { return c.t }
func (c *manualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

var errStore = errors.New("connection refused")

func failing(context.Context) error { return errStore }
func passing(context.Context) error { return nil }

func newBreaker(clock *manualClock) *resilience.CircuitBreaker {
	return resilience.NewCircuitBreakerWithClock("test", resilience.CircuitBreakerConfig{
		ErrorThreshold:   3,
		Timeout:          10 * time.Second,
		SuccessThreshold: 2,
	}, clock.Now)
}

func TestCircuitBreaker(t *testing.T) {
	ctx := logger.NewContext(context.Background(), logger.NewNop())

	t.Run("opens after consecutive failures", func(t *testing.T) {
		cb := newBreaker(&manualClock{t: time.Unix(0, 0)})

		for range 3 {
			assert.ErrorIs(t, cb.Execute(ctx, failing), errStore)
		}
		assert.Equal(t, resilience.StateOpen, cb.GetState())

		called := false
		err := cb.Execute(ctx, func(context.Context) error { called = true; return nil })
		require.ErrorIs(t, err, resilience.ErrCircuitOpen)
		assert.False(t, called)
		assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	})

	t.Run("success resets the failure count", func(t *testing.T) {
		cb := newBreaker(&manualClock{t: time.Unix(0, 0)})

		_ = cb.Execute(ctx, failing)
		_ = cb.Execute(ctx, failing)
		require.NoError(t, cb.Execute(ctx, passing))
		_ = cb.Execute(ctx, failing)
		_ = cb.Execute(ctx, failing)

		assert.Equal(t, resilience.StateClosed, cb.GetState())
	})

	t.Run("half-open closes after enough successes", func(t *testing.T) {
		clock := &manualClock{t: time.Unix(0, 0)}
		cb := newBreaker(clock)
		for range 3 {
			_ = cb.Execute(ctx, failing)
		}

		clock.Advance(10 * time.Second)
		require.NoError(t, cb.Execute(ctx, passing))
		assert.Equal(t, resilience.StateHalfOpen, cb.GetState())
		require.NoError(t, cb.Execute(ctx, passing))
		assert.Equal(t, resilience.StateClosed, cb.GetState())
	})

	t.Run("half-open failure opens again", func(t *testing.T) {
		clock := &manualClock{t: time.Unix(0, 0)}
		cb := newBreaker(clock)
		for range 3 {
			_ = cb.Execute(ctx, failing)
		}

		clock.Advance(11 * time.Second)
		assert.ErrorIs(t, cb.Execute(ctx, failing), errStore)
		assert.Equal(t, resilience.StateOpen, cb.GetState())
		assert.ErrorIs(t, cb.Execute(ctx, passing), resilience.ErrCircuitOpen)
	})

	t.Run("canceled requests are not counted", func(t *testing.T) {
		cb := newBreaker(&manualClock{t: time.Unix(0, 0)})
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		for range 5 {
			_ = cb.Execute(canceled, func(ctx context.Context) error { return ctx.Err() })
		}
		assert.Equal(t, resilience.StateClosed, cb.GetState())
	})

	t.Run("zero config falls back to defaults", func(t *testing.T) {
		cb := resilience.NewCircuitBreaker("defaults", resilience.CircuitBreakerConfig{})
		for range 4 {
			_ = cb.Execute(ctx, failing)
		}
		assert.Equal(t, resilience.StateClosed, cb.GetState())
		_ = cb.Execute(ctx, failing)
		assert.Equal(t, resilience.StateOpen, cb.GetState())
		assert.Equal(t, "open", cb.GetState().String())
	})
}
