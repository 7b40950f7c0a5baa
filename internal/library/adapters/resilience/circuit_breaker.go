// Package resilience защищает вызовы внешних хранилищ от каскадных отказов.
package resilience

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"gobooklend/internal/library/domain/apperr"
	"gobooklend/pkg/logger"
)

// CircuitState представляет состояние Circuit Breaker.
type CircuitState int

// Состояния Circuit Breaker.
const (
	// StateClosed - запросы проходят.
	StateClosed CircuitState = iota
	// StateOpen - запросы отклоняются без обращения к хранилищу.
	StateOpen
	// StateHalfOpen - пробные запросы.
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

const (
	LogCircuitStateChange = "circuit breaker state changed"
	LogCircuitTrip        = "circuit breaker tripped"
	LogCircuitReject      = "circuit breaker rejected request"
)

// ErrCircuitOpen возвращается, пока Circuit Breaker открыт.
var ErrCircuitOpen = apperr.New(apperr.KindInternal, "circuit breaker is open")

// CircuitBreakerConfig содержит настройки Circuit Breaker.
type CircuitBreakerConfig struct {
	// ErrorThreshold - число ошибок подряд до перехода в открытое состояние.
	ErrorThreshold int
	// Timeout - время в открытом состоянии до пробного запроса.
	Timeout time.Duration
	// SuccessThreshold - число успешных пробных запросов для закрытия.
	SuccessThreshold int
}

// DefaultCircuitBreakerConfig возвращает конфигурацию Circuit Breaker по умолчанию.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		ErrorThreshold:   5,
		Timeout:          10 * time.Second,
		SuccessThreshold: 2,
	}
}

// CircuitBreaker реализует паттерн Circuit Breaker.
type CircuitBreaker struct {
	name string
	now  func() time.Time
	mu   sync.Mutex

	state           CircuitState
	config          CircuitBreakerConfig
	failures        int
	successes       int
	lastStateChange time.Time
}

// NewCircuitBreaker создает новый экземпляр Circuit Breaker.
func NewCircuitBreaker(name string, config CircuitBreakerConfig) *CircuitBreaker {
	return NewCircuitBreakerWithClock(name, config, time.Now)
}

// NewCircuitBreakerWithClock создает Circuit Breaker с заданным источником времени.
func NewCircuitBreakerWithClock(name string, config CircuitBreakerConfig, now func() time.Time) *CircuitBreaker {
	defaults := DefaultCircuitBreakerConfig()
	if config.ErrorThreshold <= 0 {
		config.ErrorThreshold = defaults.ErrorThreshold
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = defaults.SuccessThreshold
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	return &CircuitBreaker{
		name:            name,
		now:             now,
		state:           StateClosed,
		config:          config,
		lastStateChange: now(),
	}
}

// Execute выполняет fn, если Circuit Breaker пропускает запрос.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if !cb.AllowRequest(ctx) {
		return ErrCircuitOpen
	}

	err := fn(ctx)
	cb.RecordResult(ctx, err)
	return err
}

// AllowRequest проверяет возможность выполнения запроса.
func (cb *CircuitBreaker) AllowRequest(ctx context.Context) bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if cb.now().Sub(cb.lastStateChange) >= cb.config.Timeout {
			cb.transition(ctx, StateHalfOpen)
			return true
		}
		logger.Log(ctx).Warn(ctx, LogCircuitReject, zap.String("circuit_breaker", cb.name))
		return false
	default:
		return false
	}
}

// RecordResult записывает результат выполнения запроса.
func (cb *CircuitBreaker) RecordResult(ctx context.Context, err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	// отмена запроса клиентом не говорит о состоянии хранилища
	if err != nil && ctx.Err() != nil {
		return
	}

	if err != nil {
		switch cb.state {
		case StateClosed:
			cb.failures++
			if cb.failures >= cb.config.ErrorThreshold {
				logger.Log(ctx).Warn(ctx, LogCircuitTrip,
					zap.String("circuit_breaker", cb.name), zap.Int("failures", cb.failures))
				cb.transition(ctx, StateOpen)
			}
		case StateHalfOpen:
			cb.transition(ctx, StateOpen)
		}
		return
	}

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.transition(ctx, StateClosed)
		}
	}
}

func (cb *CircuitBreaker) transition(ctx context.Context, state CircuitState) {
	logger.Log(ctx).Info(ctx, LogCircuitStateChange,
		zap.String("circuit_breaker", cb.name),
		zap.Stringer("from", cb.state),
		zap.Stringer("to", state))

	cb.state = state
	cb.lastStateChange = cb.now()
	cb.failures = 0
	cb.successes = 0
}

// GetState возвращает текущее состояние Circuit Breaker.
func (cb *CircuitBreaker) GetState() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}
