// Package shutdown ожидает сигнал завершения и выполняет хуки остановки.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"gobooklend/pkg/logger"
)

const (
	msgShutdownSignal  = "shutdown signal received"
	msgShutdownContext = "parent context done, shutting down"
	msgHookFailed      = "shutdown hook failed"
	msgShutdownTimeout = "shutdown timed out, some hooks did not finish"
)

// Hook - функция остановки одного компонента.
type Hook func(context.Context) error

// Wait блокируется до SIGINT/SIGTERM или отмены ctx, затем параллельно
// выполняет hooks, ограничивая их общим timeout.
func Wait(ctx context.Context, timeout time.Duration, hooks ...Hook) {
	log := logger.Log(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		log.Info(ctx, msgShutdownSignal, zap.String("signal", sig.String()))
	case <-ctx.Done():
		log.Info(ctx, msgShutdownContext)
	}

	hookCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	var wg sync.WaitGroup
	for i, hook := range hooks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := hook(hookCtx); err != nil {
				log.Error(hookCtx, msgHookFailed, zap.Int("hook", i), zap.Error(err))
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
		log.Warn(ctx, msgShutdownTimeout)
	}
}
