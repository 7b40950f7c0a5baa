package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gobooklend/pkg/logger"
)

// NewRecoveryMiddleware превращает панику обработчика во внутреннюю ошибку.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				requestCtx := ctx.Context()
				logger.Log(requestCtx).Error(requestCtx, "Server panic",
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)
				err = fmt.Errorf("panic: %v", r)
			}
		}()

		return ctx.Next()
	}
}
