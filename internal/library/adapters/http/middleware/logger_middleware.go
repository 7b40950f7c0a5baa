package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gobooklend/pkg/logger"
)

// NewLoggerMiddleware логирует начало и завершение каждого запроса. Ошибку
// обработчика он сразу передает в ErrorHandler приложения, чтобы записать
// итоговый статус ответа.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		start := time.Now()

		log := logger.Log(requestCtx).With(
			zap.String("path", ctx.Path()),
			zap.String("method", ctx.Method()),
			zap.String("ip", ctx.IP()),
		)

		log.Debug(requestCtx, "Request started")

		if err := ctx.Next(); err != nil {
			if herr := ctx.App().ErrorHandler(ctx, err); herr != nil {
				log.Error(requestCtx, "Error handler failed", zap.Error(herr))
				_ = ctx.SendStatus(fiber.StatusInternalServerError)
			}
		}

		log.Info(requestCtx, "Request completed",
			zap.Int("status", ctx.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)))
		return nil
	}
}
