// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"

	"gobooklend/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

const maxRequestIDLength = 128

// NewRequestIDMiddleware кладет идентификатор запроса в контекст и в ответ.
// Идентификатор клиента принимается, если он не слишком длинный.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = logger.GenerateRequestID()
		}

		ctx.SetContext(logger.NewRequestIDContext(ctx.Context(), requestID))
		ctx.Set(HeaderRequestID, requestID)

		return ctx.Next()
	}
}
