package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"gobooklend/internal/library/domain/services"
	"gobooklend/internal/library/ports/api"
)

const (
	headerAuthorization = "Authorization"
	bearerPrefix        = "bearer "

	localsPrincipal = "principal"
)

// BearerToken извлекает токен из заголовка Authorization. Пустая строка
// означает отсутствие учетных данных; заголовок другой схемы возвращается как есть
// и будет отвергнут при разборе токена.
func BearerToken(ctx fiber.Ctx) string {
	header := strings.TrimSpace(ctx.Get(headerAuthorization))
	if len(header) >= len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(header[len(bearerPrefix):])
	}
	return header
}

// RequireOperation пропускает запрос, только если субъект вправе выполнить op.
// Проверка выполняется до чтения тела запроса.
func RequireOperation(gate api.AuthorizationGate, op services.Operation) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		principal, err := gate.Authorize(ctx.Context(), BearerToken(ctx), op)
		if err != nil {
			return err
		}

		ctx.Locals(localsPrincipal, principal)
		return ctx.Next()
	}
}

// PrincipalFrom возвращает субъекта, сохраненного RequireOperation.
func PrincipalFrom(ctx fiber.Ctx) (*services.Principal, bool) {
	principal, ok := ctx.Locals(localsPrincipal).(*services.Principal)
	return principal, ok && principal != nil
}
