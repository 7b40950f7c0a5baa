// Package users содержит HTTP обработчики учетных записей.
package users

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gobooklend/internal/library/adapters/http/dto"
	"gobooklend/internal/library/adapters/http/middleware"
	"gobooklend/internal/library/domain/apperr"
	"gobooklend/internal/library/domain/services"
	"gobooklend/internal/library/ports/api"
	"gobooklend/pkg/logger"
)

const (
	LogHandlerRegister = "user handler: register"
	LogHandlerLogin    = "user handler: login"
	LogHandlerLogout   = "user handler: logout"
	LogHandlerUpdate   = "user handler: update"

	paramID = "id"
)

// errNoPrincipal - маршрут выхода подключен без проверки авторизации.
var errNoPrincipal = apperr.New(apperr.KindInternal, "authenticated principal is missing from request")

// Handler содержит HTTP обработчики пользователей.
type Handler struct {
	users api.UserUseCase
	gate  api.AuthorizationGate
}

// NewHandler создает обработчик пользователей.
func NewHandler(users api.UserUseCase, gate api.AuthorizationGate) *Handler {
	return &Handler{users: users, gate: gate}
}

// Register создает пользователя. Регистрация со служебной ролью требует
// токена SeniorStaff, и проверка выполняется до валидации тела.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := dto.Bind(ctx, &req); err != nil {
		return err
	}

	if req.RequestedRole().IsStaff() {
		if _, err := h.gate.Authorize(requestCtx, middleware.BearerToken(ctx), services.OpUserAssignRole); err != nil {
			return err
		}
	}

	if err := apperr.NewValidation(req.Validate()); err != nil {
		return err
	}

	user, err := h.users.Register(requestCtx, req.ToCommand())
	if err != nil {
		return fmt.Errorf("register user: %w", err)
	}
	return dto.Respond(ctx, http.StatusCreated, dto.NewUserResponse(user))
}

// Login выдает токен доступа.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := dto.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	token, err := h.users.Login(requestCtx, req.Username, req.Password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return dto.Respond(ctx, http.StatusOK, dto.NewTokenResponse(token))
}

// Logout отзывает предъявленный токен.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	principal, ok := middleware.PrincipalFrom(ctx)
	if !ok {
		return errNoPrincipal
	}
	logger.Log(requestCtx).Info(requestCtx, LogHandlerLogout, zap.String("userID", principal.UserID))

	if err := h.users.Logout(requestCtx, principal); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return ctx.SendStatus(http.StatusNoContent)
}

// Get возвращает пользователя.
func (h *Handler) Get(ctx fiber.Ctx) error {
	user, err := h.users.GetUser(ctx.Context(), ctx.Params(paramID))
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	return dto.Respond(ctx, http.StatusOK, dto.NewUserResponse(user))
}

// Update изменяет имя, пароль или роль пользователя.
func (h *Handler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	id := ctx.Params(paramID)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerUpdate, zap.String("userID", id))

	var req dto.UpdateUserRequest
	if err := dto.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateUser(requestCtx, id, req.ToUpdate())
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return dto.Respond(ctx, http.StatusOK, dto.NewUserResponse(user))
}
