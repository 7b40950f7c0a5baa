// Package borrowers содержит HTTP обработчики профилей читателей.
package borrowers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gobooklend/internal/library/adapters/http/dto"
	"gobooklend/internal/library/ports/api"
	"gobooklend/pkg/logger"
)

const (
	LogHandlerCreate = "borrower handler: create"
	LogHandlerUpdate = "borrower handler: update"
	LogHandlerDelete = "borrower handler: delete"

	paramID = "id"
)

// Handler содержит HTTP обработчики читателей.
type Handler struct {
	borrowers api.BorrowerUseCase
}

// NewHandler создает обработчик читателей.
func NewHandler(borrowers api.BorrowerUseCase) *Handler {
	return &Handler{borrowers: borrowers}
}

// Create регистрирует профиль читателя.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerCreate)

	var req dto.CreateBorrowerRequest
	if err := dto.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	borrower, err := h.borrowers.CreateBorrower(requestCtx, req.ToCommand())
	if err != nil {
		return fmt.Errorf("create borrower: %w", err)
	}
	return dto.Respond(ctx, http.StatusCreated, dto.NewBorrowerResponse(borrower))
}

// Get возвращает профиль по идентификатору.
func (h *Handler) Get(ctx fiber.Ctx) error {
	borrower, err := h.borrowers.GetBorrower(ctx.Context(), ctx.Params(paramID))
	if err != nil {
		return fmt.Errorf("get borrower: %w", err)
	}
	return dto.Respond(ctx, http.StatusOK, dto.NewBorrowerResponse(borrower))
}

// List возвращает все профили.
func (h *Handler) List(ctx fiber.Ctx) error {
	borrowers, err := h.borrowers.ListBorrowers(ctx.Context())
	if err != nil {
		return fmt.Errorf("list borrowers: %w", err)
	}
	return dto.Respond(ctx, http.StatusOK, dto.NewBorrowerResponses(borrowers))
}

// Update частично изменяет профиль.
func (h *Handler) Update(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	id := ctx.Params(paramID)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerUpdate, zap.String("borrowerID", id))

	var req dto.UpdateBorrowerRequest
	if err := dto.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	borrower, err := h.borrowers.UpdateBorrower(requestCtx, id, req.ToUpdate())
	if err != nil {
		return fmt.Errorf("update borrower: %w", err)
	}
	return dto.Respond(ctx, http.StatusOK, dto.NewBorrowerResponse(borrower))
}

// Delete удаляет профиль без активных выдач.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	id := ctx.Params(paramID)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerDelete, zap.String("borrowerID", id))

	if err := h.borrowers.DeleteBorrower(requestCtx, id); err != nil {
		return fmt.Errorf("delete borrower: %w", err)
	}
	return ctx.SendStatus(http.StatusNoContent)
}
