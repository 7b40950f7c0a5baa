// Package loans содержит HTTP обработчики выдач.
package loans

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
	LogHandlerCreate = "loan handler: create"
	LogHandlerReturn = "loan handler: return"
	LogHandlerGet    = "loan handler: get"
	LogHandlerList   = "loan handler: list"

	paramID = "id"
)

// Handler содержит HTTP обработчики выдач.
type Handler struct {
	loans api.LoanUseCase
}

// NewHandler создает обработчик выдач.
func NewHandler(loans api.LoanUseCase) *Handler {
	return &Handler{loans: loans}
}

// Create оформляет новую выдачу.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerCreate)

	var req dto.CreateLoanRequest
	if err := dto.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	loan, err := h.loans.CreateLoan(requestCtx, req.ToCommand())
	if err != nil {
		return fmt.Errorf("create loan: %w", err)
	}
	return dto.Respond(ctx, http.StatusCreated, dto.NewLoanResponse(loan))
}

// Return фиксирует возврат книги.
func (h *Handler) Return(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	id := ctx.Params(paramID)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerReturn, zap.String("loanID", id))

	var req dto.ReturnLoanRequest
	if err := dto.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	loan, err := h.loans.CloseLoan(requestCtx, id, req.ActualReturnDate())
	if err != nil {
		return fmt.Errorf("return loan: %w", err)
	}
	return dto.Respond(ctx, http.StatusOK, dto.NewLoanResponse(loan))
}

// Get возвращает выдачу по идентификатору.
func (h *Handler) Get(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	id := ctx.Params(paramID)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGet, zap.String("loanID", id))

	loan, err := h.loans.GetLoan(requestCtx, id)
	if err != nil {
		return fmt.Errorf("get loan: %w", err)
	}
	return dto.Respond(ctx, http.StatusOK, dto.NewLoanResponse(loan))
}

// List возвращает все выдачи.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerList)

	loans, err := h.loans.ListLoans(requestCtx)
	if err != nil {
		return fmt.Errorf("list loans: %w", err)
	}
	return dto.Respond(ctx, http.StatusOK, dto.NewLoanResponses(loans))
}
