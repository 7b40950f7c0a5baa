// Package catalog содержит HTTP обработчики каталога: авторов и книг.
package catalog

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
	LogHandlerCreateAuthor = "catalog handler: create author"
	LogHandlerUpdateAuthor = "catalog handler: update author"
	LogHandlerDeleteAuthor = "catalog handler: delete author"
	LogHandlerCreateBook   = "catalog handler: create book"
	LogHandlerUpdateBook   = "catalog handler: update book"
	LogHandlerDeleteBook   = "catalog handler: delete book"

	paramID = "id"
)

// Handler содержит HTTP обработчики каталога.
type Handler struct {
	authors api.AuthorUseCase
	books   api.BookUseCase
}

// NewHandler создает обработчик каталога.
func NewHandler(authors api.AuthorUseCase, books api.BookUseCase) *Handler {
	return &Handler{authors: authors, books: books}
}

// CreateAuthor добавляет автора.
func (h *Handler) CreateAuthor(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerCreateAuthor)

	var req dto.AuthorRequest
	if err := dto.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	author, err := h.authors.CreateAuthor(requestCtx, req.ToEntity())
	if err != nil {
		return fmt.Errorf("create author: %w", err)
	}
	return dto.Respond(ctx, http.StatusCreated, dto.NewAuthorResponse(author))
}

// GetAuthor возвращает автора.
func (h *Handler) GetAuthor(ctx fiber.Ctx) error {
	author, err := h.authors.GetAuthor(ctx.Context(), ctx.Params(paramID))
	if err != nil {
		return fmt.Errorf("get author: %w", err)
	}
	return dto.Respond(ctx, http.StatusOK, dto.NewAuthorResponse(author))
}

// ListAuthors возвращает всех авторов.
func (h *Handler) ListAuthors(ctx fiber.Ctx) error {
	authors, err := h.authors.ListAuthors(ctx.Context())
	if err != nil {
		return fmt.Errorf("list authors: %w", err)
	}
	return dto.Respond(ctx, http.StatusOK, dto.NewAuthorResponses(authors))
}

// UpdateAuthor частично изменяет автора.
func (h *Handler) UpdateAuthor(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	id := ctx.Params(paramID)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerUpdateAuthor, zap.String("authorID", id))

	var req dto.UpdateAuthorRequest
	if err := dto.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	author, err := h.authors.UpdateAuthor(requestCtx, id, req.ToUpdate())
	if err != nil {
		return fmt.Errorf("update author: %w", err)
	}
	return dto.Respond(ctx, http.StatusOK, dto.NewAuthorResponse(author))
}

// DeleteAuthor удаляет автора без книг.
func (h *Handler) DeleteAuthor(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	id := ctx.Params(paramID)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerDeleteAuthor, zap.String("authorID", id))

	if err := h.authors.DeleteAuthor(requestCtx, id); err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	return ctx.SendStatus(http.StatusNoContent)
}

// CreateBook добавляет книгу.
func (h *Handler) CreateBook(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerCreateBook)

	var req dto.BookRequest
	if err := dto.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	book, err := h.books.CreateBook(requestCtx, req.ToEntity())
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return dto.Respond(ctx, http.StatusCreated, dto.NewBookResponse(book))
}

// GetBook возвращает книгу.
func (h *Handler) GetBook(ctx fiber.Ctx) error {
	book, err := h.books.GetBook(ctx.Context(), ctx.Params(paramID))
	if err != nil {
		return fmt.Errorf("get book: %w", err)
	}
	return dto.Respond(ctx, http.StatusOK, dto.NewBookResponse(book))
}

// ListBooks возвращает все книги.
func (h *Handler) ListBooks(ctx fiber.Ctx) error {
	books, err := h.books.ListBooks(ctx.Context())
	if err != nil {
		return fmt.Errorf("list books: %w", err)
	}
	return dto.Respond(ctx, http.StatusOK, dto.NewBookResponses(books))
}

// UpdateBook частично изменяет книгу.
func (h *Handler) UpdateBook(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	id := ctx.Params(paramID)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerUpdateBook, zap.String("bookID", id))

	var req dto.UpdateBookRequest
	if err := dto.BindAndValidate(ctx, &req); err != nil {
		return err
	}

	book, err := h.books.UpdateBook(requestCtx, id, req.ToUpdate())
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return dto.Respond(ctx, http.StatusOK, dto.NewBookResponse(book))
}

// DeleteBook удаляет книгу, которая сейчас не выдана.
func (h *Handler) DeleteBook(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	id := ctx.Params(paramID)
	logger.Log(requestCtx).Info(requestCtx, LogHandlerDeleteBook, zap.String("bookID", id))

	if err := h.books.DeleteBook(requestCtx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return ctx.SendStatus(http.StatusNoContent)
}
