package http

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gobooklend/internal/library/domain/apperr"
	"gobooklend/pkg/logger"
)

const (
	// MIMEProblemJSON - тип содержимого ответов об ошибках.
	MIMEProblemJSON = "application/problem+json"

	msgRequestFailed       = "request failed"
	msgRequestRejected     = "request rejected"
	msgErrWriteProblem     = "failed to write error response"
	detailInternal         = "an unexpected error occurred"
	detailValidationFailed = "one or more validation errors occurred"
)

// Problem - тело ответа об ошибке.
type Problem struct {
	Title    string             `json:"title"`
	Status   int                `json:"status"`
	Detail   string             `json:"detail"`
	Instance string             `json:"instance"`
	TraceID  string             `json:"traceId,omitempty"`
	Errors   apperr.FieldErrors `json:"errors,omitempty"`
}

// StatusOf возвращает HTTP статус для категории ошибки.
func StatusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// NewErrorHandler переводит ошибки обработчиков в problem+json. В production
// подробности внутренних ошибок клиенту не отдаются.
func NewErrorHandler(production bool) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		ctx := c.Context()
		problem := problemFor(err, production)
		problem.Instance = c.Path()
		if id, ok := logger.GetRequestID(ctx); ok {
			problem.TraceID = id
		}

		log := logger.Log(ctx).With(
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.Int("status", problem.Status),
		)
		if problem.Status >= http.StatusInternalServerError {
			log.Error(ctx, msgRequestFailed, zap.Error(err))
		} else {
			log.Warn(ctx, msgRequestRejected, zap.Error(err))
		}

		if werr := c.Status(problem.Status).JSON(problem, MIMEProblemJSON); werr != nil {
			log.Error(ctx, msgErrWriteProblem, zap.Error(werr))
			return c.SendStatus(problem.Status)
		}
		return nil
	}
}

func problemFor(err error, production bool) Problem {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Problem{Title: http.StatusText(fe.Code), Status: fe.Code, Detail: fe.Message}
	}

	kind := apperr.KindOf(err)
	status := StatusOf(kind)
	problem := Problem{Title: http.StatusText(status), Status: status, Detail: err.Error()}

	switch kind {
	case apperr.KindValidation:
		if fields := apperr.FieldsOf(err); fields != nil {
			problem.Detail = detailValidationFailed
			problem.Errors = fields
		}
	case apperr.KindInternal:
		if production {
			problem.Detail = detailInternal
		}
	}
	return problem
}
