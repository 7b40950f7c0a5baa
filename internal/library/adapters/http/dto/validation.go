// Package dto содержит запросы и ответы HTTP API, их проверку и преобразование в доменные типы.
package dto

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v3"

	"gobooklend/internal/library/domain/apperr"
	"gobooklend/internal/library/domain/entities"
)

const (
	fieldBody        = "body"
	msgMalformedBody = "request body is not valid JSON"
	msgInvalidDate   = "must be a date in YYYY-MM-DD format"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	upperPattern = regexp.MustCompile(`[A-Z]`)
	lowerPattern = regexp.MustCompile(`[a-z]`)
	digitPattern = regexp.MustCompile(`[0-9]`)
)

// Validatable - запрос, проверяющий собственные поля.
type Validatable interface {
	Validate() apperr.FieldErrors
}

// Bind читает JSON тело запроса в req. Пустое тело допускается:
// обязательные поля отметит Validate.
func Bind(c fiber.Ctx, req any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.Bind().JSON(req); err != nil {
		return apperr.Invalid(fieldBody, msgMalformedBody)
	}
	return nil
}

// BindAndValidate читает тело запроса в req и проверяет его.
func BindAndValidate(c fiber.Ctx, req Validatable) error {
	if err := Bind(c, req); err != nil {
		return err
	}
	return apperr.NewValidation(req.Validate())
}

// Respond отправляет body со статусом status.
func Respond(c fiber.Ctx, status int, body any) error {
	if err := c.Status(status).JSON(body); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func checkRequired(f apperr.FieldErrors, field, value, msg string) bool {
	if blank(value) {
		f.Add(field, msg)
		return false
	}
	return true
}

func checkMaxLength(f apperr.FieldErrors, field, value string, limit int, msg string) {
	if utf8.RuneCountInString(value) > limit {
		f.Add(field, msg)
	}
}

func checkDate(f apperr.FieldErrors, field, value string) (time.Time, bool) {
	d, err := entities.ParseDate(value)
	if err != nil {
		f.Add(field, msgInvalidDate)
		return time.Time{}, false
	}
	return d, true
}

func checkEmail(f apperr.FieldErrors, field, value string) {
	if !emailPattern.MatchString(value) {
		f.Add(field, "invalid email format")
	}
	checkMaxLength(f, field, value, maxEmailLength, "email cannot exceed 100 characters")
}

func checkPhone(f apperr.FieldErrors, field, value string) {
	if !phonePattern.MatchString(value) {
		f.Add(field, "invalid phone number format")
	}
	checkMaxLength(f, field, value, maxPhoneLength, "phone number cannot exceed 15 characters")
}

func checkPassword(f apperr.FieldErrors, field, value string, minLength int) {
	if utf8.RuneCountInString(value) < minLength {
		f.Add(field, "password must be at least 8 characters")
	}
	if !upperPattern.MatchString(value) {
		f.Add(field, "password must contain at least one uppercase letter")
	}
	if !lowerPattern.MatchString(value) {
		f.Add(field, "password must contain at least one lowercase letter")
	}
	if !digitPattern.MatchString(value) {
		f.Add(field, "password must contain at least one number")
	}
}

func formatDate(t time.Time) string {
	return t.UTC().Format(entities.DateLayout)
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatDate(*t)
	return &s
}
