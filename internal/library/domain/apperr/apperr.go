// Package apperr задает категории ошибок, которые граница HTTP переводит в статусы.
package apperr

import (
	"errors"
	"sort"
	"strings"
)

// Kind - категория ошибки.
type Kind int

// Категории ошибок.
const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
)

var kindNames = map[Kind]string{
	KindInternal:     "internal",
	KindValidation:   "validation",
	KindNotFound:     "not found",
	KindConflict:     "conflict",
	KindUnauthorized: "unauthorized",
	KindForbidden:    "forbidden",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error - доменная ошибка определенной категории.
type Error struct {
	kind Kind
	msg  string
}

// Базовые ошибки каждой категории. errors.Is(err, ErrNotFound) истинно для любой
// ошибки категории KindNotFound.
var (
	ErrValidation   = &Error{kind: KindValidation, msg: "validation failed"}
	ErrNotFound     = &Error{kind: KindNotFound, msg: "resource not found"}
	ErrConflict     = &Error{kind: KindConflict, msg: "conflict"}
	ErrUnauthorized = &Error{kind: KindUnauthorized, msg: "unauthorized"}
	ErrForbidden    = &Error{kind: KindForbidden, msg: "forbidden"}
)

var kindSentinels = map[Kind]*Error{
	KindValidation:   ErrValidation,
	KindNotFound:     ErrNotFound,
	KindConflict:     ErrConflict,
	KindUnauthorized: ErrUnauthorized,
	KindForbidden:    ErrForbidden,
}

// New создает ошибку категории kind.
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Kind возвращает категорию.
func (e *Error) Kind() Kind { return e.kind }

// Is сопоставляет ошибку с базовой ошибкой ее категории.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return kindSentinels[e.kind] == t
}

// FieldErrors - сообщения об ошибках по именам полей.
type FieldErrors map[string][]string

// Add добавляет сообщение для поля.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Empty сообщает об отсутствии ошибок.
func (f FieldErrors) Empty() bool { return len(f) == 0 }

// ValidationError несет ошибки по полям.
type ValidationError struct {
	Fields FieldErrors
}

// NewValidation создает ошибку валидации. Пустой набор полей дает nil.
func NewValidation(fields FieldErrors) error {
	if fields.Empty() {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// Invalid создает ошибку валидации для одного поля.
func Invalid(field, msg string) error {
	return &ValidationError{Fields: FieldErrors{field: {msg}}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// KindOf определяет категорию ошибки. Неизвестные ошибки считаются внутренними.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

// FieldsOf возвращает ошибки по полям, если err содержит ValidationError.
func FieldsOf(err error) FieldErrors {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Fields
	}
	return nil
}
