package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Коды SQLSTATE, которые переводятся в доменные ошибки.
const (
	CodeInvalidText          = "22P02"
	CodeUniqueViolation      = "23505"
	CodeForeignKeyViolation  = "23503"
	CodeCheckViolation       = "23514"
	CodeExclusionViolation   = "23P01"
	CodeSerializationFailure = "40001"
)

// Code возвращает SQLSTATE ошибки сервера или пустую строку.
func Code(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// Constraint возвращает имя нарушенного ограничения или пустую строку.
func Constraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// IsUniqueViolation сообщает о нарушении уникальности.
func IsUniqueViolation(err error) bool { return Code(err) == CodeUniqueViolation }

// IsForeignKeyViolation сообщает о нарушении внешнего ключа.
func IsForeignKeyViolation(err error) bool { return Code(err) == CodeForeignKeyViolation }

// IsCheckViolation сообщает о нарушении CHECK.
func IsCheckViolation(err error) bool { return Code(err) == CodeCheckViolation }

// IsInvalidText сообщает, что значение не разобрано сервером (например, кривой uuid).
func IsInvalidText(err error) bool { return Code(err) == CodeInvalidText }

// IsOverlapRejection сообщает, что сервер отверг запись из-за пересечения
// диапазонов (exclusion constraint) или конфликта сериализации.
func IsOverlapRejection(err error) bool {
	switch Code(err) {
	case CodeExclusionViolation, CodeSerializationFailure:
		return true
	default:
		return false
	}
}
