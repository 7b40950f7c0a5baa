// Package app содержит сценарии использования сервиса выдачи книг.
package app

import (
	"time"

	"gobooklend/internal/library/domain/entities"
)

// Clock возвращает текущий момент. Подменяется в тестах.
type Clock func() time.Time

// SystemClock - часы процесса.
func SystemClock() time.Time { return time.Now().UTC() }

func (c Clock) today() time.Time {
	if c == nil {
		return entities.DateOf(SystemClock())
	}
	return entities.DateOf(c())
}

func (c Clock) now() time.Time {
	if c == nil {
		return SystemClock()
	}
	return c().UTC()
}
