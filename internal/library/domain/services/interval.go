// Package services содержит чистые доменные правила: пересечение периодов выдачи,
// политику доступа и модели учетных данных.
package services

import (
	"time"

	"gobooklend/internal/library/domain/entities"
)

// DateRange - полуоткрытый интервал дат [Start, End). End == nil означает +∞.
type DateRange struct {
	Start time.Time
	End   *time.Time
}

// NewDateRange нормализует границы до календарных дат.
func NewDateRange(start time.Time, end *time.Time) DateRange {
	r := DateRange{Start: entities.DateOf(start)}
	if end != nil {
		e := entities.DateOf(*end)
		r.End = &e
	}
	return r
}

// LoanRange возвращает период, который выдача занимает книгу.
func LoanRange(l *entities.Loan) DateRange {
	return NewDateRange(l.LoanDate, l.ReturnDate)
}

// Unbounded сообщает об открытой правой границе.
func (r DateRange) Unbounded() bool { return r.End == nil }

// Empty сообщает, что интервал не содержит ни одного дня.
func (r DateRange) Empty() bool {
	return r.End != nil && !r.Start.Before(*r.End)
}

// Overlaps проверяет пересечение [a,b) и [c,d): a < d && c < b, где
// отсутствующая граница считается бесконечностью. Касание границ
// пересечением не считается.
func (r DateRange) Overlaps(o DateRange) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return startsBefore(r.Start, o.End) && startsBefore(o.Start, r.End)
}

func startsBefore(t time.Time, end *time.Time) bool {
	return end == nil || t.Before(*end)
}
