package entities

import "time"

// DateLayout - формат календарной даты без времени.
const DateLayout = "2006-01-02"

// DateOf отбрасывает время суток и приводит момент к полуночи UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate разбирает дату в формате DateLayout.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}
