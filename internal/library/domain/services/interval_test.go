package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gobooklend/internal/library/domain/entities"
	"gobooklend/internal/library/domain/services"
)

func day(s string) time.Time {
	t, err := entities.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func TestDateRange_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b services.DateRange
		want bool
	}{
		{
			name: "disjoint",
			a:    services.NewDateRange(day("2024-01-01"), dayPtr("2024-01-10")),
			b:    services.NewDateRange(day("2024-02-01"), dayPtr("2024-02-10")),
			want: false,
		},
		{
			name: "touching boundary is not an overlap",
			a:    services.NewDateRange(day("2024-01-01"), dayPtr("2024-01-15")),
			b:    services.NewDateRange(day("2024-01-15"), dayPtr("2024-01-30")),
			want: false,
		},
		{
			name: "touching boundary reversed",
			a:    services.NewDateRange(day("2024-01-15"), dayPtr("2024-01-30")),
			b:    services.NewDateRange(day("2024-01-01"), dayPtr("2024-01-15")),
			want: false,
		},
		{
			name: "partial overlap",
			a:    services.NewDateRange(day("2024-01-01"), dayPtr("2024-01-16")),
			b:    services.NewDateRange(day("2024-01-15"), dayPtr("2024-01-30")),
			want: true,
		},
		{
			name: "containment",
			a:    services.NewDateRange(day("2024-01-01"), dayPtr("2024-03-01")),
			b:    services.NewDateRange(day("2024-01-10"), dayPtr("2024-01-12")),
			want: true,
		},
		{
			name: "open loan blocks later start",
			a:    services.NewDateRange(day("2024-01-01"), nil),
			b:    services.NewDateRange(day("2024-02-01"), dayPtr("2024-02-10")),
			want: true,
		},
		{
			name: "open loan does not block a period ending on its start",
			a:    services.NewDateRange(day("2024-01-01"), nil),
			b:    services.NewDateRange(day("2023-12-20"), dayPtr("2024-01-01")),
			want: false,
		},
		{
			name: "two open ranges",
			a:    services.NewDateRange(day("2024-01-01"), nil),
			b:    services.NewDateRange(day("2025-01-01"), nil),
			want: true,
		},
		{
			name: "empty range overlaps nothing",
			a:    services.NewDateRange(day("2024-01-05"), dayPtr("2024-01-05")),
			b:    services.NewDateRange(day("2024-01-01"), dayPtr("2024-01-10")),
			want: false,
		},
		{
			name: "time of day is ignored",
			a:    services.NewDateRange(day("2024-01-01").Add(23*time.Hour), dayPtr("2024-01-15")),
			b:    services.NewDateRange(day("2024-01-15").Add(time.Hour), nil),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "пересечение должно быть симметричным")
		})
	}
}

func TestDateRange_Unbounded(t *testing.T) {
	assert.True(t, services.NewDateRange(day("2024-01-01"), nil).Unbounded())
	assert.False(t, services.NewDateRange(day("2024-01-01"), dayPtr("2024-01-15")).Unbounded())
}
