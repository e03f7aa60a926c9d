package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewRouteQueryRequiresAllFilters(t *testing.T) {
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name        string
		source      string
		destination string
		date        time.Time
	}{
		{"blank source", "  ", "Detroit", date},
		{"blank destination", "Chicago", "", date},
		{"zero date", "Chicago", "Detroit", time.Time{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRouteQuery(tc.source, tc.destination, tc.date)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("want ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestRouteQueryMatchesCalendarDay(t *testing.T) {
	query, err := NewRouteQuery(" Chicago ", "Detroit", time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewRouteQuery: %v", err)
	}

	// Time of day is ignored; only the calendar day matters.
	morning := time.Date(2025, 6, 16, 6, 30, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 16, 23, 45, 0, 0, time.UTC)
	nextDay := time.Date(2025, 6, 17, 0, 15, 0, 0, time.UTC)

	if !query.Matches("chicago", "DETROIT", morning) {
		t.Error("case-insensitive match on 2025-06-16 morning should hit")
	}
	if !query.Matches("Chicago", "Detroit", evening) {
		t.Error("late departure on the same day should hit")
	}
	if query.Matches("Chicago", "Detroit", nextDay) {
		t.Error("departure on the next day should miss")
	}
	if query.Matches("Chicago", "Cleveland", morning) {
		t.Error("different destination should miss")
	}
}
