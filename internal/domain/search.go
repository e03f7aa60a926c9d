package domain

import (
	"fmt"
	"strings"
	"time"
)

// RouteQuery filters routes by source, destination and departure day. All
// three filters are required; matching is case-insensitive exact on the
// location strings and calendar-day (not time) on the date.
type RouteQuery struct {
	Source      string
	Destination string
	Date        time.Time
}

func NewRouteQuery(source, destination string, date time.Time) (*RouteQuery, error) {
	source = strings.TrimSpace(source)
	destination = strings.TrimSpace(destination)

	if source == "" || destination == "" {
		return nil, fmt.Errorf("%w: source and destination are required", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: travel date is required", ErrInvalidInput)
	}

	return &RouteQuery{
		Source:      source,
		Destination: destination,
		Date:        date,
	}, nil
}

// Matches reports whether a route with the given endpoints and departure
// satisfies the query. The time-of-day component of the departure is
// ignored; only the calendar day in the departure's location is compared.
func (q *RouteQuery) Matches(source, destination string, departure time.Time) bool {
	if !strings.EqualFold(strings.TrimSpace(source), q.Source) {
		return false
	}
	if !strings.EqualFold(strings.TrimSpace(destination), q.Destination) {
		return false
	}

	qy, qm, qd := q.Date.Date()
	dy, dm, dd := departure.Date()
	return qy == dy && qm == dm && qd == dd
}
