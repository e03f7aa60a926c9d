package domain

import (
	"fmt"
	"strings"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

const (
	MinPassengerAge = 1
	MaxPassengerAge = 120
)

// Passenger is one traveller bound to one selected seat.
type Passenger struct {
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Gender     Gender `json:"gender"`
	SeatNumber int    `json:"seat_number"`
}

// Roster binds passenger records 1:1 to the selected seats, positionally:
// roster index i belongs to selection index i.
type Roster struct {
	passengers []Passenger
}

// NewRoster derives an empty roster from the current selection sequence.
func NewRoster(selectedSeats []int) *Roster {
	passengers := make([]Passenger, len(selectedSeats))
	for i, seat := range selectedSeats {
		passengers[i] = Passenger{SeatNumber: seat}
	}
	return &Roster{passengers: passengers}
}

// Sync rebuilds the roster after a selection change. Data already entered
// for a seat that is still selected is kept; seats that were deselected
// drop their passenger.
func (r *Roster) Sync(selectedSeats []int) {
	bySeat := make(map[int]Passenger, len(r.passengers))
	for _, p := range r.passengers {
		bySeat[p.SeatNumber] = p
	}

	passengers := make([]Passenger, len(selectedSeats))
	for i, seat := range selectedSeats {
		if p, ok := bySeat[seat]; ok {
			passengers[i] = p
		} else {
			passengers[i] = Passenger{SeatNumber: seat}
		}
	}
	r.passengers = passengers
}

// Update sets the editable fields of the passenger at roster position i.
func (r *Roster) Update(i int, name string, age int, gender Gender) error {
	if i < 0 || i >= len(r.passengers) {
		return fmt.Errorf("%w: roster index %d out of range 0..%d", ErrInvalidInput, i, len(r.passengers)-1)
	}
	r.passengers[i].Name = name
	r.passengers[i].Age = age
	r.passengers[i].Gender = gender
	return nil
}

func (r *Roster) Len() int {
	return len(r.passengers)
}

// Passengers returns a copy of the roster in seat-binding order.
func (r *Roster) Passengers() []Passenger {
	passengers := make([]Passenger, len(r.passengers))
	copy(passengers, r.passengers)
	return passengers
}

// IsComplete reports whether every passenger is fully and validly filled in.
func (r *Roster) IsComplete() bool {
	return r.Validate() == nil
}

// Validate re-derives the first unmet field per passenger. Returns nil when
// the roster is complete.
func (r *Roster) Validate() *ValidationError {
	var fields []FieldError

	for i, p := range r.passengers {
		switch {
		case strings.TrimSpace(p.Name) == "":
			fields = append(fields, FieldError{Index: i, Field: "name", Msg: "must not be blank"})
		case p.Age < MinPassengerAge || p.Age > MaxPassengerAge:
			fields = append(fields, FieldError{
				Index: i,
				Field: "age",
				Msg:   fmt.Sprintf("must be between %d and %d", MinPassengerAge, MaxPassengerAge),
			})
		case !ValidGender(p.Gender):
			fields = append(fields, FieldError{Index: i, Field: "gender", Msg: "must be Male, Female or Other"})
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

func ValidGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}
