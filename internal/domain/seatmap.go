package domain

import (
	"fmt"
	"sort"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
	SeatSelected  SeatStatus = "selected"
)

// Bus layout constants: 4 logical slots per row, 2 seats each side of the
// aisle at 0-based column 2. Seat numbers ignore the visual layout and run
// 1..totalSeats in row-major order over the non-aisle slots.
const (
	SeatsPerRow = 4
	AisleColumn = 2
)

// SeatMap is the booked/available partition of a route's seats. It is an
// immutable snapshot: the same (totalSeats, availableSeats) pair always
// derives the same map.
type SeatMap struct {
	totalSeats int
	available  map[int]bool
}

func NewSeatMap(totalSeats int, availableSeats []int) (*SeatMap, error) {
	if totalSeats <= 0 {
		return nil, fmt.Errorf("%w: total seats must be positive, got %d", ErrInvalidInput, totalSeats)
	}

	available := make(map[int]bool, len(availableSeats))
	for _, seat := range availableSeats {
		if seat < 1 || seat > totalSeats {
			return nil, fmt.Errorf("%w: available seat %d outside range 1..%d", ErrInvalidInput, seat, totalSeats)
		}
		if available[seat] {
			return nil, fmt.Errorf("%w: duplicate available seat %d", ErrInvalidInput, seat)
		}
		available[seat] = true
	}

	return &SeatMap{
		totalSeats: totalSeats,
		available:  available,
	}, nil
}

func (m *SeatMap) TotalSeats() int {
	return m.totalSeats
}

// IsAvailable reports whether the seat number exists and is open for booking.
func (m *SeatMap) IsAvailable(seat int) bool {
	return seat >= 1 && seat <= m.totalSeats && m.available[seat]
}

// Status returns the partition side of a seat. Seat numbers outside
// 1..totalSeats have no status; callers validate first.
func (m *SeatMap) Status(seat int) SeatStatus {
	if m.available[seat] {
		return SeatAvailable
	}
	return SeatBooked
}

// AvailableSeats returns the open seat numbers in ascending order.
func (m *SeatMap) AvailableSeats() []int {
	seats := make([]int, 0, len(m.available))
	for seat := range m.available {
		seats = append(seats, seat)
	}
	sort.Ints(seats)
	return seats
}

// SeatCell is one slot of the rendered layout grid. Aisle slots and trailing
// filler slots carry no seat number (Number == 0).
type SeatCell struct {
	Number int        `json:"number,omitempty"`
	Aisle  bool       `json:"aisle,omitempty"`
	Status SeatStatus `json:"status,omitempty"`
}

// Layout derives the row/aisle grid. selected overlays SeatSelected on the
// matching cells; pass nil for the plain booked/available view.
func (m *SeatMap) Layout(selected []int) [][]SeatCell {
	selectedSet := make(map[int]bool, len(selected))
	for _, seat := range selected {
		selectedSet[seat] = true
	}

	numRows := (m.totalSeats + (SeatsPerRow - 1)) / (SeatsPerRow - 1)
	rows := make([][]SeatCell, 0, numRows)

	seat := 1
	for seat <= m.totalSeats {
		row := make([]SeatCell, SeatsPerRow)
		for col := 0; col < SeatsPerRow; col++ {
			if col == AisleColumn {
				row[col] = SeatCell{Aisle: true}
				continue
			}
			if seat > m.totalSeats {
				row[col] = SeatCell{} // filler, no seat
				continue
			}

			cell := SeatCell{Number: seat, Status: m.Status(seat)}
			if selectedSet[seat] {
				cell.Status = SeatSelected
			}
			row[col] = cell
			seat++
		}
		rows = append(rows, row)
	}

	return rows
}
