package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewSeatMapRejectsBadInput(t *testing.T) {
	cases := []struct {
		name       string
		totalSeats int
		available  []int
	}{
		{"zero total seats", 0, nil},
		{"negative total seats", -3, nil},
		{"seat zero", 10, []int{0}},
		{"seat above total", 10, []int{11}},
		{"duplicate seat", 10, []int{3, 3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSeatMap(tc.totalSeats, tc.available)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("want ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSeatMapPartition(t *testing.T) {
	m, err := NewSeatMap(6, []int{1, 3, 5})
	if err != nil {
		t.Fatalf("NewSeatMap: %v", err)
	}

	// Every seat number must land on exactly one side of the partition.
	for seat := 1; seat <= 6; seat++ {
		status := m.Status(seat)
		if m.IsAvailable(seat) && status != SeatAvailable {
			t.Errorf("seat %d: available but status %q", seat, status)
		}
		if !m.IsAvailable(seat) && status != SeatBooked {
			t.Errorf("seat %d: booked but status %q", seat, status)
		}
	}

	if got := m.AvailableSeats(); !reflect.DeepEqual(got, []int{1, 3, 5}) {
		t.Errorf("AvailableSeats = %v, want [1 3 5]", got)
	}
}

func TestSeatMapIsAvailableOutOfRange(t *testing.T) {
	m, _ := NewSeatMap(4, []int{1, 2, 3, 4})

	if m.IsAvailable(0) {
		t.Error("seat 0 should not be available")
	}
	if m.IsAvailable(5) {
		t.Error("seat 5 should not be available")
	}
}

func TestLayoutPlacesEverySeatExactlyOnce(t *testing.T) {
	for _, total := range []int{1, 3, 6, 7, 40} {
		available := make([]int, total)
		for i := range available {
			available[i] = i + 1
		}
		m, err := NewSeatMap(total, available)
		if err != nil {
			t.Fatalf("NewSeatMap(%d): %v", total, err)
		}

		seen := make(map[int]int)
		for _, row := range m.Layout(nil) {
			if len(row) != SeatsPerRow {
				t.Fatalf("total=%d: row width %d, want %d", total, len(row), SeatsPerRow)
			}
			for col, cell := range row {
				if col == AisleColumn {
					if !cell.Aisle || cell.Number != 0 {
						t.Fatalf("total=%d: aisle column holds %+v", total, cell)
					}
					continue
				}
				if cell.Number != 0 {
					seen[cell.Number]++
				}
			}
		}

		if len(seen) != total {
			t.Fatalf("total=%d: layout placed %d distinct seats", total, len(seen))
		}
		for seat, count := range seen {
			if count != 1 {
				t.Errorf("total=%d: seat %d appears %d times", total, seat, count)
			}
		}
	}
}

func TestLayoutSelectionOverlay(t *testing.T) {
	m, err := NewSeatMap(8, []int{1, 2, 3, 4, 5, 6, 7, 8})
	if err != nil {
		t.Fatalf("NewSeatMap: %v", err)
	}

	statuses := make(map[int]SeatStatus)
	for _, row := range m.Layout([]int{2, 5}) {
		for _, cell := range row {
			if cell.Number != 0 {
				statuses[cell.Number] = cell.Status
			}
		}
	}

	if statuses[2] != SeatSelected || statuses[5] != SeatSelected {
		t.Errorf("selected seats not overlaid: %v", statuses)
	}
	if statuses[1] != SeatAvailable {
		t.Errorf("seat 1 = %q, want available", statuses[1])
	}
}
