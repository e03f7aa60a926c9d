package domain

import (
	"reflect"
	"testing"
)

func newTestSeatMap(t *testing.T, total int, available []int) *SeatMap {
	t.Helper()
	m, err := NewSeatMap(total, available)
	if err != nil {
		t.Fatalf("NewSeatMap: %v", err)
	}
	return m
}

func TestToggleSelectsAndDeselects(t *testing.T) {
	sel := NewSelection(newTestSeatMap(t, 4, []int{1, 2, 3, 4}))

	if !sel.Toggle(2) {
		t.Fatal("selecting an available seat should change the selection")
	}
	if got := sel.Seats(); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("Seats = %v, want [2]", got)
	}

	// Toggling again removes it.
	if !sel.Toggle(2) {
		t.Fatal("deselecting should change the selection")
	}
	if sel.Count() != 0 {
		t.Fatalf("Count = %d after toggle twice, want 0", sel.Count())
	}
}

func TestToggleBookedSeatIsNoOp(t *testing.T) {
	sel := NewSelection(newTestSeatMap(t, 4, []int{1, 3}))

	if sel.Toggle(2) {
		t.Error("selecting a booked seat should be a no-op")
	}
	if sel.Count() != 0 {
		t.Errorf("Count = %d, want 0", sel.Count())
	}
}

func TestTogglePreservesInsertionOrder(t *testing.T) {
	sel := NewSelection(newTestSeatMap(t, 8, []int{1, 2, 3, 4, 5, 6, 7, 8}))

	for _, seat := range []int{5, 1, 7, 3} {
		sel.Toggle(seat)
	}
	sel.Toggle(1) // deselect the middle entry

	if got := sel.Seats(); !reflect.DeepEqual(got, []int{5, 7, 3}) {
		t.Fatalf("Seats = %v, want [5 7 3]", got)
	}
}

func TestResetDropsSelection(t *testing.T) {
	sel := NewSelection(newTestSeatMap(t, 4, []int{1, 2, 3, 4}))
	sel.Toggle(1)
	sel.Toggle(2)

	sel.Reset(newTestSeatMap(t, 6, []int{1, 2, 3, 4, 5, 6}))
	if sel.Count() != 0 {
		t.Fatalf("Count = %d after Reset, want 0", sel.Count())
	}

	// New map is live for further toggles.
	if !sel.Toggle(6) {
		t.Error("seat 6 should be selectable on the new map")
	}
}

func TestSeatsReturnsCopy(t *testing.T) {
	sel := NewSelection(newTestSeatMap(t, 4, []int{1, 2, 3, 4}))
	sel.Toggle(1)

	seats := sel.Seats()
	seats[0] = 99

	if got := sel.Seats(); got[0] != 1 {
		t.Fatalf("mutating the returned slice leaked into the selection: %v", got)
	}
}
