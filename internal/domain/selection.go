package domain

// Selection is the client-local, not-yet-committed set of seat numbers for
// one route. Insertion order is significant: position i of the selection
// binds to position i of the passenger roster.
type Selection struct {
	seatMap *SeatMap
	seats   []int
}

func NewSelection(seatMap *SeatMap) *Selection {
	return &Selection{seatMap: seatMap}
}

// Toggle flips the selection state of a seat. Selecting a booked seat is a
// no-op (the UI renders it disabled); deselecting preserves the relative
// order of the remaining seats. Returns whether the selection changed.
func (s *Selection) Toggle(seat int) bool {
	for i, selected := range s.seats {
		if selected == seat {
			s.seats = append(s.seats[:i], s.seats[i+1:]...)
			return true
		}
	}

	if !s.seatMap.IsAvailable(seat) {
		return false
	}

	s.seats = append(s.seats, seat)
	return true
}

// Seats returns the selected seat numbers in insertion order.
func (s *Selection) Seats() []int {
	seats := make([]int, len(s.seats))
	copy(seats, s.seats)
	return seats
}

func (s *Selection) Count() int {
	return len(s.seats)
}

func (s *Selection) Clear() {
	s.seats = nil
}

// Reset rebinds the selection to a new seat map and drops the current
// selection. Called when the underlying route changes.
func (s *Selection) Reset(seatMap *SeatMap) {
	s.seatMap = seatMap
	s.seats = nil
}
