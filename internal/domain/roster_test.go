package domain

import (
	"testing"
)

func TestRosterBindsSeatsPositionally(t *testing.T) {
	roster := NewRoster([]int{5, 2, 7})

	if roster.Len() != 3 {
		t.Fatalf("Len = %d, want 3", roster.Len())
	}
	for i, want := range []int{5, 2, 7} {
		if got := roster.Passengers()[i].SeatNumber; got != want {
			t.Errorf("passenger %d bound to seat %d, want %d", i, got, want)
		}
	}
}

func TestRosterSyncKeepsEnteredData(t *testing.T) {
	roster := NewRoster([]int{5, 2})
	roster.Update(0, "Alice", 30, GenderFemale)
	roster.Update(1, "Bob", 40, GenderMale)

	// Seat 2 deselected, seat 9 added.
	roster.Sync([]int{5, 9})

	passengers := roster.Passengers()
	if passengers[0].Name != "Alice" || passengers[0].SeatNumber != 5 {
		t.Errorf("seat 5 passenger lost: %+v", passengers[0])
	}
	if passengers[1].Name != "" || passengers[1].SeatNumber != 9 {
		t.Errorf("seat 9 passenger should be blank: %+v", passengers[1])
	}
}

func TestRosterUpdateOutOfRange(t *testing.T) {
	roster := NewRoster([]int{1})

	if err := roster.Update(1, "X", 20, GenderMale); err == nil {
		t.Fatal("want error for out-of-range index")
	}
	if err := roster.Update(-1, "X", 20, GenderMale); err == nil {
		t.Fatal("want error for negative index")
	}
}

func TestRosterValidateAgeBounds(t *testing.T) {
	cases := []struct {
		age   int
		valid bool
	}{
		{0, false},
		{1, true},
		{120, true},
		{121, false},
	}

	for _, tc := range cases {
		roster := NewRoster([]int{1})
		roster.Update(0, "Alice", tc.age, GenderFemale)

		err := roster.Validate()
		if tc.valid && err != nil {
			t.Errorf("age %d: unexpected error %v", tc.age, err)
		}
		if !tc.valid {
			if err == nil {
				t.Errorf("age %d: want validation error", tc.age)
				continue
			}
			if err.Fields[0].Field != "age" {
				t.Errorf("age %d: flagged field %q, want age", tc.age, err.Fields[0].Field)
			}
		}
	}
}

func TestRosterValidateReportsFirstUnmetFieldPerPassenger(t *testing.T) {
	roster := NewRoster([]int{1, 2, 3})
	roster.Update(0, "   ", 0, "")           // blank name wins over bad age
	roster.Update(1, "Bob", 150, "")         // bad age wins over bad gender
	roster.Update(2, "Carol", 30, "Unknown") // only gender unmet

	err := roster.Validate()
	if err == nil {
		t.Fatal("want validation error")
	}
	if len(err.Fields) != 3 {
		t.Fatalf("got %d field errors, want 3: %v", len(err.Fields), err.Fields)
	}

	wantFields := []string{"name", "age", "gender"}
	for i, want := range wantFields {
		if err.Fields[i].Index != i || err.Fields[i].Field != want {
			t.Errorf("field error %d = %+v, want index %d field %q", i, err.Fields[i], i, want)
		}
	}
}

func TestRosterIsComplete(t *testing.T) {
	roster := NewRoster([]int{1, 2})
	if roster.IsComplete() {
		t.Fatal("blank roster should be incomplete")
	}

	roster.Update(0, "Alice", 30, GenderFemale)
	if roster.IsComplete() {
		t.Fatal("partially filled roster should be incomplete")
	}

	roster.Update(1, "Bob", 40, GenderMale)
	if !roster.IsComplete() {
		t.Fatal("fully filled roster should be complete")
	}
}
