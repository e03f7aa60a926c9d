package domain

import "testing"

func TestTotalFare(t *testing.T) {
	cases := []struct {
		farePerSeat float64
		seatCount   int
		want        float64
	}{
		{27.5, 3, 82.5},
		{100, 0, 0},
		{45, 1, 45},
	}

	for _, tc := range cases {
		if got := TotalFare(tc.farePerSeat, tc.seatCount); got != tc.want {
			t.Errorf("TotalFare(%v, %d) = %v, want %v", tc.farePerSeat, tc.seatCount, got, tc.want)
		}
	}
}
