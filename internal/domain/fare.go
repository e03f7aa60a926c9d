package domain

// TotalFare computes the booking amount: fare per seat times seat count.
// Recomputed live during selection, frozen into the booking at creation.
func TotalFare(farePerSeat float64, seatCount int) float64 {
	return farePerSeat * float64(seatCount)
}
