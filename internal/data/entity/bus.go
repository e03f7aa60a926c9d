package entity

type BusType string

const (
	BusTypeAC          BusType = "AC"
	BusTypeNonAC       BusType = "Non-AC"
	BusTypeSleeper     BusType = "Sleeper"
	BusTypeSemiSleeper BusType = "Semi-Sleeper"
)

type Bus struct {
	Base
	BusNumber  string   `db:"bus_number"`
	BusName    string   `db:"bus_name"`
	BusType    BusType  `db:"bus_type"`
	TotalSeats int      `db:"total_seats"`
	Amenities  []string `db:"amenities"` // informational labels only
}

func ValidBusType(t BusType) bool {
	switch t {
	case BusTypeAC, BusTypeNonAC, BusTypeSleeper, BusTypeSemiSleeper:
		return true
	}
	return false
}
