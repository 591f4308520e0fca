package entity

// FlightStatus is the lifecycle state of a booked flight.
type FlightStatus string

const (
	// StatusBooked is the initial state, entered on creation.
	StatusBooked FlightStatus = "booked"
	// StatusCompleted is terminal; entered on check-in.
	StatusCompleted FlightStatus = "completed"
)

// Flight represents one booked flight segment.
type Flight struct {
	ID       int64        `json:"id"`
	UserID   string       `json:"userId"`
	From     string       `json:"from"`
	To       string       `json:"to"`
	Aircraft string       `json:"aircraft"`
	Status   FlightStatus `json:"status"`
}

// AircraftTypes is the fixed set of bookable aircraft type codes.
var AircraftTypes = []string{"A350", "A320", "B757", "B727"}

// ValidAircraft reports whether code is a known aircraft type.
func ValidAircraft(code string) bool {
	for _, a := range AircraftTypes {
		if a == code {
			return true
		}
	}
	return false
}
