package domain

import "time"

// Flight is a searchable flight record.
//
// Backend responses are schema-tolerant: AvailableSeats and Aircraft may
// be absent, and the identifier may arrive as either "id" or "flightId".
// The API layer resolves those variations before constructing a Flight;
// a Flight value always has ID and FlightNumber set.
type Flight struct {
	ID             string    `json:"id"`
	FlightNumber   string    `json:"flightNumber"`
	Source         string    `json:"source"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departureTime"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	Aircraft       string    `json:"aircraft,omitempty"`
	AvailableSeats int       `json:"availableSeats,omitempty"`
	TotalSeats     int       `json:"totalSeats,omitempty"`
	BaseFare       float64   `json:"baseFare"`
}

// Duration renders the scheduled flight time as "2h 05m".
func (f Flight) Duration() string {
	return FlightDuration(f.DepartureTime, f.ArrivalTime)
}

// Route renders "BOM → DEL".
func (f Flight) Route() string {
	return f.Source + " → " + f.Destination
}
