package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/skyreserve/skyreserve/internal/domain"
)

// FlightQuery is the search filter for GET /flights.
type FlightQuery struct {
	Source      string
	Destination string
	// Date is the departure date in YYYY-MM-DD.
	Date string
}

// flightRecord is the tolerant wire form of a flight. The identifier
// arrives as either "id" or "flightId" depending on backend version,
// and optional fields may be absent.
type flightRecord struct {
	ID             string    `json:"id"`
	FlightID       string    `json:"flightId"`
	FlightNumber   string    `json:"flightNumber"`
	Source         string    `json:"source"`
	Destination    string    `json:"destination"`
	DepartureTime  time.Time `json:"departureTime"`
	ArrivalTime    time.Time `json:"arrivalTime"`
	Aircraft       string    `json:"aircraft"`
	AvailableSeats int       `json:"availableSeats"`
	TotalSeats     int       `json:"totalSeats"`
	BaseFare       float64   `json:"baseFare"`
}

// resolve validates the record and maps it to a domain Flight. Records
// with no usable identifier or no flight number are rejected, never
// padded with placeholders.
func (r flightRecord) resolve() (domain.Flight, error) {
	id := r.ID
	if id == "" {
		id = r.FlightID
	}
	if id == "" {
		return domain.Flight{}, NewError(ErrFlightRecordInvalid, "flight record has neither id nor flightId")
	}
	if r.FlightNumber == "" {
		return domain.Flight{}, NewError(ErrFlightRecordInvalid, fmt.Sprintf("flight %s has no flight number", id))
	}
	return domain.Flight{
		ID:             id,
		FlightNumber:   r.FlightNumber,
		Source:         r.Source,
		Destination:    r.Destination,
		DepartureTime:  r.DepartureTime,
		ArrivalTime:    r.ArrivalTime,
		Aircraft:       r.Aircraft,
		AvailableSeats: r.AvailableSeats,
		TotalSeats:     r.TotalSeats,
		BaseFare:       r.BaseFare,
	}, nil
}

// SearchFlights queries GET /flights. A malformed record fails the
// whole search with a FLIGHT_RECORD_INVALID error naming its index.
func (c *Client) SearchFlights(ctx context.Context, q FlightQuery) ([]domain.Flight, error) {
	params := url.Values{}
	if q.Source != "" {
		params.Set("source", q.Source)
	}
	if q.Destination != "" {
		params.Set("destination", q.Destination)
	}
	if q.Date != "" {
		params.Set("date", q.Date)
	}
	path := "/flights"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var records []flightRecord
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}

	flights := make([]domain.Flight, 0, len(records))
	for i, rec := range records {
		flight, err := rec.resolve()
		if err != nil {
			return nil, WrapError(ErrFlightRecordInvalid, fmt.Sprintf("record %d", i), err)
		}
		flights = append(flights, flight)
	}
	return flights, nil
}

// GetFlight fetches a single flight by id.
func (c *Client) GetFlight(ctx context.Context, id string) (domain.Flight, error) {
	var record flightRecord
	if err := c.doJSON(ctx, http.MethodGet, "/flights/"+url.PathEscape(id), nil, &record); err != nil {
		return domain.Flight{}, err
	}
	return record.resolve()
}
