package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFlightRecord(id string) map[string]any {
	return map[string]any{
		"id":             id,
		"flightNumber":   "SR-101",
		"source":         "Mumbai",
		"destination":    "Delhi",
		"departureTime":  "2026-09-01T09:30:00Z",
		"arrivalTime":    "2026-09-01T11:45:00Z",
		"aircraft":       "A320",
		"availableSeats": 42,
		"totalSeats":     180,
		"baseFare":       4500.0,
	}
}

func TestSearchFlights(t *testing.T) {
	c, backend := newTestClient(t)
	backend.SeedFlight(seedFlightRecord("f1"))
	other := seedFlightRecord("f2")
	other["source"] = "Chennai"
	other["flightNumber"] = "SR-202"
	backend.SeedFlight(other)

	flights, err := c.SearchFlights(context.Background(), FlightQuery{Source: "Mumbai"})
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "f1", flights[0].ID)
	assert.Equal(t, "SR-101", flights[0].FlightNumber)
	assert.Equal(t, 4500.0, flights[0].BaseFare)
	assert.Equal(t, "2h 15m", flights[0].Duration())

	all, err := c.SearchFlights(context.Background(), FlightQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// Backends disagree on the identifier field name; both spellings must
// resolve to the same domain flight.
func TestSearchFlightsIdentifierDrift(t *testing.T) {
	c, backend := newTestClient(t)
	record := seedFlightRecord("")
	delete(record, "id")
	record["flightId"] = "legacy-9"
	backend.SeedFlight(record)

	flights, err := c.SearchFlights(context.Background(), FlightQuery{})
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "legacy-9", flights[0].ID)
}

func TestSearchFlightsRejectsUnusableRecords(t *testing.T) {
	t.Run("no identifier", func(t *testing.T) {
		c, backend := newTestClient(t)
		record := seedFlightRecord("")
		delete(record, "id")
		backend.SeedFlight(record)

		_, err := c.SearchFlights(context.Background(), FlightQuery{})
		require.Error(t, err)
		assert.Equal(t, ErrFlightRecordInvalid, CodeOf(err))
	})

	t.Run("no flight number", func(t *testing.T) {
		c, backend := newTestClient(t)
		record := seedFlightRecord("f1")
		delete(record, "flightNumber")
		backend.SeedFlight(record)

		_, err := c.SearchFlights(context.Background(), FlightQuery{})
		require.Error(t, err)
		assert.Equal(t, ErrFlightRecordInvalid, CodeOf(err))
	})
}

// Optional fields may be absent without failing the search; only the
// identifier and flight number are load-bearing.
func TestSearchFlightsToleratesMissingOptionalFields(t *testing.T) {
	c, backend := newTestClient(t)
	backend.SeedFlight(map[string]any{
		"id":           "sparse-1",
		"flightNumber": "SR-303",
	})

	flights, err := c.SearchFlights(context.Background(), FlightQuery{})
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "sparse-1", flights[0].ID)
	assert.Empty(t, flights[0].Aircraft)
	assert.Zero(t, flights[0].BaseFare)
	assert.True(t, flights[0].DepartureTime.IsZero())
}

func TestGetFlight(t *testing.T) {
	c, backend := newTestClient(t)
	backend.SeedFlight(seedFlightRecord("f1"))

	flight, err := c.GetFlight(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", flight.Source)
	assert.Equal(t, "Delhi", flight.Destination)

	_, err = c.GetFlight(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, ErrStatus, CodeOf(err))
}
