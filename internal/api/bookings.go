package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/skyreserve/skyreserve/internal/domain"
)

// BookingRequest is the payload for POST /bookings.
type BookingRequest struct {
	FlightID       string  `json:"flightId"`
	PassengerName  string  `json:"passengerName"`
	PassengerPhone string  `json:"passengerPhone"`
	TotalFare      float64 `json:"totalFare"`
	Fees           float64 `json:"fees"`
	FinalAmount    float64 `json:"finalAmount"`
}

// CreateBooking creates a booking. When the backend omits a booking
// reference, a locally generated one is filled in for display.
func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (domain.Booking, error) {
	var booking domain.Booking
	if err := c.doJSON(ctx, http.MethodPost, "/bookings", req, &booking); err != nil {
		return domain.Booking{}, err
	}
	if booking.BookingReference == "" {
		booking.BookingReference = domain.NewBookingReference()
	}
	return booking, nil
}

// ListBookings returns the caller's bookings.
func (c *Client) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.doJSON(ctx, http.MethodGet, "/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CancelBooking cancels a booking via PUT /bookings/{id}/cancel. The
// 15-minute departure window is enforced by callers before the request
// is made; the backend re-checks it anyway.
func (c *Client) CancelBooking(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPut, "/bookings/"+url.PathEscape(id)+"/cancel", nil)
	return err
}
