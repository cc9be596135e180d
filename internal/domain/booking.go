package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	// BookingConfirmed marks a live booking.
	BookingConfirmed BookingStatus = "confirmed"
	// BookingCancelled marks a cancelled booking.
	BookingCancelled BookingStatus = "cancelled"
)

// PaymentStatus tracks the (simulated) payment state of a booking.
type PaymentStatus string

const (
	// PaymentPending means the booking has not been paid for yet.
	PaymentPending PaymentStatus = "pending"
	// PaymentCompleted means the mock payment went through.
	PaymentCompleted PaymentStatus = "completed"
)

// Booking is a reservation as returned by the backend.
type Booking struct {
	ID               string        `json:"id"`
	UserID           string        `json:"userId"`
	FlightID         string        `json:"flightId"`
	BookingReference string        `json:"bookingReference"`
	PassengerName    string        `json:"passengerName"`
	PassengerPhone   string        `json:"passengerPhone"`
	TotalFare        float64       `json:"totalFare"`
	Fees             float64       `json:"fees"`
	FinalAmount      float64       `json:"finalAmount"`
	Status           BookingStatus `json:"status"`
	PaymentStatus    PaymentStatus `json:"paymentStatus"`
	BookingDate      time.Time     `json:"bookingDate"`
	DepartureTime    time.Time     `json:"departureTime"`
}

// BookingFee is the flat service fee added to every fare, in rupees.
const BookingFee = 200

// CancellationWindow is the minimum remaining time before departure for
// a booking to still be cancellable. The boundary is exclusive: a flight
// departing exactly 15 minutes from now can no longer be cancelled.
const CancellationWindow = 15 * time.Minute

// CanCancel reports whether a booking for the given departure time may
// still be cancelled at now.
func CanCancel(departure, now time.Time) bool {
	return departure.Sub(now) > CancellationWindow
}

// bookingRefAlphabet matches the uppercase base36 references issued by
// the backend.
const bookingRefAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewBookingReference generates a local "ARMS-XXXXXX" reference. It is
// used only as a display fallback when the backend response omits one;
// the backend-issued reference is always preferred.
func NewBookingReference() string {
	id := uuid.New()
	var b strings.Builder
	b.WriteString("ARMS-")
	for i := 0; i < 6; i++ {
		b.WriteByte(bookingRefAlphabet[int(id[i])%len(bookingRefAlphabet)])
	}
	return b.String()
}
