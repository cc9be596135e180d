package api

import (
	"context"
	"strings"
	"time"
)

// DefaultPaymentDelay is how long the simulated payment step takes.
const DefaultPaymentDelay = 2 * time.Second

// PaymentDetails are the mock card fields collected before booking.
// They are validated for presence and then discarded; nothing is ever
// sent to a payment gateway.
type PaymentDetails struct {
	CardNumber string
	Expiry     string
	CVV        string
}

// Validate checks that all card fields were filled in.
func (p PaymentDetails) Validate() error {
	if strings.TrimSpace(p.CardNumber) == "" ||
		strings.TrimSpace(p.Expiry) == "" ||
		strings.TrimSpace(p.CVV) == "" {
		return NewError(ErrRequestFailed, "all payment fields are required")
	}
	return nil
}

// SimulatePayment blocks for the configured delay, standing in for a
// real gateway round-trip. It respects context cancellation.
func SimulatePayment(ctx context.Context, details PaymentDetails, delay time.Duration) error {
	if err := details.Validate(); err != nil {
		return err
	}
	if delay <= 0 {
		delay = DefaultPaymentDelay
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return WrapError(ErrRequestFailed, "payment interrupted", ctx.Err())
	case <-timer.C:
		return nil
	}
}
