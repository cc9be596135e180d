package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/skyreserve/skyreserve/internal/domain"
)

// Renderer produces styled, read-only views of flights and bookings.
type Renderer struct {
	styles Styles
}

// NewRenderer returns a Renderer with the default styles.
func NewRenderer() Renderer {
	return Renderer{styles: DefaultStyles()}
}

// FlightCard renders a single flight as a bordered card.
func (r Renderer) FlightCard(f domain.Flight) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render(f.FlightNumber + "  " + f.Route()))
	b.WriteString("\n")

	b.WriteString(r.row("Departs", domain.FormatTime(f.DepartureTime)+", "+domain.FormatDate(f.DepartureTime)))
	b.WriteString(r.row("Arrives", domain.FormatTime(f.ArrivalTime)+", "+domain.FormatDate(f.ArrivalTime)))
	b.WriteString(r.row("Duration", f.Duration()))
	if f.Aircraft != "" {
		b.WriteString(r.row("Aircraft", f.Aircraft))
	}
	b.WriteString(r.row("Seats left", fmt.Sprintf("%d of %d", f.AvailableSeats, f.TotalSeats)))
	b.WriteString(r.row("Base fare", r.styles.Fare.Render(domain.FormatINR(f.BaseFare))))

	return r.styles.Border.Render(strings.TrimRight(b.String(), "\n"))
}

// FareBreakdown renders the fare summary shown before payment.
func (r Renderer) FareBreakdown(baseFare float64) string {
	var b strings.Builder
	b.WriteString(r.row("Base fare", domain.FormatINR(baseFare)))
	b.WriteString(r.row("Service fee", domain.FormatINR(domain.BookingFee)))
	total := r.styles.Fare.Render(domain.FormatINR(baseFare + domain.BookingFee))
	b.WriteString(r.row("Total", total))
	return r.styles.Border.Render(strings.TrimRight(b.String(), "\n"))
}

// ConfirmationCard renders the post-booking confirmation.
func (r Renderer) ConfirmationCard(booking domain.Booking) string {
	var b strings.Builder

	b.WriteString(r.styles.Success.Render("Booking confirmed"))
	b.WriteString("\n\n")
	b.WriteString(r.row("Reference", r.styles.Highlight.Render(booking.BookingReference)))
	b.WriteString(r.row("Passenger", booking.PassengerName))
	if !booking.DepartureTime.IsZero() {
		b.WriteString(r.row("Departure", domain.FormatTime(booking.DepartureTime)+", "+domain.FormatDate(booking.DepartureTime)))
	}
	b.WriteString(r.row("Amount paid", r.styles.Fare.Render(domain.FormatINR(booking.FinalAmount))))
	b.WriteString(r.row("Payment", string(booking.PaymentStatus)))

	return r.styles.Border.Render(strings.TrimRight(b.String(), "\n"))
}

// BookingList renders bookings as an aligned table, newest first being
// the caller's concern. now controls the cancellable marker.
func (r Renderer) BookingList(bookings []domain.Booking, now time.Time) string {
	if len(bookings) == 0 {
		return r.styles.Muted.Render("No bookings yet.")
	}

	header := fmt.Sprintf("%-12s %-20s %-22s %-14s %-10s",
		"Reference", "Passenger", "Departure", "Amount", "Status")

	var b strings.Builder
	b.WriteString(r.styles.Subtitle.Render(header))
	b.WriteString("\n")

	for _, bk := range bookings {
		departure := "-"
		if !bk.DepartureTime.IsZero() {
			departure = domain.FormatTime(bk.DepartureTime) + " " + domain.FormatDate(bk.DepartureTime)
		}
		line := fmt.Sprintf("%-12s %-20s %-22s %-14s %-10s",
			bk.BookingReference,
			truncate(bk.PassengerName, 20),
			truncate(departure, 22),
			domain.FormatINR(bk.FinalAmount),
			string(bk.Status),
		)
		switch {
		case bk.Status == domain.BookingCancelled:
			line = r.styles.Muted.Render(line)
		case domain.CanCancel(bk.DepartureTime, now):
			line = r.styles.Value.Render(line) + " " + r.styles.Muted.Render("(cancellable)")
		default:
			line = r.styles.Value.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// StatusCard renders the current session for `auth status`.
func (r Renderer) StatusCard(user domain.User, tokenSource string, expiresAt *time.Time) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render("Signed in"))
	b.WriteString("\n")
	b.WriteString(r.row("Name", user.FullName))
	b.WriteString(r.row("Email", user.Email))
	if user.Phone != "" {
		b.WriteString(r.row("Phone", user.Phone))
	}
	b.WriteString(r.row("Token", tokenSource))
	if expiresAt != nil {
		b.WriteString(r.row("Expires", expiresAt.Local().Format(time.RFC1123)))
	}

	return r.styles.Border.Render(strings.TrimRight(b.String(), "\n"))
}

// Error renders an error line for command output.
func (r Renderer) Error(msg string) string {
	return r.styles.Error.Render("Error: ") + r.styles.Value.Render(msg)
}

// Success renders a success line for command output.
func (r Renderer) Success(msg string) string {
	return r.styles.Success.Render(msg)
}

func (r Renderer) row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		r.styles.Label.Width(12).Render(label),
		r.styles.Value.Render(value),
	) + "\n"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
