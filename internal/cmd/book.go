package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skyreserve/skyreserve/internal/api"
	"github.com/skyreserve/skyreserve/internal/domain"
	"github.com/skyreserve/skyreserve/internal/tui"
)

// bookCmd books a flight: passenger details, fare summary, payment,
// then the reservation itself.
var bookCmd = &cobra.Command{
	Use:   "book [flight-id]",
	Short: "Book a flight",
	Long: `Book a flight for the signed-in traveller.

If a flight id is given it is fetched and booked. Without one, the
search flags below find candidate flights and an interactive picker
opens. Passenger details are pre-filled from your profile. Payment is
collected and processed before the reservation is created.

Examples:
  skyreserve book f-12345
  skyreserve book --from Mumbai --to Delhi --date 2026-09-01`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		if !tui.ShouldPrompt() {
			return fmt.Errorf("booking requires an interactive terminal")
		}

		flight, err := resolveBookingFlight(cmd, args)
		if err != nil {
			return err
		}
		if flight == nil {
			fmt.Println("Booking cancelled.")
			return nil
		}

		return runBookingFlow(cmd, flight)
	},
}

// runBookingFlow carries a chosen flight through passenger details,
// payment, and reservation creation. The selection is recorded on the
// session manager so the whole flow works off one consistent snapshot.
func runBookingFlow(cmd *cobra.Command, flight *domain.Flight) error {
	current.manager.SelectFlight(*flight)
	fmt.Println(current.renderer.FlightCard(*flight))

	// Passenger details, pre-filled from the traveller profile.
	passenger := tui.Passenger{}
	if sess := current.manager.Session(); sess.User != nil {
		passenger.Name = sess.User.FullName
		passenger.Phone = sess.User.Phone
	}
	if err := tui.PassengerForm(&passenger); err != nil {
		return err
	}

	fmt.Println(current.renderer.FareBreakdown(flight.BaseFare))
	finalAmount := flight.BaseFare + domain.BookingFee

	ok, err := tui.Confirm(fmt.Sprintf("Pay %s and confirm the booking?", domain.FormatINR(finalAmount)), true)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Booking cancelled.")
		return nil
	}

	details := api.PaymentDetails{}
	if err := tui.PaymentForm(&details); err != nil {
		return err
	}
	if err := details.Validate(); err != nil {
		return err
	}

	err = tui.RunWithSpinner("Processing payment…", func(ctx context.Context) error {
		return api.SimulatePayment(ctx, details, current.cfg.PaymentDelay())
	})
	if err != nil {
		return fmt.Errorf("payment failed: %w", err)
	}

	booking, err := current.client.CreateBooking(cmd.Context(), api.BookingRequest{
		FlightID:       flight.ID,
		PassengerName:  passenger.Name,
		PassengerPhone: passenger.Phone,
		TotalFare:      flight.BaseFare,
		Fees:           domain.BookingFee,
		FinalAmount:    finalAmount,
	})
	if err != nil {
		return err
	}

	current.manager.SetActiveBooking(booking.ID)
	fmt.Println(current.renderer.ConfirmationCard(booking))
	return nil
}

// resolveBookingFlight picks the flight to book. The explicit argument
// wins; otherwise the search flags feed the interactive picker. A nil
// flight with a nil error means the traveller backed out.
func resolveBookingFlight(cmd *cobra.Command, args []string) (*domain.Flight, error) {
	if len(args) == 1 {
		flight, err := current.client.GetFlight(cmd.Context(), args[0])
		if err != nil {
			return nil, err
		}
		return &flight, nil
	}

	query := api.FlightQuery{}
	query.Source, _ = cmd.Flags().GetString("from")
	query.Destination, _ = cmd.Flags().GetString("to")
	query.Date, _ = cmd.Flags().GetString("date")

	flights, err := current.client.SearchFlights(cmd.Context(), query)
	if err != nil {
		return nil, err
	}
	if len(flights) == 0 {
		return nil, fmt.Errorf("no flights found; adjust --from/--to/--date or pass a flight id")
	}

	return tui.PickFlight(flights)
}

func init() {
	bookCmd.Flags().String("from", "", "departure city")
	bookCmd.Flags().String("to", "", "arrival city")
	bookCmd.Flags().String("date", "", "departure date (YYYY-MM-DD)")

	rootCmd.AddCommand(bookCmd)
}
