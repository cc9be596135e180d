package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/skyreserve/skyreserve/internal/domain"
)

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List and cancel your bookings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// bookingsListCmd lists the traveller's bookings
var bookingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your bookings",
	Long: `List your bookings, newest first. Cancelled bookings are
hidden unless --all is given.

Examples:
  skyreserve bookings list
  skyreserve bookings list --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		showAll, _ := cmd.Flags().GetBool("all")

		bookings, err := current.client.ListBookings(cmd.Context())
		if err != nil {
			return err
		}

		if !showAll {
			live := bookings[:0]
			for _, b := range bookings {
				if b.Status != domain.BookingCancelled {
					live = append(live, b)
				}
			}
			bookings = live
		}

		// Newest first.
		for i, j := 0, len(bookings)-1; i < j; i, j = i+1, j-1 {
			bookings[i], bookings[j] = bookings[j], bookings[i]
		}

		fmt.Println(current.renderer.BookingList(bookings, time.Now()))
		return nil
	},
}

// bookingsCancelCmd cancels a booking while it is still allowed
var bookingsCancelCmd = &cobra.Command{
	Use:   "cancel <booking-id>",
	Short: "Cancel a booking",
	Long: `Cancel a booking by id.

Cancellation is only possible while the flight departs in more than
15 minutes; past that the booking is locked in.

Examples:
  skyreserve bookings cancel b-12345`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		id := args[0]

		bookings, err := current.client.ListBookings(cmd.Context())
		if err != nil {
			return err
		}

		var target *domain.Booking
		for i := range bookings {
			if bookings[i].ID == id || bookings[i].BookingReference == id {
				target = &bookings[i]
				break
			}
		}
		if target == nil {
			return fmt.Errorf("booking %s not found", id)
		}
		if target.Status == domain.BookingCancelled {
			fmt.Println("Booking is already cancelled.")
			return nil
		}
		if !target.DepartureTime.IsZero() && !domain.CanCancel(target.DepartureTime, time.Now()) {
			return fmt.Errorf("booking %s can no longer be cancelled: departure is within %s",
				target.BookingReference, domain.CancellationWindow)
		}

		if err := current.client.CancelBooking(cmd.Context(), target.ID); err != nil {
			return err
		}

		fmt.Println(current.renderer.Success("Booking " + target.BookingReference + " cancelled."))
		return nil
	},
}

func init() {
	bookingsCmd.AddCommand(bookingsListCmd)
	bookingsCmd.AddCommand(bookingsCancelCmd)

	bookingsListCmd.Flags().Bool("all", false, "include cancelled bookings")

	rootCmd.AddCommand(bookingsCmd)
}
