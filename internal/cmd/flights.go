package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/skyreserve/skyreserve/internal/api"
	"github.com/skyreserve/skyreserve/internal/tui"
)

var flightsCmd = &cobra.Command{
	Use:   "flights",
	Short: "Search scheduled flights",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// flightsSearchCmd searches flights and optionally selects one for
// booking.
var flightsSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search flights by route and date",
	Long: `Search scheduled flights by route and date.

Without --pick the results are printed as a table. With --pick an
interactive picker opens and the chosen flight goes straight into the
booking flow.

Examples:
  skyreserve flights search --from Mumbai --to Delhi
  skyreserve flights search --from Mumbai --to Delhi --date 2026-09-01 --pick`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}

		query := api.FlightQuery{}
		query.Source, _ = cmd.Flags().GetString("from")
		query.Destination, _ = cmd.Flags().GetString("to")
		query.Date, _ = cmd.Flags().GetString("date")
		pick, _ := cmd.Flags().GetBool("pick")

		if query.Date != "" {
			if _, err := time.Parse("2006-01-02", query.Date); err != nil {
				return fmt.Errorf("--date must be YYYY-MM-DD")
			}
		}

		flights, err := current.client.SearchFlights(cmd.Context(), query)
		if err != nil {
			return err
		}
		if len(flights) == 0 {
			fmt.Println("No flights found for this route.")
			return nil
		}

		if pick && tui.ShouldPrompt() {
			selected, err := tui.PickFlight(flights)
			if err != nil {
				return err
			}
			if selected == nil {
				fmt.Println("Selection cancelled.")
				return nil
			}
			return runBookingFlow(cmd, selected)
		}

		for _, flight := range flights {
			fmt.Println(current.renderer.FlightCard(flight))
		}
		return nil
	},
}

func init() {
	flightsCmd.AddCommand(flightsSearchCmd)

	flightsSearchCmd.Flags().String("from", "", "departure city")
	flightsSearchCmd.Flags().String("to", "", "arrival city")
	flightsSearchCmd.Flags().String("date", "", "departure date (YYYY-MM-DD)")
	flightsSearchCmd.Flags().Bool("pick", false, "interactively select a flight for booking")

	rootCmd.AddCommand(flightsCmd)
}
