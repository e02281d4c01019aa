package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roeliffah/freestay-live-sub000/internal/search/types"
)

// SearchCmd searches hotels through the gateway.
func SearchCmd() *cobra.Command {
	var (
		req      types.SearchRequest
		adults   int
		children int
		rooms    int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search hotels for a destination and stay",
		Example: `  freestayctl search --destination Antalya --checkin 2026-09-10 --checkout 2026-09-14
  freestayctl search --destination Paris --checkin 2026-10-01 --checkout 2026-10-03 --rooms 2 --adults 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Destination == "" && req.DestinationID == "" {
				return fmt.Errorf("--destination or --destination-id is required")
			}

			req.Rooms = make([]types.Room, rooms)
			for i := range req.Rooms {
				req.Rooms[i] = types.Room{Adults: adults}
			}
			// Children ride in the first room.
			if children > 0 && len(req.Rooms) > 0 {
				req.Rooms[0].Children = children
			}
			if err := req.Validate(); err != nil {
				return err
			}

			resp, err := newClient().R().
				SetBody(req).
				SetHeader("Content-Type", "application/json").
				Post("/search")
			if err != nil {
				return fmt.Errorf("calling gateway: %w", err)
			}
			return printJSON(resp.Body())
		},
	}

	cmd.Flags().StringVar(&req.Destination, "destination", "", "Destination name")
	cmd.Flags().StringVar(&req.DestinationID, "destination-id", "", "Upstream destination identifier")
	cmd.Flags().StringVar(&req.CheckIn, "checkin", "", "Check-in date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&req.CheckOut, "checkout", "", "Check-out date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&req.Nationality, "nationality", "", "Guest nationality country code")
	cmd.Flags().StringVar(&req.Currency, "currency", "", "Preferred currency")
	cmd.Flags().StringVar(&req.Language, "language", "", "UI locale")
	cmd.Flags().IntVar(&rooms, "rooms", 1, "Number of rooms")
	cmd.Flags().IntVar(&adults, "adults", 2, "Adults per room")
	cmd.Flags().IntVar(&children, "children", 0, "Children in the first room")

	return cmd
}
