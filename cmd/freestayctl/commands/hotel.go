package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// HotelCmd fetches one hotel's detail page data through the gateway.
func HotelCmd() *cobra.Command {
	var (
		checkin  string
		checkout string
		adults   int
		children int
		currency string
		language string
	)

	cmd := &cobra.Command{
		Use:     "hotel <id>",
		Short:   "Fetch one hotel with its bookable room offers",
		Example: `  freestayctl hotel 120021 --checkin 2026-09-10 --checkout 2026-09-14`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := newClient().R().
				SetQueryParams(map[string]string{
					"checkin":  checkin,
					"checkout": checkout,
					"adults":   fmt.Sprintf("%d", adults),
					"children": fmt.Sprintf("%d", children),
					"currency": currency,
					"language": language,
				}).
				Get("/hotels/" + args[0])
			if err != nil {
				return fmt.Errorf("calling gateway: %w", err)
			}
			return printJSON(resp.Body())
		},
	}

	cmd.Flags().StringVar(&checkin, "checkin", "", "Check-in date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&checkout, "checkout", "", "Check-out date YYYY-MM-DD (required)")
	cmd.Flags().IntVar(&adults, "adults", 2, "Number of adults")
	cmd.Flags().IntVar(&children, "children", 0, "Number of children")
	cmd.Flags().StringVar(&currency, "currency", "", "Preferred currency")
	cmd.Flags().StringVar(&language, "language", "", "UI locale")

	return cmd
}
