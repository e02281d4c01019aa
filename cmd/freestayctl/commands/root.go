// Package commands implements the freestayctl CLI, a thin client for
// querying a running gateway over HTTP.
package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var gatewayURL string

// Execute runs the CLI.
func Execute() error {
	root := &cobra.Command{
		Use:           "freestayctl",
		Short:         "Query the FreeStay hotels gateway",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&gatewayURL, "gateway", "http://localhost:8080", "Gateway base URL")

	root.AddCommand(SearchCmd())
	root.AddCommand(HotelCmd())

	return root.Execute()
}

func newClient() *resty.Client {
	return resty.New().
		SetBaseURL(gatewayURL).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json")
}

// printJSON writes the raw gateway response re-indented to stdout.
func printJSON(raw []byte) error {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		// Not JSON; show it as-is.
		fmt.Println(string(raw))
		return nil
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(out))
	return err
}
