// Package cli defines the cobra command tree for date-invite.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/date-invite/internal/client"
)

var (
	flagFormat string
	flagServer string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "di",
		Short:         "Ask someone out and keep track of the answers",
		Long:          "A date invitation you can't say no to. Run the API server, walk through the invitation in your terminal, and browse saved dates.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagServer, "server", "", "API server URL (default: from DI_API_URL, config or "+client.DefaultBaseURL+")")

	root.AddCommand(
		newServeCmd(),
		newInviteCmd(),
		newListCmd(),
		newShowCmd(),
		newHealthCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates an HTTP client for the date-invite API.
func newAPIClient() *client.Client {
	if flagServer != "" {
		return client.New(flagServer)
	}
	return client.New(getServerURL())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
