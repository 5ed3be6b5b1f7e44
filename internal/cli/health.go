package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is up",
		Long:  "Calls the server's health endpoint and prints the result.",
		Args:  cobra.NoArgs,
		RunE:  runHealth,
	}
}

func runHealth(cmd *cobra.Command, args []string) error {
	c := newAPIClient()
	out := cmd.OutOrStdout()

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()

	h, err := c.Health(ctx)
	if isJSON() {
		result := map[string]interface{}{"server": c.BaseURL(), "ok": err == nil}
		if err != nil {
			result["error"] = err.Error()
		} else {
			result["message"] = h.Message
			result["timestamp"] = h.Timestamp
		}
		if perr := printJSON(out, result); perr != nil {
			return perr
		}
		return err
	}

	fmt.Fprintf(out, "Server:  %s\n", c.BaseURL())
	if err != nil {
		fmt.Fprintf(out, "Status:  ✗ cannot reach server (%v)\n", err)
		return err
	}
	fmt.Fprintf(out, "Status:  ✓ %s\n", h.Message)
	fmt.Fprintf(out, "Time:    %s\n", h.Timestamp.Local().Format(time.RFC3339))
	return nil
}
