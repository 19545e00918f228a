// Package systemcmder provides server wide operations.
package systemcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weelink/dashctl/cmd/dashctl/dashclient"
	"github.com/weelink/dashctl/pkg/cliui"
)

func NewSystemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Server wide operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "restart",
		Short: "Restart the bot runtime",
		Long: `Restart the bot runtime behind the dashboard.

Bots and plugins are stopped and loaded again. A running "dashctl logs"
loses its stream; use "dashctl logs --reconnect" to ride through restarts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, session, err := dashclient.FromCommand(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			err = cliui.Step(out, "Restarting "+session.Server, func() error {
				return client.RestartSystem(cmd.Context())
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n  %s Restart requested\n\n", cliui.SuccessMark)
			return nil
		},
	})

	return cmd
}
