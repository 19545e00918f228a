package botcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weelink/dashctl/cmd/dashctl/dashclient"
	"github.com/weelink/dashctl/pkg/cliui"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <bot-id>",
		Aliases: []string{"del"},
		Short:   "Stop and delete a bot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := dashclient.FromCommand(cmd)
			if err != nil {
				return err
			}
			return cliui.Step(cmd.OutOrStdout(), fmt.Sprintf("Deleting bot %s", args[0]), func() error {
				return client.DeleteBot(cmd.Context(), args[0])
			})
		},
	}
}

func newSwitchCmd(use, short string, running bool) *cobra.Command {
	verb := "Stopping"
	if running {
		verb = "Starting"
	}

	return &cobra.Command{
		Use:   use + " <bot-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := dashclient.FromCommand(cmd)
			if err != nil {
				return err
			}
			return cliui.Step(cmd.OutOrStdout(), fmt.Sprintf("%s bot %s", verb, args[0]), func() error {
				return client.SwitchBot(cmd.Context(), args[0], running)
			})
		},
	}
}
