// Package botcmder provides the bot commands that list, create, remove,
// start and stop dashboard bots.
package botcmder

import "github.com/spf13/cobra"

const botLongDesc string = `Manage the bots running on the dashboard.

A bot is an account on a chat platform driven by one adapter. List the
available adapters and the config keys they need with "dashctl adapter".

Examples:
  dashctl bot list
  dashctl bot add --alias helper --adapter <adapter-id> --set host=127.0.0.1
  dashctl bot start <bot-id>
  dashctl bot stop <bot-id>
  dashctl bot rm <bot-id>`

func NewBotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Manage dashboard bots",
		Long:  botLongDesc,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newRemoveCmd())
	cmd.AddCommand(newSwitchCmd("start", "Start a bot", true))
	cmd.AddCommand(newSwitchCmd("stop", "Stop a bot", false))

	return cmd
}
