package botcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weelink/dashctl/cmd/dashctl/dashclient"
	"github.com/weelink/dashctl/pkg/cliui"
	"github.com/weelink/dashctl/pkg/utils"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List bots",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := dashclient.FromCommand(cmd)
			if err != nil {
				return err
			}

			bots, err := client.Bots(cmd.Context())
			if err != nil {
				return fmt.Errorf("list bots: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(bots) == 0 {
				fmt.Fprintln(out, "No bots found. Create one with: dashctl bot add --alias <name> --adapter <adapter-id>")
				return nil
			}

			t := cliui.NewTable(out, "ID", "ALIAS", "ADAPTER", "DESCRIPTION", "STATE")
			for _, b := range bots {
				t.Row(cliui.OnOff(b.Running, "running", "stopped"),
					b.ID, b.Alias, b.Adapter, utils.Truncate(b.Desc, 48))
			}
			return t.Flush()
		},
	}
}
