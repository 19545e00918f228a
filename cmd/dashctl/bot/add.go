package botcmder

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weelink/dashctl/cmd/dashctl/dashclient"
	"github.com/weelink/dashctl/pkg/apiclient"
	"github.com/weelink/dashctl/pkg/cliui"
)

type addCommander struct {
	alias     string
	desc      string
	adapterID string
	autoStart bool
	settings  []string
}

func newAddCmd() *cobra.Command {
	cmder := &addCommander{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a bot on an adapter",
		Long: `Create a bot on an adapter.

Adapter config keys are given with --set and checked against the adapter's
fields: boolean fields take true or false, unset fields fall back to their
defaults, and required fields without a default must be set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringVar(&cmder.alias, "alias", "", "Bot name (must be unique)")
	cmd.Flags().StringVar(&cmder.desc, "desc", "", "Bot description")
	cmd.Flags().StringVar(&cmder.adapterID, "adapter", "", "Adapter ID the bot runs on")
	cmd.Flags().BoolVar(&cmder.autoStart, "auto-start", false, "Start the bot whenever the server starts")
	cmd.Flags().StringArrayVar(&cmder.settings, "set", nil, "Adapter config as key=value (repeatable)")

	return cmd
}

func (c *addCommander) run(cmd *cobra.Command) error {
	if c.alias == "" {
		return errors.New("--alias is required")
	}
	if c.adapterID == "" {
		return errors.New("--adapter is required")
	}

	assignments, err := dashclient.ParseAssignments(c.settings)
	if err != nil {
		return err
	}

	client, _, err := dashclient.FromCommand(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	adapter, err := client.Adapter(ctx, c.adapterID)
	if err != nil {
		return fmt.Errorf("look up adapter: %w", err)
	}

	adapterConfig, err := adapter.Fields.Values(assignments)
	if err != nil {
		return err
	}
	if err := adapter.Fields.Complete(adapterConfig); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	err = cliui.Step(out, fmt.Sprintf("Creating bot %s on %s", c.alias, adapter.Name), func() error {
		return client.AddBot(ctx, apiclient.BotConfig{
			Alias:         c.alias,
			Desc:          c.desc,
			AutoStart:     c.autoStart,
			AdapterName:   adapter.Name,
			AdapterID:     adapter.ID,
			AdapterConfig: adapterConfig,
		})
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n  %s Bot %s created. Start it with: dashctl bot start <bot-id>\n\n",
		cliui.SuccessMark, cliui.NameStyle.Render(c.alias))
	return nil
}
