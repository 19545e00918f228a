// Package plugincmder provides the plugin commands for the dashboard's
// plugin manager.
package plugincmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weelink/dashctl/cmd/dashctl/dashclient"
	"github.com/weelink/dashctl/pkg/apiclient"
	"github.com/weelink/dashctl/pkg/cliui"
	"github.com/weelink/dashctl/pkg/utils"
)

const pluginLongDesc string = `Manage dashboard plugins.

Disabled plugins stay disabled across server restarts. Reload picks up
changed plugin code; restart reloads every plugin.

Examples:
  dashctl plugin list
  dashctl plugin disable <name>
  dashctl plugin config <name>
  dashctl plugin config set <name> greeting=hello
  dashctl plugin restart`

func NewPluginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugin",
		Short: "Manage dashboard plugins",
		Long:  pluginLongDesc,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newActionCmd("enable", "Enable a plugin", "Enabling", func(c *apiclient.Client, cmd *cobra.Command, name string) error {
		return c.SwitchPlugin(cmd.Context(), name, true)
	}))
	cmd.AddCommand(newActionCmd("disable", "Disable a plugin", "Disabling", func(c *apiclient.Client, cmd *cobra.Command, name string) error {
		return c.SwitchPlugin(cmd.Context(), name, false)
	}))
	cmd.AddCommand(newActionCmd("reload", "Reload a plugin", "Reloading", func(c *apiclient.Client, cmd *cobra.Command, name string) error {
		return c.ReloadPlugin(cmd.Context(), name)
	}))
	cmd.AddCommand(newActionCmd("uninstall", "Uninstall a plugin", "Uninstalling", func(c *apiclient.Client, cmd *cobra.Command, name string) error {
		return c.UninstallPlugin(cmd.Context(), name)
	}))
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newRestartCmd())

	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List installed plugins",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := dashclient.FromCommand(cmd)
			if err != nil {
				return err
			}

			plugins, err := client.Plugins(cmd.Context())
			if err != nil {
				return fmt.Errorf("list plugins: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(plugins) == 0 {
				fmt.Fprintln(out, "No plugins installed.")
				return nil
			}

			t := cliui.NewTable(out, "NAME", "VERSION", "AUTHOR", "DESCRIPTION", "STATE")
			for _, p := range plugins {
				t.Row(cliui.OnOff(p.Enabled, "enabled", "disabled"),
					p.Name, p.Version, p.Author, utils.Truncate(p.Desc, 48))
			}
			return t.Flush()
		},
	}
}

type pluginAction func(c *apiclient.Client, cmd *cobra.Command, name string) error

func newActionCmd(use, short, verb string, action pluginAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := dashclient.FromCommand(cmd)
			if err != nil {
				return err
			}
			return cliui.Step(cmd.OutOrStdout(), fmt.Sprintf("%s plugin %s", verb, args[0]), func() error {
				return action(client, cmd, args[0])
			})
		},
	}
}

func newRestartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restart",
		Short: "Restart the plugin manager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := dashclient.FromCommand(cmd)
			if err != nil {
				return err
			}
			return cliui.Step(cmd.OutOrStdout(), "Restarting plugins", func() error {
				return client.RestartPlugins(cmd.Context())
			})
		},
	}
}
