package plugincmder

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/weelink/dashctl/cmd/dashctl/dashclient"
	"github.com/weelink/dashctl/pkg/apiclient"
	"github.com/weelink/dashctl/pkg/cliui"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <name>",
		Short: "Show a plugin's configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := dashclient.FromCommand(cmd)
			if err != nil {
				return err
			}

			cfg, err := client.PluginConfig(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get plugin config: %w", err)
			}
			return printConfig(cmd, cfg)
		},
	}

	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

// printConfig lists scheme keys in scheme order, then any stored keys the
// scheme does not describe.
func printConfig(cmd *cobra.Command, cfg *apiclient.PluginConfig) error {
	out := cmd.OutOrStdout()
	if len(cfg.Scheme) == 0 && len(cfg.Conf) == 0 {
		fmt.Fprintln(out, "Plugin has no configuration.")
		return nil
	}

	t := cliui.NewTable(out, "KEY", "VALUE", "DESCRIPTION")
	seen := make(map[string]bool, len(cfg.Scheme))
	for _, f := range cfg.Scheme {
		seen[f.Key] = true
		desc := f.Description
		if desc == "" {
			desc = f.Label
		}
		t.Row("", f.Key, formatValue(cfg.Conf[f.Key]), desc)
	}

	var extra []string
	for k := range cfg.Conf {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		t.Row("", k, formatValue(cfg.Conf[k]), "")
	}
	return t.Flush()
}

func formatValue(v any) string {
	if v == nil {
		return "<not set>"
	}
	return fmt.Sprint(v)
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <key=value>...",
		Short: "Update plugin config keys",
		Long: `Update plugin config keys.

Values are converted to the type the plugin's scheme declares for the key.
Keys not listed in the scheme are rejected.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			assignments, err := dashclient.ParseAssignments(args[1:])
			if err != nil {
				return err
			}

			client, _, err := dashclient.FromCommand(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			cfg, err := client.PluginConfig(ctx, name)
			if err != nil {
				return fmt.Errorf("get plugin config: %w", err)
			}
			values, err := cfg.Scheme.Values(assignments)
			if err != nil {
				return err
			}

			return cliui.Step(cmd.OutOrStdout(), fmt.Sprintf("Updating %s config", name), func() error {
				return client.UpdatePluginConfig(ctx, name, values)
			})
		},
	}
}
