// Package adaptercmder provides the adapter commands that describe the chat
// platform adapters bots can run on.
package adaptercmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weelink/dashctl/cmd/dashctl/dashclient"
	"github.com/weelink/dashctl/pkg/cliui"
	"github.com/weelink/dashctl/pkg/utils"
)

func NewAdapterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adapter",
		Short: "Inspect chat platform adapters",
		Long: `Inspect the chat platform adapters bots can run on.

Examples:
  dashctl adapter list
  dashctl adapter show <adapter-id>    Config fields for "dashctl bot add --set"
  dashctl adapter docs <adapter-id>`,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newDocsCmd())

	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List adapters",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, _, err := dashclient.FromCommand(cmd)
			if err != nil {
				return err
			}

			adapters, err := client.Adapters(cmd.Context())
			if err != nil {
				return fmt.Errorf("list adapters: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(adapters) == 0 {
				fmt.Fprintln(out, "No adapters available.")
				return nil
			}

			t := cliui.NewTable(out, "ID", "NAME", "PLATFORM", "VERSION", "DESCRIPTION")
			for _, a := range adapters {
				t.Row("", a.ID, a.Name, a.Platform, a.Version, utils.Truncate(a.Desc, 48))
			}
			return t.Flush()
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <adapter-id>",
		Short: "Show an adapter and its config fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := dashclient.FromCommand(cmd)
			if err != nil {
				return err
			}

			a, err := client.Adapter(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get adapter: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n  %s %s\n", cliui.HeaderStyle.Render(a.Name), cliui.DimStyle.Render(a.ID))
			fmt.Fprintf(out, "  %s %s %s\n", cliui.KeyStyle.Render("platform:"), a.Platform, a.Version)
			if a.Desc != "" {
				fmt.Fprintf(out, "  %s %s\n", cliui.KeyStyle.Render("desc:"), a.Desc)
			}
			fmt.Fprintln(out)

			if len(a.Fields) == 0 {
				fmt.Fprintln(out, "Adapter takes no config.")
				return nil
			}

			t := cliui.NewTable(out, "KEY", "TYPE", "DEFAULT", "DESCRIPTION", "")
			for _, f := range a.Fields {
				def := ""
				if f.Default != nil {
					def = fmt.Sprint(f.Default)
				}
				desc := f.Description
				if desc == "" {
					desc = f.Label
				}
				required := ""
				if f.Required {
					required = cliui.WarnStyle.Render("required")
				}
				t.Row(required, f.Key, f.Type, def, desc)
			}
			return t.Flush()
		},
	}
}

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs <adapter-id>",
		Short: "Show an adapter's setup guide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := dashclient.FromCommand(cmd)
			if err != nil {
				return err
			}

			docs, err := client.AdapterDocs(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get adapter docs: %w", err)
			}

			rendered, err := cliui.RenderMarkdown(docs)
			if err != nil {
				// Fall back to the raw markdown.
				rendered = docs
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
}
