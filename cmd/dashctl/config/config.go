// Package configcmder provides the config command for managing persistent
// dashctl configuration stored in the .dashctl/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent dashctl configuration.

Configuration is stored as config.toml in the .dashctl/ directory and provides
default values for command flags. CLI flags and DASHCTL_* environment
variables take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  server.url, server.stream_path,
  stream.reconnect_delay, stream.max_logs,
  log.format, log.file

Use subcommands to get, set, or list configuration values:
  dashctl config set <key> <value>    Set a configuration value
  dashctl config get <key>            Get a configuration value
  dashctl config list                 List all configuration values

Examples:
  dashctl config set server.url https://dash.example.com/api
  dashctl config set stream.reconnect_delay 5s
  dashctl config get server.url
  dashctl config list`

const configShortDesc string = "Manage persistent dashctl configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
