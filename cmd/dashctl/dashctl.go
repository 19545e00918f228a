// Package dashctlcmder
package dashctlcmder

import (
	"github.com/spf13/cobra"

	adaptercmder "github.com/weelink/dashctl/cmd/dashctl/adapter"
	botcmder "github.com/weelink/dashctl/cmd/dashctl/bot"
	configcmder "github.com/weelink/dashctl/cmd/dashctl/config"
	logincmder "github.com/weelink/dashctl/cmd/dashctl/login"
	logoutcmder "github.com/weelink/dashctl/cmd/dashctl/logout"
	logscmder "github.com/weelink/dashctl/cmd/dashctl/logs"
	passwdcmder "github.com/weelink/dashctl/cmd/dashctl/passwd"
	plugincmder "github.com/weelink/dashctl/cmd/dashctl/plugin"
	systemcmder "github.com/weelink/dashctl/cmd/dashctl/system"
	versioncmder "github.com/weelink/dashctl/cmd/version"
)

const dashctlLongDesc string = `dashctl is a command line client for the weelink dashboard.

Log in once, then follow the dashboard's live log stream:
  dashctl login                 Store a session token
  dashctl logs                  Stream live logs
  dashctl logs --reconnect      Keep streaming across server restarts
  dashctl bot list              Show bots and whether they run
  dashctl plugin list           Show installed plugins
  dashctl config list           Show configuration`

const dashctlShortDesc string = "dashctl - weelink dashboard client"

func NewDashctlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "dashctl",
		Short:         dashctlShortDesc,
		Long:          dashctlLongDesc,
		SilenceUsage:  true,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .dashctl/ config directory")

	// Add subcommands
	cmd.AddCommand(logincmder.NewLoginCmd())
	cmd.AddCommand(logoutcmder.NewLogoutCmd())
	cmd.AddCommand(passwdcmder.NewPasswdCmd())
	cmd.AddCommand(logscmder.NewLogsCmd())
	cmd.AddCommand(botcmder.NewBotCmd())
	cmd.AddCommand(plugincmder.NewPluginCmd())
	cmd.AddCommand(adaptercmder.NewAdapterCmd())
	cmd.AddCommand(systemcmder.NewSystemCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
