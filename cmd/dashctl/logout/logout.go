// Package logoutcmder provides the logout command.
package logoutcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weelink/dashctl/pkg/cliui"
	"github.com/weelink/dashctl/pkg/credentials"
)

const logoutLongDesc string = `Remove the stored session token.

A running "dashctl logs --follow-login" notices the logout, closes its stream
and waits for the next login.`

const logoutShortDesc string = "Remove the stored session token"

func NewLogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: logoutShortDesc,
		Long:  logoutLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runLogout(cmd, configDir)
		},
	}

	return cmd
}

func runLogout(cmd *cobra.Command, configDir string) error {
	out := cmd.OutOrStdout()

	mgr, err := credentials.NewManager(configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	session, err := mgr.Session()
	if err != nil {
		return err
	}
	if session.Empty() {
		fmt.Fprintf(out, "\n  %s Not logged in.\n\n", cliui.DimStyle.Render("●"))
		return nil
	}

	if err := mgr.Clear(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\n  %s Logged out %s\n\n", cliui.SuccessMark, cliui.NameStyle.Render(session.Username))
	return nil
}
