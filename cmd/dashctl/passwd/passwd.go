// Package passwdcmder provides the passwd command that changes the dashboard
// password.
package passwdcmder

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weelink/dashctl/cmd/dashctl/dashclient"
	"github.com/weelink/dashctl/pkg/cliui"
)

const passwdLongDesc string = `Change the dashboard password.

Prompts for the current password and the new one (twice on a terminal).
When stdin is piped, the first line is the current password and the second
the new password. Requires a stored session from "dashctl login".`

const passwdShortDesc string = "Change the dashboard password"

func NewPasswdCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: passwdShortDesc,
		Long:  passwdLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runPasswd(cmd, configDir)
		},
	}

	return cmd
}

func runPasswd(cmd *cobra.Command, configDir string) error {
	out := cmd.OutOrStdout()

	client, session, err := dashclient.New(configDir)
	if err != nil {
		return err
	}

	prompter := cliui.NewPrompter(cmd.InOrStdin(), out)

	current, err := prompter.Secret("Current password: ")
	if err != nil {
		return fmt.Errorf("reading current password: %w", err)
	}
	next, err := prompter.Secret("New password: ")
	if err != nil {
		return fmt.Errorf("reading new password: %w", err)
	}
	if next == "" {
		return errors.New("new password cannot be empty")
	}
	if prompter.Interactive() {
		confirm, err := prompter.Secret("Repeat new password: ")
		if err != nil {
			return fmt.Errorf("reading new password: %w", err)
		}
		if confirm != next {
			return errors.New("passwords do not match")
		}
	}

	err = cliui.Step(out, "Changing password", func() error {
		return client.ResetPassword(cmd.Context(), current, next)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n  %s Password changed for %s\n\n", cliui.SuccessMark, cliui.NameStyle.Render(session.Username))
	return nil
}
