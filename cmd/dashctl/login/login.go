// Package logincmder provides the login command that exchanges dashboard
// credentials for a session token.
package logincmder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weelink/dashctl/pkg/apiclient"
	"github.com/weelink/dashctl/pkg/cliui"
	"github.com/weelink/dashctl/pkg/config"
	"github.com/weelink/dashctl/pkg/credentials"
)

type loginCommander struct {
	username  string
	server    string
	configDir string

	cfg *config.Config
}

var loginFlags = []string{
	config.FlagServer,
}

const loginLongDesc string = `Log in to the dashboard and store the session token.

The token is stored in credentials.toml in the .dashctl/ directory and is sent
as a bearer token by every other command. Logging in again replaces it.

The password is read with hidden input on a terminal. When stdin is piped,
the first line is read as the password (and the username first, if
--username is not given).

Examples:
  dashctl login --username admin
  dashctl login -u admin --server https://dash.example.com/api
  printf 'admin\nsecret\n' | dashctl login`

const loginShortDesc string = "Log in to the dashboard"

func NewLoginCmd() *cobra.Command {
	cmder := &loginCommander{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: loginShortDesc,
		Long:  loginLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			v, err := config.InitViper(cmder.configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			config.BindRegisteredFlags(v, cmd, config.Flags, loginFlags)

			cmder.cfg, err = config.FromViper(v)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd)
		},
	}

	cmd.Flags().StringVarP(&cmder.username, "username", "u", "", "Dashboard username")
	config.AddStringFlag(cmd, config.Flags, config.FlagServer, &cmder.server)

	return cmd
}

func (c *loginCommander) run(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	prompter := cliui.NewPrompter(cmd.InOrStdin(), out)

	username := strings.TrimSpace(c.username)
	if username == "" {
		var err error
		username, err = prompter.Line("Username: ")
		if err != nil {
			return fmt.Errorf("reading username: %w", err)
		}
		username = strings.TrimSpace(username)
	}
	if username == "" {
		return errors.New("username cannot be empty")
	}

	password, err := prompter.Secret("Password: ")
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}

	client := apiclient.New(c.cfg.Server.URL)

	var result *apiclient.LoginResult
	err = cliui.Step(out, "Logging in to "+c.cfg.Server.URL, func() error {
		var loginErr error
		result, loginErr = client.Login(cmd.Context(), username, password)
		return loginErr
	})
	if err != nil {
		return err
	}

	mgr, err := credentials.NewManager(c.configDir)
	if err != nil {
		return fmt.Errorf("loading credentials: %w", err)
	}

	err = mgr.SetSession(credentials.Session{
		Server:   c.cfg.Server.URL,
		Username: result.Username,
		Token:    result.Token,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n  %s Logged in as %s %s\n\n",
		cliui.SuccessMark,
		cliui.NameStyle.Render(result.Username),
		cliui.DimStyle.Render("("+mgr.GetTarget()+")"),
	)
	return nil
}
