// Package dashclient builds an authenticated API client from the stored
// session for commands that talk to the dashboard.
package dashclient

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weelink/dashctl/pkg/apiclient"
	"github.com/weelink/dashctl/pkg/config"
	"github.com/weelink/dashctl/pkg/credentials"
)

// FromCommand loads the session for the command's --config-dir and returns
// a client bound to its token. The session's server wins over the
// configured one since the token is only valid there.
func FromCommand(cmd *cobra.Command) (*apiclient.Client, credentials.Session, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")
	return New(configDir)
}

func New(configDir string) (*apiclient.Client, credentials.Session, error) {
	mgr, err := credentials.NewManager(configDir)
	if err != nil {
		return nil, credentials.Session{}, fmt.Errorf("loading credentials: %w", err)
	}
	session, err := mgr.Session()
	if err != nil {
		return nil, credentials.Session{}, err
	}
	if session.Empty() {
		return nil, credentials.Session{}, credentials.ErrNotLoggedIn
	}

	if session.Server == "" {
		v, err := config.InitViper(configDir)
		if err != nil {
			return nil, credentials.Session{}, fmt.Errorf("loading config: %w", err)
		}
		cfg, err := config.FromViper(v)
		if err != nil {
			return nil, credentials.Session{}, fmt.Errorf("loading config: %w", err)
		}
		session.Server = cfg.Server.URL
	}

	return apiclient.New(session.Server, apiclient.WithToken(session.Token)), session, nil
}

// ParseAssignments splits key=value arguments. Later keys overwrite earlier
// ones.
func ParseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q, expected key=value", p)
		}
		out[key] = value
	}
	return out, nil
}
