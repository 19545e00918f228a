// Package credentials stores the single dashboard bearer token in
// credentials.toml inside the .dashctl/ directory.
package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/weelink/dashctl/pkg/dotdir"
)

const (
	credentialsFile = "credentials.toml"

	currentVersion = 0
)

// ErrNotLoggedIn is returned by Token when no session is stored.
var ErrNotLoggedIn = errors.New("not logged in: run 'dashctl login' first")

// Manager manages reading and writing credentials.toml in the .dashctl/ directory.
type Manager struct {
	ddm        *dotdir.Manager
	targetPath string
}

// NewManager creates a new credentials Manager. If override is non-empty it is
// used as the .dashctl/ directory; otherwise the standard dotdir resolution
// applies, creating ~/.dashctl/ when nothing is found.
func NewManager(override string) (*Manager, error) {
	mgr := &Manager{}
	mgr.ddm = dotdir.NewManager()

	target, err := mgr.ddm.Target(override)
	if err != nil {
		return nil, fmt.Errorf("resolving credentials dir: %w", err)
	}

	mgr.targetPath = filepath.Join(target, credentialsFile)

	return mgr, nil
}

// Load reads credentials.toml from the target directory.
// Returns empty Credentials if the file does not exist.
func (m *Manager) Load() (*Credentials, error) {
	data, err := os.ReadFile(m.targetPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Credentials{Version: currentVersion}, nil
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}

	creds := &Credentials{}
	if err := toml.Unmarshal(data, creds); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}

	if creds.Version != currentVersion {
		return nil, fmt.Errorf("unsupported credentials version %d (expected %d)", creds.Version, currentVersion)
	}

	return creds, nil
}

// Save writes credentials to credentials.toml with 0600 permissions.
func (m *Manager) Save(creds *Credentials) error {
	if creds == nil {
		return errors.New("cannot save nil credentials")
	}

	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(creds); err != nil {
		return fmt.Errorf("encoding credentials: %w", err)
	}

	// Write then rename so watchers never observe a truncated file.
	tmp, err := os.CreateTemp(filepath.Dir(m.targetPath), credentialsFile+".*")
	if err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("writing credentials: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}

	if err := os.Rename(tmp.Name(), m.targetPath); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}

	return nil
}

// SetSession stores the session returned by a successful login.
func (m *Manager) SetSession(session Session) error {
	if session.Empty() {
		return errors.New("cannot store an empty token")
	}

	return m.Save(&Credentials{
		Version: currentVersion,
		Session: session,
	})
}

// Session returns the stored session, empty when logged out.
func (m *Manager) Session() (Session, error) {
	creds, err := m.Load()
	if err != nil {
		return Session{}, err
	}
	return creds.Session, nil
}

// Token returns the stored bearer token or ErrNotLoggedIn.
func (m *Manager) Token() (string, error) {
	session, err := m.Session()
	if err != nil {
		return "", err
	}
	if session.Empty() {
		return "", ErrNotLoggedIn
	}
	return session.Token, nil
}

// Clear removes the stored session. Clearing when logged out is not an error.
func (m *Manager) Clear() error {
	return m.Save(&Credentials{Version: currentVersion})
}

// GetTarget returns the resolved path to the credentials file.
func (m *Manager) GetTarget() string {
	return m.targetPath
}
