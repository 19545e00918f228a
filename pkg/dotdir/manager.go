// Package dotdir resolves the .dashctl/ directory that holds config.toml and
// credentials.toml.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DirName is the name of the dashctl directory.
	DirName = ".dashctl"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the absolute path to the .dashctl/ directory, creating it
// when missing. Order of precedence is as follows:
//  1. Provided override
//  2. Local ./.dashctl/ dir
//  3. Home ~/.dashctl/ dir
func (m *Manager) Target(overrideDir string) (string, error) {
	dir, err := m.candidate(overrideDir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating dashctl directory %s: %w", dir, err)
	}

	return filepath.Abs(dir)
}

// Lookup resolves the directory with the same precedence as Target but never
// creates it. It returns "" when the resolved directory does not exist.
func (m *Manager) Lookup(overrideDir string) (string, error) {
	dir, err := m.candidate(overrideDir)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", nil
	}

	return filepath.Abs(dir)
}

func (m *Manager) candidate(overrideDir string) (string, error) {
	switch {
	case overrideDir != "":
		return overrideDir, nil

	case m.localDirExists():
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		return filepath.Join(cwd, DirName), nil

	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		return filepath.Join(home, DirName), nil
	}
}

// localDirExists checks whether a .dashctl/ directory exists in the current
// working directory.
func (m *Manager) localDirExists() bool {
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(cwd, DirName))
	return err == nil && info.IsDir()
}
