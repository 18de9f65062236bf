// Package config manages diredit configuration and filesystem paths.
//
// The default root is ~/.diredit/ holding config.yaml and the optional log
// file. The root can be moved with the DIREDIT_ROOT environment variable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the filesystem paths used by diredit.
type Paths struct {
	// Root is the base directory for all diredit data (default: ~/.diredit)
	Root string

	// Config is the path to the settings file
	Config string

	// Logs is the directory log files are written to
	Logs string
}

// DefaultPaths returns the default paths for diredit.
// Paths can be overridden with environment variables:
// - DIREDIT_ROOT: Override the root directory
func DefaultPaths() (*Paths, error) {
	root := os.Getenv("DIREDIT_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".diredit")
	}

	return &Paths{
		Root:   root,
		Config: filepath.Join(root, "config.yaml"),
		Logs:   filepath.Join(root, "logs"),
	}, nil
}

// EnsureDirectories creates all necessary directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.Root, p.Logs} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
