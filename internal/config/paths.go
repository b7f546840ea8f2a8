package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Paths contains standard filesystem paths for msggen.
type Paths struct {
	// ConfigFile is the path to the config file (~/.msggen/config.yaml).
	ConfigFile string

	// HomeDir is the msggen home directory (~/.msggen).
	HomeDir string
}

// DefaultPaths returns the default paths for msggen.
func DefaultPaths() (*Paths, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	msggenHome := filepath.Join(homeDir, ".msggen")

	return &Paths{
		ConfigFile: filepath.Join(msggenHome, "config.yaml"),
		HomeDir:    msggenHome,
	}, nil
}

// GetConfigFile returns the config file path.
// If MSGGEN_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// EnsureHomeDir creates the msggen home directory if it doesn't exist.
func EnsureHomeDir() (string, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.HomeDir, os.MkdirAll(paths.HomeDir, 0o700)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	return homedir.Expand(path)
}

// ExpandPaths expands every path, dropping empty entries.
func ExpandPaths(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		expanded, err := ExpandPath(p)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded)
	}
	return out, nil
}
