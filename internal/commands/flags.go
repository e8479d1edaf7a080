package commands

import (
	"os"
	"path/filepath"

	"github.com/hay-kot/chefhat/internal/chef"
	"github.com/hay-kot/chefhat/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Storage holds the opened history and language persistence
	Storage *Storage

	// ConfigErr holds validation errors for a command that tolerates an
	// invalid config (doctor)
	ConfigErr error

	// StorageErr is set when the backend could not be opened for a command
	// that tolerates it (doctor)
	StorageErr error

	// Service composes generation, history and the language preference
	Service *chef.Service
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "chefhat", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "chefhat")
}
