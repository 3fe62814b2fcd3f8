package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/gallery/internal/core/config"
	"github.com/colonyops/gallery/internal/core/photos"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	APIKey     string
	DebugPort  int
	Demo       bool

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// SessionID correlates every log line of one run
	SessionID string
}

// Source returns the image source for this run: placeholder records with
// --demo, the Pexels search otherwise.
func (f *Flags) Source() photos.Source {
	if f.Demo {
		return photos.Demo(f.Config.API.PerPage)
	}
	return photos.NewClient(f.Config.SourceOptions())
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "gallery", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/gallery/gallery.log
// On Linux: $XDG_STATE_HOME/gallery/gallery.log (defaults to ~/.local/state/gallery/gallery.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "gallery", "gallery.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "gallery", "gallery.log")
	}

	return filepath.Join(home, ".local", "state", "gallery", "gallery.log")
}
