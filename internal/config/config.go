package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// DefaultAPIBaseURL is the production HireFlux API endpoint
	DefaultAPIBaseURL = "https://api.hireflux.dev/v1"
	// DefaultEventsURL is the production HireFlux event stream endpoint
	DefaultEventsURL = "wss://api.hireflux.dev/v1/events"
)

var (
	// ConfigDir is the global configuration directory (~/.hireflux)
	ConfigDir string

	// PreferencesDir holds per-key preference files (shortcut customizations)
	PreferencesDir string

	// DatabasePath is the SQLite database file for activity history
	DatabasePath string

	// SessionFile is the session state file (auth token, selected profile)
	SessionFile string

	// APIBaseURL is the REST API endpoint, overridable via HIREFLUX_API_URL
	APIBaseURL string

	// EventsURL is the websocket event stream endpoint, overridable via HIREFLUX_EVENTS_URL
	EventsURL string
)

// Initialize sets up the configuration directories and files.
// It creates ~/.hireflux/ if it doesn't exist.
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	ConfigDir = filepath.Join(homeDir, ".hireflux")
	PreferencesDir = filepath.Join(ConfigDir, "preferences")
	DatabasePath = filepath.Join(ConfigDir, "hireflux.db")
	SessionFile = filepath.Join(ConfigDir, ".session.json")

	APIBaseURL = DefaultAPIBaseURL
	if url := os.Getenv("HIREFLUX_API_URL"); url != "" {
		APIBaseURL = url
	}
	EventsURL = DefaultEventsURL
	if url := os.Getenv("HIREFLUX_EVENTS_URL"); url != "" {
		EventsURL = url
	}

	dirs := []string{ConfigDir, PreferencesDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, DirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Create empty session file if it doesn't exist
	if _, err := os.Stat(SessionFile); os.IsNotExist(err) {
		if err := os.WriteFile(SessionFile, []byte(`{}`), FilePermissions); err != nil {
			return fmt.Errorf("failed to create session file: %w", err)
		}
	}

	return nil
}

// GetSessionFilePath returns the session file path (local override or global)
func GetSessionFilePath() string {
	if _, err := os.Stat(".session.json"); err == nil {
		return ".session.json"
	}
	return SessionFile
}
