package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hireflux/cli/internal/api"
	"github.com/hireflux/cli/internal/config"
	"github.com/hireflux/cli/internal/history"
	"github.com/hireflux/cli/internal/session"
	"github.com/hireflux/cli/internal/shortcuts"
	"github.com/hireflux/cli/internal/storage"
	"github.com/hireflux/cli/internal/version"
)

// checkForUpdate is a var so model tests can stub the network call.
var checkForUpdate = version.CheckForUpdate

// Run starts the TUI against the configured backend.
func Run(appVersion string) error {
	if err := config.Initialize(); err != nil {
		return err
	}

	store, err := storage.NewFileStore(config.PreferencesDir)
	if err != nil {
		return err
	}
	shortcuts.SetDefaultOptions(shortcuts.WithStore(store))

	mgr := session.NewManager()
	if err := mgr.Load(); err != nil {
		return err
	}

	hist, err := history.NewManager(config.DatabasePath)
	if err != nil {
		return err
	}
	defer hist.Close()

	client := api.NewClient(config.APIBaseURL, func() string {
		if t := mgr.Token(); t != nil {
			return t.AccessToken
		}
		return ""
	})

	m, err := New(Options{
		Client:         client,
		SessionManager: mgr,
		HistoryManager: hist,
		Registry:       shortcuts.Default(),
		EventsURL:      config.EventsURL,
		Version:        appVersion,
	})
	if err != nil {
		return err
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
