package tui

import "github.com/hireflux/cli/internal/shortcuts"

// Shortcut ids dispatched by the key handler.
const (
	ShortcutGoJobs         = "nav.jobs"
	ShortcutGoApplications = "nav.applications"
	ShortcutGoActivity     = "nav.activity"
	ShortcutGoPractice     = "nav.practice"
	ShortcutGoShortcuts    = "nav.shortcuts"
	ShortcutListDown       = "list.down"
	ShortcutListUp         = "list.up"
	ShortcutRefresh        = "list.refresh"
	ShortcutSearch         = "jobs.search"
	ShortcutOpenDetail     = "jobs.open"
	ShortcutApply          = "jobs.apply"
	ShortcutWithdraw       = "applications.withdraw"
	ShortcutHelp           = "general.help"
	ShortcutQuit           = "general.quit"
)

// RegisterDefaults installs the built-in key map. Persisted customizations
// are applied by the registry as each shortcut registers.
func RegisterDefaults(reg *shortcuts.Registry) error {
	defs := []shortcuts.Definition{
		{ID: ShortcutGoJobs, Category: "navigation", Description: "Go to job feed", DefaultKeys: []string{"g", "j"}},
		{ID: ShortcutGoApplications, Category: "navigation", Description: "Go to applications", DefaultKeys: []string{"g", "a"}},
		{ID: ShortcutGoActivity, Category: "navigation", Description: "Go to activity log", DefaultKeys: []string{"g", "l"}},
		{ID: ShortcutGoPractice, Category: "navigation", Description: "Go to interview practice", DefaultKeys: []string{"g", "p"}},
		{ID: ShortcutGoShortcuts, Category: "navigation", Description: "Go to shortcut settings", DefaultKeys: []string{"g", "s"}},
		{ID: ShortcutListDown, Category: "lists", Description: "Move selection down", DefaultKeys: []string{"j"}},
		{ID: ShortcutListUp, Category: "lists", Description: "Move selection up", DefaultKeys: []string{"k"}},
		{ID: ShortcutRefresh, Category: "lists", Description: "Refresh current view", DefaultKeys: []string{"r"}},
		{ID: ShortcutSearch, Category: "jobs", Description: "Search the job feed", DefaultKeys: []string{"/"}},
		{ID: ShortcutOpenDetail, Category: "jobs", Description: "Open job details", DefaultKeys: []string{"enter"}},
		{ID: ShortcutApply, Category: "jobs", Description: "Apply to the selected job", DefaultKeys: []string{"a"}},
		{ID: ShortcutWithdraw, Category: "applications", Description: "Withdraw the selected application", DefaultKeys: []string{"w"}},
		{ID: ShortcutHelp, Category: "general", Description: "Toggle help", DefaultKeys: []string{"?"}},
		{ID: ShortcutQuit, Category: "general", Description: "Quit", DefaultKeys: []string{"q"}},
	}

	for _, def := range defs {
		if err := reg.Register(def); err != nil {
			return err
		}
	}
	return nil
}
