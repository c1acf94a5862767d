package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hireflux/cli/internal/api"
	"github.com/hireflux/cli/internal/cli"
	"github.com/hireflux/cli/internal/config"
	"github.com/hireflux/cli/internal/history"
	"github.com/hireflux/cli/internal/oauth"
	"github.com/hireflux/cli/internal/session"
	"github.com/hireflux/cli/internal/shortcuts"
	"github.com/hireflux/cli/internal/storage"
	"github.com/hireflux/cli/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hireflux",
	Short: "HireFlux - job search from the terminal",
	Long: `HireFlux is a job-search client with an interactive TUI.

Run without arguments to start the TUI: browse the job feed, track
applications, practice interviews and customize every keyboard shortcut.
Subcommands cover the same operations for scripting.

Examples:
  hireflux                             # Start interactive TUI
  hireflux login                       # Authenticate via browser
  hireflux jobs -s golang --remote     # Search remote Go jobs
  hireflux jobs -o json -q '[].title'  # JMESPath over the feed
  hireflux applications                # List your applications
  hireflux practice -r "backend"       # One practice round
  hireflux shortcuts list              # Show active key bindings
  hireflux shortcuts export -c        # Copy bindings to clipboard`,
	Version: version,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(version)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with HireFlux via your browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		mgr := session.NewManager()
		if err := mgr.Load(); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		token, err := oauth.Login(ctx, &oauth.Config{
			AuthURL:  config.APIBaseURL + "/oauth/authorize",
			TokenURL: config.APIBaseURL + "/oauth/token",
			ClientID: "hireflux-cli",
			Scope:    "jobs applications profile",
		})
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		client := newAPIClient(func() string { return token.AccessToken })
		email, name, err := client.Me(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch profile: %w", err)
		}

		mgr.SetToken(token, email, name)
		if err := mgr.Save(); err != nil {
			return err
		}

		fmt.Printf("Logged in as %s <%s>\n", name, email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return err
		}
		mgr := session.NewManager()
		if err := mgr.Load(); err != nil {
			return err
		}
		mgr.Clear()
		if err := mgr.Save(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := loadSession()
		if err != nil {
			return err
		}
		if !mgr.LoggedIn() {
			return fmt.Errorf("not logged in (run 'hireflux login')")
		}
		fmt.Printf("%s <%s>\n", mgr.DisplayName(), mgr.UserEmail())
		return nil
	},
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List open positions",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := authedClient()
		if err != nil {
			return err
		}
		return cli.Jobs(cmd.Context(), client, cli.JobsOptions{
			Search:       flagSearch,
			Location:     flagLocation,
			Remote:       flagRemote,
			Limit:        flagLimit,
			OutputFormat: flagOutput,
			Filter:       flagFilter,
			Query:        flagQuery,
		})
	},
}

var applicationsCmd = &cobra.Command{
	Use:     "applications",
	Aliases: []string{"apps"},
	Short:   "List your applications",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := authedClient()
		if err != nil {
			return err
		}
		return cli.Applications(cmd.Context(), client, cli.ApplicationsOptions{
			Status:       flagStatus,
			OutputFormat: flagOutput,
			Filter:       flagFilter,
			Query:        flagQuery,
		})
	},
}

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run one interview practice round",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return err
		}
		hist, err := history.NewManager(config.DatabasePath)
		if err != nil {
			return err
		}
		defer hist.Close()

		return cli.Practice(cli.PracticeOptions{
			Role:     flagRole,
			Category: flagCategory,
			Answer:   flagAnswer,
		}, hist)
	},
}

var shortcutsCmd = &cobra.Command{
	Use:   "shortcuts",
	Short: "Manage keyboard shortcuts",
}

var shortcutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show active key bindings",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		defer reg.Destroy()
		return cli.ShortcutsList(reg, os.Stdout)
	},
}

var shortcutsExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export shortcut customizations as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		defer reg.Destroy()

		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return cli.ShortcutsExport(reg, path, flagClipboard)
	},
}

var shortcutsImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import shortcut customizations from JSON (stdin with '-')",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		defer reg.Destroy()

		path := "-"
		if len(args) > 0 {
			path = args[0]
		}
		if err := cli.ShortcutsImport(reg, path); err != nil {
			return err
		}
		fmt.Println("Shortcuts imported")
		return nil
	},
}

var shortcutsResetCmd = &cobra.Command{
	Use:   "reset [id]",
	Short: "Restore shortcuts to their defaults (all when no id given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		defer reg.Destroy()

		id := ""
		if len(args) > 0 {
			id = args[0]
		}
		if err := cli.ShortcutsReset(reg, id); err != nil {
			return err
		}
		fmt.Println("Shortcuts reset")
		return nil
	},
}

var (
	flagSearch   string
	flagLocation string
	flagRemote   bool
	flagLimit    int
	flagStatus   string
	flagOutput   string
	flagFilter   string
	flagQuery    string

	flagRole     string
	flagCategory string
	flagAnswer   string

	flagClipboard bool
)

func init() {
	jobsCmd.Flags().StringVarP(&flagSearch, "search", "s", "", "Search term")
	jobsCmd.Flags().StringVarP(&flagLocation, "location", "l", "", "Location filter")
	jobsCmd.Flags().BoolVar(&flagRemote, "remote", false, "Remote positions only")
	jobsCmd.Flags().IntVarP(&flagLimit, "limit", "n", 25, "Maximum results")
	jobsCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format (json/yaml/text)")
	jobsCmd.Flags().StringVarP(&flagFilter, "filter", "f", "", "JMESPath filter expression")
	jobsCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query expression")

	applicationsCmd.Flags().StringVar(&flagStatus, "status", "", "Filter by status")
	applicationsCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format (json/yaml/text)")
	applicationsCmd.Flags().StringVarP(&flagFilter, "filter", "f", "", "JMESPath filter expression")
	applicationsCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "JMESPath query expression")

	practiceCmd.Flags().StringVarP(&flagRole, "role", "r", "", "Role to practice for")
	practiceCmd.Flags().StringVarP(&flagCategory, "category", "c", "behavioral", "Question category (behavioral/technical/system-design)")
	practiceCmd.Flags().StringVarP(&flagAnswer, "answer", "a", "", "Answer text (read from stdin when omitted)")

	shortcutsExportCmd.Flags().BoolVarP(&flagClipboard, "clipboard", "c", false, "Copy to clipboard instead of writing a file")

	shortcutsCmd.AddCommand(shortcutsListCmd)
	shortcutsCmd.AddCommand(shortcutsExportCmd)
	shortcutsCmd.AddCommand(shortcutsImportCmd)
	shortcutsCmd.AddCommand(shortcutsResetCmd)

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(applicationsCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(shortcutsCmd)
}

// loadSession initializes config and loads the stored session.
func loadSession() (*session.Manager, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	mgr := session.NewManager()
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	return mgr, nil
}

// authedClient builds an API client backed by the stored session token.
func authedClient() (*api.Client, error) {
	mgr, err := loadSession()
	if err != nil {
		return nil, err
	}
	return newAPIClient(func() string {
		if t := mgr.Token(); t != nil {
			return t.AccessToken
		}
		return ""
	}), nil
}

func newAPIClient(token func() string) *api.Client {
	return api.NewClient(config.APIBaseURL, token)
}

// loadRegistry builds a registry over the preferences store and installs
// the default key map so persisted customizations resolve against it.
func loadRegistry() (*shortcuts.Registry, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	store, err := storage.NewFileStore(config.PreferencesDir)
	if err != nil {
		return nil, err
	}
	reg := shortcuts.New(shortcuts.WithStore(store))
	if err := tui.RegisterDefaults(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
