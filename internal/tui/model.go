package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/hireflux/cli/internal/api"
	"github.com/hireflux/cli/internal/history"
	"github.com/hireflux/cli/internal/interview"
	"github.com/hireflux/cli/internal/notify"
	"github.com/hireflux/cli/internal/session"
	"github.com/hireflux/cli/internal/shortcuts"
	"github.com/hireflux/cli/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeJobs Mode = iota
	ModeJobDetail
	ModeApplications
	ModeActivity
	ModePractice
	ModeShortcuts
	ModeShortcutEdit
	ModeSearch
	ModeHelp
	ModeQuitConfirm
)

// Model represents the TUI state
type Model struct {
	// Core state
	client         *api.Client
	sessionMgr     *session.Manager
	historyManager *history.Manager
	registry       *shortcuts.Registry
	matcher        *shortcuts.Matcher
	generator      *interview.Generator
	mode           Mode
	version        string

	updateAvailable bool
	latestVersion   string
	updateURL       string

	// Feature state
	jobs         *JobsState
	applications *ApplicationsState
	practice     *PracticeState
	shortcutList *ShortcutsState

	// Event stream
	stream       *notify.Stream
	streamCancel context.CancelFunc

	// UI state
	width     int
	height    int
	statusMsg string
	errorMsg  string
	helpView  viewport.Model
}

// Messages flowing back into Update from async commands.
type (
	jobsLoadedMsg     struct{ jobs []types.Job }
	appsLoadedMsg     struct{ apps []types.Application }
	activityLoadedMsg struct{ entries []history.ActivityEntry }
	appliedMsg        struct{ app types.Application }
	withdrawnMsg      struct{ id string }
	eventMsg          struct{ event types.ApplicationEvent }
	streamClosedMsg   struct{ err error }
	errMsg            struct{ err error }
	statusMsg         struct{ text string }
	updateCheckMsg    struct {
		available bool
		latest    string
		url       string
	}
)

// Options wires the model's dependencies.
type Options struct {
	Client         *api.Client
	SessionManager *session.Manager
	HistoryManager *history.Manager
	Registry       *shortcuts.Registry
	EventsURL      string
	Version        string
}

// New creates the TUI model and registers the default shortcuts.
func New(opts Options) (*Model, error) {
	m := &Model{
		client:         opts.Client,
		sessionMgr:     opts.SessionManager,
		historyManager: opts.HistoryManager,
		registry:       opts.Registry,
		generator:      interview.NewGenerator(time.Now().UnixNano()),
		mode:           ModeJobs,
		version:        opts.Version,
		jobs:           NewJobsState(),
		applications:   NewApplicationsState(),
		practice:       NewPracticeState(),
		shortcutList:   NewShortcutsState(opts.Registry),
		helpView:       viewport.New(80, 20),
	}

	if err := RegisterDefaults(m.registry); err != nil {
		return nil, fmt.Errorf("failed to register shortcuts: %w", err)
	}
	m.matcher = shortcuts.NewMatcher(m.registry)

	if opts.EventsURL != "" && opts.SessionManager.LoggedIn() {
		ctx, cancel := context.WithCancel(context.Background())
		token := ""
		if t := opts.SessionManager.Token(); t != nil {
			token = t.AccessToken
		}
		stream, err := notify.Connect(ctx, opts.EventsURL, token)
		if err != nil {
			// The TUI works without live events; surface it in the footer.
			cancel()
			m.errorMsg = fmt.Sprintf("event stream unavailable: %v", err)
		} else {
			m.stream = stream
			m.streamCancel = cancel
		}
	}

	return m, nil
}

// Init kicks off the initial data loads.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadJobsCmd(), m.loadApplicationsCmd(), m.checkUpdateCmd()}
	if m.stream != nil {
		cmds = append(cmds, m.waitForEventCmd())
	}
	return tea.Batch(cmds...)
}

// Update is the bubbletea message loop.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpView.Width = msg.Width - 10
		m.helpView.Height = msg.Height - 8
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case jobsLoadedMsg:
		m.jobs.SetJobs(msg.jobs)
		m.statusMsg = fmt.Sprintf("%d jobs", len(msg.jobs))
		return m, nil

	case appsLoadedMsg:
		m.applications.SetApplications(msg.apps)
		return m, nil

	case activityLoadedMsg:
		m.applications.SetActivity(msg.entries)
		return m, nil

	case appliedMsg:
		m.statusMsg = fmt.Sprintf("Applied to %s @ %s", msg.app.JobTitle, msg.app.Company)
		return m, m.loadApplicationsCmd()

	case withdrawnMsg:
		m.statusMsg = "Application withdrawn"
		return m, m.loadApplicationsCmd()

	case eventMsg:
		return m.handleEvent(msg.event)

	case streamClosedMsg:
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("event stream closed: %v", msg.err)
		}
		return m, nil

	case errMsg:
		m.errorMsg = msg.err.Error()
		return m, nil

	case statusMsg:
		m.statusMsg = msg.text
		return m, nil

	case updateCheckMsg:
		m.updateAvailable = msg.available
		m.latestVersion = msg.latest
		m.updateURL = msg.url
		return m, nil
	}

	return m, nil
}

// handleEvent applies a live status change and records it locally.
func (m *Model) handleEvent(event types.ApplicationEvent) (tea.Model, tea.Cmd) {
	m.applications.ApplyEvent(event)
	m.statusMsg = fmt.Sprintf("%s @ %s: %s", event.JobTitle, event.Company, event.NewStatus)

	cmds := []tea.Cmd{m.waitForEventCmd()}
	if m.historyManager != nil {
		if err := m.historyManager.SaveEvent(event); err != nil {
			m.errorMsg = fmt.Sprintf("failed to record event: %v", err)
		}
	}
	return m, tea.Batch(cmds...)
}

// Close releases the event stream and registry resources.
func (m *Model) Close() {
	if m.streamCancel != nil {
		m.streamCancel()
	}
	if m.stream != nil {
		m.stream.Close()
	}
}

func (m *Model) loadJobsCmd() tea.Cmd {
	query := api.JobQuery{Search: m.jobs.SearchQuery(), Limit: 50}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		jobs, err := m.client.ListJobs(ctx, query)
		if err != nil {
			return errMsg{err}
		}
		return jobsLoadedMsg{jobs}
	}
}

func (m *Model) loadApplicationsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		apps, err := m.client.ListApplications(ctx, "")
		if err != nil {
			return errMsg{err}
		}
		return appsLoadedMsg{apps}
	}
}

func (m *Model) loadActivityCmd() tea.Cmd {
	return func() tea.Msg {
		if m.historyManager == nil {
			return activityLoadedMsg{nil}
		}
		entries, err := m.historyManager.Activity(100)
		if err != nil {
			return errMsg{err}
		}
		return activityLoadedMsg{entries}
	}
}

func (m *Model) applyCmd(jobID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		app, err := m.client.SubmitApplication(ctx, jobID, "", "")
		if err != nil {
			return errMsg{err}
		}
		return appliedMsg{*app}
	}
}

func (m *Model) withdrawCmd(appID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := m.client.WithdrawApplication(ctx, appID); err != nil {
			return errMsg{err}
		}
		return withdrawnMsg{appID}
	}
}

func (m *Model) waitForEventCmd() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.stream.Events()
		if !ok {
			return streamClosedMsg{m.stream.Err()}
		}
		return eventMsg{event}
	}
}

func (m *Model) checkUpdateCmd() tea.Cmd {
	version := m.version
	return func() tea.Msg {
		available, latest, url, err := checkForUpdate(version)
		if err != nil {
			// Update checks are best effort.
			return updateCheckMsg{}
		}
		return updateCheckMsg{available, latest, url}
	}
}
