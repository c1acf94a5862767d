package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// handleKey routes key presses. Text-capturing contexts (search, answer
// editing, key capture) bypass the shortcut matcher so typed characters
// never trigger bindings.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		m.Close()
		return m, tea.Quit
	}

	switch {
	case m.mode == ModeSearch:
		return m.handleSearchKey(msg)
	case m.mode == ModePractice && m.practice.Phase() == PhaseAnswering:
		return m.handleAnswerKey(msg)
	case m.mode == ModeShortcutEdit:
		return m.handleCaptureKey(msg)
	case m.mode == ModeQuitConfirm:
		return m.handleQuitConfirmKey(key)
	case m.mode == ModeHelp:
		return m.handleHelpKey(msg)
	case m.mode == ModeShortcuts:
		if model, cmd, handled := m.handleShortcutsViewKey(key); handled {
			return model, cmd
		}
	case m.mode == ModeJobDetail && key == "esc":
		m.mode = ModeJobs
		return m, nil
	}

	def, matched, pending := m.matcher.Feed(key)
	if pending {
		m.statusMsg = fmt.Sprintf("%s-", key)
		return m, nil
	}
	if !matched {
		return m, nil
	}

	if def.Action != nil {
		def.Action()
	}
	return m.dispatch(def.ID)
}

// dispatch runs the behavior bound to a shortcut id in the current mode.
func (m *Model) dispatch(id string) (tea.Model, tea.Cmd) {
	switch id {
	case ShortcutGoJobs:
		m.mode = ModeJobs
		return m, nil
	case ShortcutGoApplications:
		m.mode = ModeApplications
		return m, m.loadApplicationsCmd()
	case ShortcutGoActivity:
		m.mode = ModeActivity
		return m, m.loadActivityCmd()
	case ShortcutGoPractice:
		m.mode = ModePractice
		return m, nil
	case ShortcutGoShortcuts:
		m.mode = ModeShortcuts
		return m, nil

	case ShortcutListDown:
		m.navigate(1)
		return m, nil
	case ShortcutListUp:
		m.navigate(-1)
		return m, nil

	case ShortcutRefresh:
		switch m.mode {
		case ModeApplications:
			return m, m.loadApplicationsCmd()
		case ModeActivity:
			return m, m.loadActivityCmd()
		default:
			return m, m.loadJobsCmd()
		}

	case ShortcutSearch:
		if m.mode == ModeJobs {
			m.jobs.ActivateSearch()
			m.mode = ModeSearch
		}
		return m, nil

	case ShortcutOpenDetail:
		return m.handleEnter()

	case ShortcutApply:
		if m.mode == ModeJobs || m.mode == ModeJobDetail {
			if job := m.jobs.Current(); job != nil {
				return m, m.applyCmd(job.ID)
			}
		}
		return m, nil

	case ShortcutWithdraw:
		if m.mode == ModeApplications {
			if app := m.applications.Current(); app != nil {
				return m, m.withdrawCmd(app.ID)
			}
		}
		return m, nil

	case ShortcutHelp:
		m.helpView.SetContent(m.renderHelpContent())
		m.helpView.GotoTop()
		m.mode = ModeHelp
		return m, nil

	case ShortcutQuit:
		m.mode = ModeQuitConfirm
		return m, nil
	}

	return m, nil
}

// navigate moves the active list's selection.
func (m *Model) navigate(delta int) {
	switch m.mode {
	case ModeJobs, ModeJobDetail:
		m.jobs.Navigate(delta)
	case ModeApplications:
		m.applications.Navigate(delta)
	case ModePractice:
		if m.practice.Phase() == PhaseSetup {
			m.practice.NavigateCategory(delta)
		}
	}
}

// handleEnter is the mode-dependent confirm action.
func (m *Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeJobs:
		if m.jobs.Current() != nil {
			m.mode = ModeJobDetail
		}
		return m, nil

	case ModePractice:
		switch m.practice.Phase() {
		case PhaseSetup:
			question := m.generator.Question(m.practice.Role(), m.practice.SelectedCategory())
			m.practice.Begin(question)
		case PhaseFeedback:
			m.practice.Reset()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.jobs.ClearSearch()
		m.mode = ModeJobs
		return m, nil
	case "enter":
		m.jobs.DeactivateSearch()
		m.mode = ModeJobs
		return m, m.loadJobsCmd()
	case "backspace":
		query := m.jobs.SearchQuery()
		if query != "" {
			m.jobs.SetSearchQuery(query[:len(query)-1])
		}
		return m, nil
	default:
		if msg.Type == tea.KeyRunes {
			m.jobs.SetSearchQuery(m.jobs.SearchQuery() + string(msg.Runes))
		}
		return m, nil
	}
}

func (m *Model) handleAnswerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.practice.Reset()
		return m, nil
	case "ctrl+s":
		answer := m.practice.Answer()
		if answer == "" {
			m.errorMsg = "answer is empty"
			return m, nil
		}
		feedback := m.generator.Feedback(m.practice.Question(), answer)
		m.practice.Finish(feedback)
		if m.historyManager != nil {
			if err := m.historyManager.SavePracticeRun(m.practice.Question(), feedback); err != nil {
				m.errorMsg = fmt.Sprintf("failed to save practice run: %v", err)
			}
		}
		return m, nil
	default:
		field, cmd := m.practice.AnswerField().Update(msg)
		m.practice.SetAnswerField(field)
		return m, cmd
	}
}

// handleShortcutsViewKey owns the settings list's fixed keys. Unhandled keys
// fall through to the matcher so navigation chords still work.
func (m *Model) handleShortcutsViewKey(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		m.shortcutList.Navigate(1)
		return m, nil, true
	case "k", "up":
		m.shortcutList.Navigate(-1)
		return m, nil, true
	case "enter":
		m.shortcutList.BeginCapture()
		m.mode = ModeShortcutEdit
		return m, nil, true
	case "e":
		if err := m.shortcutList.ToggleEnabled(); err != nil {
			m.errorMsg = err.Error()
		}
		return m, nil, true
	case "x":
		if err := m.shortcutList.ResetCurrent(); err != nil {
			m.errorMsg = err.Error()
		}
		return m, nil, true
	case "X":
		if err := m.registry.ResetAllToDefaults(); err != nil {
			m.errorMsg = err.Error()
		}
		m.statusMsg = "All shortcuts restored to defaults"
		return m, nil, true
	case "esc":
		m.mode = ModeJobs
		return m, nil, true
	}
	return m, nil, false
}

func (m *Model) handleCaptureKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.shortcutList.CancelCapture()
		m.mode = ModeShortcuts
		return m, nil
	case "enter":
		if err := m.shortcutList.CommitCapture(); err != nil {
			m.errorMsg = err.Error()
		} else {
			m.statusMsg = "Shortcut updated"
			m.matcher.Reset()
		}
		m.mode = ModeShortcuts
		return m, nil
	default:
		m.shortcutList.AddCapturedKey(msg.String())
		return m, nil
	}
}

func (m *Model) handleQuitConfirmKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "enter":
		m.Close()
		return m, tea.Quit
	default:
		m.mode = ModeJobs
		return m, nil
	}
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = ModeJobs
		return m, nil
	default:
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return m, cmd
	}
}
