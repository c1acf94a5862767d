package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hireflux/cli/internal/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("237"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("57")).
			Padding(1, 2)

	badgeStyles = map[string]lipgloss.Style{
		types.StatusOffer:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		types.StatusInterview: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		types.StatusRejected:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		types.StatusWithdrawn: lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	}

	defaultBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// View renders the current mode.
func (m *Model) View() string {
	var body string

	switch m.mode {
	case ModeJobs, ModeSearch:
		body = m.renderJobs()
	case ModeJobDetail:
		body = m.renderJobDetail()
	case ModeApplications:
		body = m.renderApplications()
	case ModeActivity:
		body = m.renderActivity()
	case ModePractice:
		body = m.renderPractice()
	case ModeShortcuts:
		body = m.renderShortcuts()
	case ModeShortcutEdit:
		body = m.renderShortcutEdit()
	case ModeHelp:
		body = modalStyle.Render("Help\n\n" + m.helpView.View())
	case ModeQuitConfirm:
		body = modalStyle.Render("Quit HireFlux? [y/N]")
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

func (m *Model) renderHeader() string {
	title := titleStyle.Render("HireFlux")

	tabs := []struct {
		label string
		modes []Mode
	}{
		{"Jobs", []Mode{ModeJobs, ModeJobDetail, ModeSearch}},
		{"Applications", []Mode{ModeApplications}},
		{"Activity", []Mode{ModeActivity}},
		{"Practice", []Mode{ModePractice}},
		{"Shortcuts", []Mode{ModeShortcuts, ModeShortcutEdit}},
	}

	parts := []string{title}
	for _, tab := range tabs {
		style := tabStyle
		for _, mode := range tab.modes {
			if m.mode == mode {
				style = activeTabStyle
				break
			}
		}
		parts = append(parts, style.Render(tab.label))
	}

	if m.updateAvailable {
		parts = append(parts, dimStyle.Render(fmt.Sprintf("update %s available", m.latestVersion)))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m *Model) renderFooter() string {
	if m.errorMsg != "" {
		return errorStyle.Render("Error: " + m.errorMsg)
	}
	if m.statusMsg != "" {
		return statusStyle.Render(m.statusMsg)
	}
	modifier := m.registry.PlatformModifierDisplay()
	return dimStyle.Render(fmt.Sprintf("? help · / search · q quit · %s", modifier))
}

func (m *Model) renderJobs() string {
	var sb strings.Builder

	if m.mode == ModeSearch || m.jobs.SearchQuery() != "" {
		sb.WriteString(fmt.Sprintf("Search: %s\n\n", m.jobs.SearchQuery()))
	}

	jobs := m.jobs.Jobs()
	if len(jobs) == 0 {
		sb.WriteString(dimStyle.Render("No jobs to show. Press r to refresh."))
		return sb.String()
	}

	index := m.jobs.Index()
	for i, job := range jobs {
		line := fmt.Sprintf("  %s @ %s", job.Title, job.Company)
		if job.Remote {
			line += dimStyle.Render("  remote")
		}
		if job.MatchScore > 0 {
			line += dimStyle.Render(fmt.Sprintf("  %d%% match", job.MatchScore))
		}
		if i == index {
			line = selectedStyle.Render("▸" + line[1:])
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

func (m *Model) renderJobDetail() string {
	job := m.jobs.Current()
	if job == nil {
		return dimStyle.Render("No job selected.")
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s @ %s\n", job.Title, job.Company))
	if job.Location != "" {
		sb.WriteString(job.Location)
		if job.Remote {
			sb.WriteString(" (remote)")
		}
		sb.WriteString("\n")
	}
	if job.SalaryMin > 0 {
		sb.WriteString(fmt.Sprintf("$%d - $%d\n", job.SalaryMin, job.SalaryMax))
	}
	if len(job.Tags) > 0 {
		sb.WriteString(dimStyle.Render(strings.Join(job.Tags, " · ")) + "\n")
	}
	if job.Description != "" {
		sb.WriteString("\n" + job.Description + "\n")
	}
	sb.WriteString("\n" + dimStyle.Render("a apply · esc back"))
	return modalStyle.Render(sb.String())
}

func (m *Model) renderApplications() string {
	apps := m.applications.Applications()
	if len(apps) == 0 {
		return dimStyle.Render("No applications yet. Apply from the job feed with a.")
	}

	var sb strings.Builder
	index := m.applications.Index()
	for i, app := range apps {
		badge := defaultBadgeStyle
		if style, ok := badgeStyles[app.Status]; ok {
			badge = style
		}
		line := fmt.Sprintf("  %s @ %s  %s", app.JobTitle, app.Company, badge.Render("["+app.Status+"]"))
		if i == index {
			line = selectedStyle.Render("▸" + line[1:])
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n" + dimStyle.Render("w withdraw · r refresh"))
	return sb.String()
}

func (m *Model) renderActivity() string {
	entries := m.applications.Activity()
	if len(entries) == 0 {
		return dimStyle.Render("No recorded activity.")
	}

	var sb strings.Builder
	for _, entry := range entries {
		transition := entry.NewStatus
		if entry.OldStatus != "" {
			transition = entry.OldStatus + " → " + entry.NewStatus
		}
		sb.WriteString(fmt.Sprintf("%s  %s @ %s  %s\n",
			dimStyle.Render(entry.Timestamp.Format("Jan 02 15:04")),
			entry.JobTitle, entry.Company, transition))
	}
	return sb.String()
}

func (m *Model) renderPractice() string {
	switch m.practice.Phase() {
	case PhaseAnswering:
		question := m.practice.Question()
		return fmt.Sprintf("[%s] %s\n\n%s\n\n%s",
			question.Category, question.Prompt,
			m.practice.AnswerField().View(),
			dimStyle.Render("ctrl+s submit · esc cancel"))

	case PhaseFeedback:
		feedback := m.practice.Feedback()
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Score: %d/100\n%s\n\n", feedback.Score, feedback.Summary))
		sb.WriteString("Strengths:\n")
		for _, s := range feedback.Strengths {
			sb.WriteString("  + " + s + "\n")
		}
		sb.WriteString("Improve:\n")
		for _, s := range feedback.Improve {
			sb.WriteString("  - " + s + "\n")
		}
		sb.WriteString("\n" + dimStyle.Render("enter for another round"))
		return modalStyle.Render(sb.String())

	default:
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Practice for: %s\n\nPick a category:\n", m.practice.Role()))
		index := m.practice.CategoryIndex()
		for i, category := range m.practice.Categories() {
			line := "  " + category
			if i == index {
				line = selectedStyle.Render("▸ " + category)
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n" + dimStyle.Render("enter to start"))
		return sb.String()
	}
}

func (m *Model) renderShortcuts() string {
	var sb strings.Builder
	sb.WriteString("Keyboard Shortcuts\n\n")

	index := m.shortcutList.Index()
	for i, def := range m.shortcutList.Definitions() {
		keys, _ := m.registry.EffectiveKeys(def.ID)
		state := ""
		if !m.registry.Enabled(def.ID) {
			state = dimStyle.Render("  disabled")
		}
		line := fmt.Sprintf("  %-22s %-16s %s%s", def.ID, strings.Join(keys, " "), def.Description, state)
		if i == index {
			line = selectedStyle.Render("▸" + line[1:])
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n" + dimStyle.Render("enter rebind · e enable/disable · x reset · X reset all · esc back"))
	return sb.String()
}

func (m *Model) renderShortcutEdit() string {
	def, ok := m.shortcutList.Current()
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Rebind %q\n\n", def.ID))
	captured := m.shortcutList.CapturedDisplay()
	if captured == "" {
		captured = dimStyle.Render("press keys...")
	}
	sb.WriteString("New binding: " + captured + "\n")
	if conflict := m.shortcutList.ConflictWith(); conflict != "" {
		sb.WriteString(errorStyle.Render(fmt.Sprintf("conflicts with %s", conflict)) + "\n")
	}
	sb.WriteString("\n" + dimStyle.Render("enter save · esc cancel"))
	return modalStyle.Render(sb.String())
}

func (m *Model) renderHelpContent() string {
	var sb strings.Builder
	for _, category := range m.registry.Categories() {
		sb.WriteString(strings.ToUpper(category) + "\n")
		for _, def := range m.registry.ByCategory(category) {
			keys, _ := m.registry.EffectiveKeys(def.ID)
			sb.WriteString(fmt.Sprintf("  %-16s %s\n", strings.Join(keys, " "), def.Description))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Platform modifier: %s\n", m.registry.PlatformModifierDisplay()))
	return sb.String()
}
