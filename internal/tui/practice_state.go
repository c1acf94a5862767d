package tui

import (
	"sync"

	"github.com/charmbracelet/bubbles/textarea"

	"github.com/hireflux/cli/internal/types"
)

// PracticePhase tracks where the user is in a practice round
type PracticePhase int

const (
	PhaseSetup PracticePhase = iota
	PhaseAnswering
	PhaseFeedback
)

// PracticeState encapsulates the interview practice UI state
type PracticeState struct {
	mu sync.RWMutex

	phase    PracticePhase
	role     string
	category string

	question types.PracticeQuestion
	answer   textarea.Model
	feedback types.PracticeFeedback

	// Category picker
	categoryIndex int
	categories    []string
}

// NewPracticeState creates a new practice state
func NewPracticeState() *PracticeState {
	ta := textarea.New()
	ta.Placeholder = "Type your answer..."
	ta.CharLimit = 0

	return &PracticeState{
		phase:      PhaseSetup,
		role:       "software engineering",
		categories: []string{"behavioral", "technical", "system-design"},
		answer:     ta,
	}
}

// Phase returns the current phase
func (s *PracticeState) Phase() PracticePhase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Role returns the practice role
func (s *PracticeState) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.role
}

// SetRole sets the practice role
func (s *PracticeState) SetRole(role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if role != "" {
		s.role = role
	}
}

// Categories returns the selectable categories
func (s *PracticeState) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]string, len(s.categories))
	copy(result, s.categories)
	return result
}

// CategoryIndex returns the picker selection
func (s *PracticeState) CategoryIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categoryIndex
}

// NavigateCategory moves the picker selection, wrapping at either end
func (s *PracticeState) NavigateCategory(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categoryIndex += delta
	if s.categoryIndex < 0 {
		s.categoryIndex = len(s.categories) - 1
	} else if s.categoryIndex >= len(s.categories) {
		s.categoryIndex = 0
	}
}

// SelectedCategory returns the picked category
func (s *PracticeState) SelectedCategory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories[s.categoryIndex]
}

// Begin starts a round with the given question and focuses the answer box
func (s *PracticeState) Begin(question types.PracticeQuestion) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.question = question
	s.answer.Reset()
	s.answer.Focus()
	s.phase = PhaseAnswering
}

// Question returns the active question
func (s *PracticeState) Question() types.PracticeQuestion {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.question
}

// Answer returns the typed answer text
func (s *PracticeState) Answer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.answer.Value()
}

// AnswerField returns a copy of the textarea model
func (s *PracticeState) AnswerField() textarea.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.answer
}

// SetAnswerField stores an updated textarea model
func (s *PracticeState) SetAnswerField(ta textarea.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answer = ta
}

// Finish records the feedback and moves to the feedback phase
func (s *PracticeState) Finish(feedback types.PracticeFeedback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = feedback
	s.answer.Blur()
	s.phase = PhaseFeedback
}

// Feedback returns the recorded feedback
func (s *PracticeState) Feedback() types.PracticeFeedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.feedback
}

// Reset returns to the setup phase for another round
func (s *PracticeState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseSetup
	s.question = types.PracticeQuestion{}
	s.feedback = types.PracticeFeedback{}
	s.answer.Reset()
	s.answer.Blur()
}
