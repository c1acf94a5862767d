package tui

import (
	"sync"

	"github.com/hireflux/cli/internal/history"
	"github.com/hireflux/cli/internal/types"
)

// ApplicationsState encapsulates the application tracker UI state
type ApplicationsState struct {
	mu sync.RWMutex

	apps  []types.Application
	index int

	// Local activity log shown in the activity view
	activity []history.ActivityEntry
}

// NewApplicationsState creates a new applications state
func NewApplicationsState() *ApplicationsState {
	return &ApplicationsState{
		apps: []types.Application{},
	}
}

// SetApplications replaces the application list
func (s *ApplicationsState) SetApplications(apps []types.Application) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps = apps
	if s.index >= len(s.apps) {
		s.index = 0
	}
}

// Applications returns a copy of the list
func (s *ApplicationsState) Applications() []types.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]types.Application, len(s.apps))
	copy(result, s.apps)
	return result
}

// Index returns the current selection index
func (s *ApplicationsState) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Navigate moves the selection by delta, wrapping at either end
func (s *ApplicationsState) Navigate(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.apps) == 0 {
		return
	}
	s.index += delta
	if s.index < 0 {
		s.index = len(s.apps) - 1
	} else if s.index >= len(s.apps) {
		s.index = 0
	}
}

// Current returns the selected application, or nil when the list is empty
func (s *ApplicationsState) Current() *types.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.apps) == 0 || s.index < 0 || s.index >= len(s.apps) {
		return nil
	}
	app := s.apps[s.index]
	return &app
}

// ApplyEvent updates the matching application's status in place. Events
// for applications not in the list are kept for the activity view only.
func (s *ApplicationsState) ApplyEvent(event types.ApplicationEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.apps {
		if s.apps[i].ID == event.ApplicationID {
			s.apps[i].Status = event.NewStatus
			s.apps[i].UpdatedAt = event.OccurredAt
			break
		}
	}
}

// SetActivity replaces the activity log entries
func (s *ApplicationsState) SetActivity(entries []history.ActivityEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activity = entries
}

// Activity returns a copy of the activity log
func (s *ApplicationsState) Activity() []history.ActivityEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]history.ActivityEntry, len(s.activity))
	copy(result, s.activity)
	return result
}
