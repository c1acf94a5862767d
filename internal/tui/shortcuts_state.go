package tui

import (
	"strings"
	"sync"

	"github.com/hireflux/cli/internal/shortcuts"
)

// ShortcutsState encapsulates the shortcut settings UI state
type ShortcutsState struct {
	mu sync.RWMutex

	registry *shortcuts.Registry
	index    int

	// Rebind capture
	capturing    bool
	capturedKeys []string
	conflictWith string // id of the shortcut the captured keys collide with
}

// NewShortcutsState creates a new shortcut settings state
func NewShortcutsState(registry *shortcuts.Registry) *ShortcutsState {
	return &ShortcutsState{registry: registry}
}

// Definitions returns the registered shortcuts in registration order
func (s *ShortcutsState) Definitions() []shortcuts.Definition {
	return s.registry.All()
}

// Index returns the current selection index
func (s *ShortcutsState) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Navigate moves the selection by delta, wrapping at either end
func (s *ShortcutsState) Navigate(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.registry.All())
	if count == 0 {
		return
	}
	s.index += delta
	if s.index < 0 {
		s.index = count - 1
	} else if s.index >= count {
		s.index = 0
	}
}

// Current returns the selected definition, or false when the list is empty
func (s *ShortcutsState) Current() (shortcuts.Definition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	defs := s.registry.All()
	if len(defs) == 0 || s.index < 0 || s.index >= len(defs) {
		return shortcuts.Definition{}, false
	}
	return defs[s.index], true
}

// BeginCapture starts recording a new binding for the selected shortcut
func (s *ShortcutsState) BeginCapture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capturing = true
	s.capturedKeys = nil
	s.conflictWith = ""
}

// Capturing returns whether key capture is active
func (s *ShortcutsState) Capturing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.capturing
}

// AddCapturedKey appends one key to the pending binding and refreshes the
// conflict preview against the rest of the registry.
func (s *ShortcutsState) AddCapturedKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.capturedKeys = append(s.capturedKeys, key)

	s.conflictWith = ""
	defs := s.registry.All()
	if s.index >= 0 && s.index < len(defs) {
		if other, found := s.registry.Conflict(s.capturedKeys, defs[s.index].ID); found {
			s.conflictWith = other.ID
		}
	}
}

// CapturedKeys returns a copy of the pending binding
func (s *ShortcutsState) CapturedKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]string, len(s.capturedKeys))
	copy(result, s.capturedKeys)
	return result
}

// CapturedDisplay renders the pending binding for the edit modal
func (s *ShortcutsState) CapturedDisplay() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return strings.Join(s.capturedKeys, " ")
}

// ConflictWith returns the id the pending binding collides with, if any
func (s *ShortcutsState) ConflictWith() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conflictWith
}

// CancelCapture abandons the pending binding
func (s *ShortcutsState) CancelCapture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.capturing = false
	s.capturedKeys = nil
	s.conflictWith = ""
}

// CommitCapture applies the pending binding to the selected shortcut.
// Conflicting bindings are rejected by the registry.
func (s *ShortcutsState) CommitCapture() error {
	s.mu.Lock()
	defs := s.registry.All()
	if !s.capturing || len(s.capturedKeys) == 0 || s.index < 0 || s.index >= len(defs) {
		s.capturing = false
		s.mu.Unlock()
		return nil
	}
	id := defs[s.index].ID
	keys := make([]string, len(s.capturedKeys))
	copy(keys, s.capturedKeys)
	s.capturing = false
	s.capturedKeys = nil
	s.conflictWith = ""
	s.mu.Unlock()

	return s.registry.Customize(id, keys, nil)
}

// ToggleEnabled flips the selected shortcut's enabled flag
func (s *ShortcutsState) ToggleEnabled() error {
	def, ok := s.Current()
	if !ok {
		return nil
	}
	return s.registry.SetEnabled(def.ID, !s.registry.Enabled(def.ID))
}

// ResetCurrent restores the selected shortcut to its default binding
func (s *ShortcutsState) ResetCurrent() error {
	def, ok := s.Current()
	if !ok {
		return nil
	}
	return s.registry.ResetToDefault(def.ID)
}
