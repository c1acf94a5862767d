// Package session persists the authenticated user's state between runs:
// the OAuth token and display identity, stored as JSON next to the rest of
// the HireFlux configuration.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"

	"github.com/hireflux/cli/internal/config"
)

// Session is the on-disk session state.
type Session struct {
	Token       *oauth2.Token `json:"token,omitempty"`
	UserEmail   string        `json:"userEmail,omitempty"`
	DisplayName string        `json:"displayName,omitempty"`
}

// Manager handles loading and saving the session file.
type Manager struct {
	session *Session
}

// NewManager creates a session manager with an empty session.
func NewManager() *Manager {
	return &Manager{session: &Session{}}
}

// Load reads the session file. A missing file leaves the default (logged
// out) session in place.
func (m *Manager) Load() error {
	data, err := os.ReadFile(config.GetSessionFilePath())
	if err != nil {
		if os.IsNotExist(err) {
			m.session = &Session{}
			return nil
		}
		return fmt.Errorf("failed to read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	m.session = &session
	return nil
}

// Save writes the session file.
func (m *Manager) Save() error {
	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}

	if err := os.WriteFile(config.GetSessionFilePath(), data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// Token returns the stored OAuth token, or nil when logged out.
func (m *Manager) Token() *oauth2.Token {
	return m.session.Token
}

// SetToken stores a new OAuth token and identity.
func (m *Manager) SetToken(token *oauth2.Token, email, name string) {
	m.session.Token = token
	m.session.UserEmail = email
	m.session.DisplayName = name
}

// Clear discards the stored token (logout).
func (m *Manager) Clear() {
	m.session = &Session{}
}

// LoggedIn reports whether a non-expired token is present. A token without
// an expiry is treated as valid; the API rejects it if revoked.
func (m *Manager) LoggedIn() bool {
	t := m.session.Token
	if t == nil || t.AccessToken == "" {
		return false
	}
	if !t.Expiry.IsZero() && t.Expiry.Before(time.Now()) && t.RefreshToken == "" {
		return false
	}
	return true
}

// UserEmail returns the stored account email.
func (m *Manager) UserEmail() string {
	return m.session.UserEmail
}

// DisplayName returns the stored display name.
func (m *Manager) DisplayName() string {
	return m.session.DisplayName
}
