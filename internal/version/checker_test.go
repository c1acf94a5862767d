package version

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsNewerVersion(t *testing.T) {
	tests := []struct {
		name     string
		latest   string
		current  string
		expected bool
	}{
		{"same version", "1.4.0", "1.4.0", false},
		{"patch upgrade", "1.4.1", "1.4.0", true},
		{"patch downgrade", "1.3.9", "1.4.0", false},
		{"minor upgrade", "1.5.0", "1.4.2", true},
		{"major upgrade", "2.0.0", "1.9.9", true},
		{"major downgrade", "1.9.9", "2.0.0", false},
		{"multi-digit patch", "1.4.100", "1.4.99", true},
		{"different lengths ahead", "2.0", "1.4.2", true},
		{"different lengths behind", "1.4.2", "2.0", false},
		{"pre-release ahead", "1.5.0-rc1", "1.4.2", true},
		{"pre-release same base", "1.4.2-beta", "1.4.2", false},
		{"build metadata", "1.4.3+build7", "1.4.2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isNewerVersion(tt.latest, tt.current)
			if result != tt.expected {
				t.Errorf("isNewerVersion(%q, %q) = %v, want %v", tt.latest, tt.current, result, tt.expected)
			}
		})
	}
}

func TestCheckForUpdate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"tag_name":"v1.5.0","name":"1.5.0","html_url":"https://example.com/releases/1.5.0"}`)
	}))
	defer server.Close()

	orig := releasesURL
	releasesURL = server.URL
	defer func() { releasesURL = orig }()

	available, latest, url, err := CheckForUpdate("1.4.2")
	if err != nil {
		t.Fatalf("CheckForUpdate() failed: %v", err)
	}
	if !available {
		t.Error("CheckForUpdate() = false, want update available")
	}
	if latest != "1.5.0" {
		t.Errorf("latest = %q, want 1.5.0", latest)
	}
	if url != "https://example.com/releases/1.5.0" {
		t.Errorf("url = %q, want release page", url)
	}

	available, _, _, err = CheckForUpdate("1.5.0")
	if err != nil {
		t.Fatalf("CheckForUpdate() failed: %v", err)
	}
	if available {
		t.Error("CheckForUpdate() = true for up-to-date version, want false")
	}
}
