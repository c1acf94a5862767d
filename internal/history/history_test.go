package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/hireflux/cli/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := NewManager(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewManager() failed: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestSaveEvent_RoundTrip(t *testing.T) {
	m := newTestManager(t)

	event := types.ApplicationEvent{
		ApplicationID: "a1",
		JobTitle:      "Go Engineer",
		Company:       "Acme",
		OldStatus:     types.StatusSubmitted,
		NewStatus:     types.StatusInterview,
		OccurredAt:    time.Now(),
	}
	if err := m.SaveEvent(event); err != nil {
		t.Fatalf("SaveEvent() failed: %v", err)
	}

	entries, err := m.Activity(10)
	if err != nil {
		t.Fatalf("Activity() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Activity() returned %d entries, want 1", len(entries))
	}

	got := entries[0]
	if got.ApplicationID != "a1" || got.Company != "Acme" || got.NewStatus != types.StatusInterview {
		t.Errorf("entry = %+v, want saved event fields", got)
	}
}

func TestActivityForApplication_FiltersByID(t *testing.T) {
	m := newTestManager(t)

	for _, id := range []string{"a1", "a2", "a1"} {
		event := types.ApplicationEvent{
			ApplicationID: id,
			JobTitle:      "Role",
			Company:       "Co",
			NewStatus:     types.StatusReviewing,
			OccurredAt:    time.Now(),
		}
		if err := m.SaveEvent(event); err != nil {
			t.Fatalf("SaveEvent() failed: %v", err)
		}
	}

	entries, err := m.ActivityForApplication("a1")
	if err != nil {
		t.Fatalf("ActivityForApplication() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries for a1, want 2", len(entries))
	}
}

func TestPracticeRuns_SaveAndAverage(t *testing.T) {
	m := newTestManager(t)

	question := types.PracticeQuestion{
		ID:       "q1",
		Category: "behavioral",
		Role:     "backend",
		Prompt:   "Tell me about a project you led.",
	}

	for _, score := range []int{60, 80} {
		feedback := types.PracticeFeedback{QuestionID: "q1", Score: score, Summary: "solid"}
		if err := m.SavePracticeRun(question, feedback); err != nil {
			t.Fatalf("SavePracticeRun() failed: %v", err)
		}
	}

	runs, err := m.PracticeRuns(10)
	if err != nil {
		t.Fatalf("PracticeRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("PracticeRuns() returned %d runs, want 2", len(runs))
	}
	if runs[0].Role != "backend" || runs[0].Question != "q1" {
		t.Errorf("run = %+v, want backend q1", runs[0])
	}

	avg, count, err := m.AverageScore("backend")
	if err != nil {
		t.Fatalf("AverageScore() failed: %v", err)
	}
	if count != 2 || avg != 70 {
		t.Errorf("AverageScore() = (%v, %d), want (70, 2)", avg, count)
	}
}

func TestClear_EmptiesBothTables(t *testing.T) {
	m := newTestManager(t)

	if err := m.SaveEvent(types.ApplicationEvent{ApplicationID: "a1", JobTitle: "x", Company: "y", NewStatus: "submitted", OccurredAt: time.Now()}); err != nil {
		t.Fatalf("SaveEvent() failed: %v", err)
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}

	entries, _ := m.Activity(10)
	if len(entries) != 0 {
		t.Errorf("Activity() returned %d entries after Clear, want 0", len(entries))
	}
}
