package tui

import (
	"strings"
	"sync"

	"github.com/hireflux/cli/internal/types"
)

// JobsState encapsulates the job feed UI state
type JobsState struct {
	mu sync.RWMutex

	jobs    []types.Job
	allJobs []types.Job // unfiltered list for search
	index   int

	searchActive bool
	searchQuery  string
}

// NewJobsState creates a new jobs state
func NewJobsState() *JobsState {
	return &JobsState{
		jobs:    []types.Job{},
		allJobs: []types.Job{},
	}
}

// SetJobs replaces the feed and re-applies any active search filter.
func (s *JobsState) SetJobs(jobs []types.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allJobs = jobs
	s.applyFilterLocked()
}

// Jobs returns a copy of the visible jobs
func (s *JobsState) Jobs() []types.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]types.Job, len(s.jobs))
	copy(result, s.jobs)
	return result
}

// Index returns the current selection index
func (s *JobsState) Index() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Navigate moves the selection by delta, wrapping at either end
func (s *JobsState) Navigate(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.jobs) == 0 {
		return
	}
	s.index += delta
	if s.index < 0 {
		s.index = len(s.jobs) - 1
	} else if s.index >= len(s.jobs) {
		s.index = 0
	}
}

// Current returns the selected job, or nil when the feed is empty
func (s *JobsState) Current() *types.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.jobs) == 0 || s.index < 0 || s.index >= len(s.jobs) {
		return nil
	}
	job := s.jobs[s.index]
	return &job
}

// SearchActive returns whether search input is capturing keys
func (s *JobsState) SearchActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchActive
}

// ActivateSearch begins search input
func (s *JobsState) ActivateSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchActive = true
}

// DeactivateSearch ends search input, keeping the filter
func (s *JobsState) DeactivateSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchActive = false
}

// SearchQuery returns the current query
func (s *JobsState) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
}

// SetSearchQuery updates the query and filters the feed
func (s *JobsState) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
	s.applyFilterLocked()
}

// ClearSearch drops the query and restores the full feed
func (s *JobsState) ClearSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = ""
	s.searchActive = false
	s.applyFilterLocked()
}

func (s *JobsState) applyFilterLocked() {
	if s.searchQuery == "" {
		s.jobs = s.allJobs
	} else {
		query := strings.ToLower(s.searchQuery)
		filtered := make([]types.Job, 0, len(s.allJobs))
		for _, job := range s.allJobs {
			haystack := strings.ToLower(job.Title + " " + job.Company + " " + job.Location)
			if strings.Contains(haystack, query) {
				filtered = append(filtered, job)
			}
		}
		s.jobs = filtered
	}
	if s.index >= len(s.jobs) {
		s.index = 0
	}
}
