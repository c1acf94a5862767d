package types

import "time"

// Job is a posting in the HireFlux job feed.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Remote      bool      `json:"remote"`
	SalaryMin   int       `json:"salaryMin,omitempty"`
	SalaryMax   int       `json:"salaryMax,omitempty"`
	Description string    `json:"description,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	MatchScore  int       `json:"matchScore,omitempty"`
	URL         string    `json:"url,omitempty"`
	PostedAt    time.Time `json:"postedAt"`
}

// Application statuses as reported by the ATS.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusReviewing = "reviewing"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusRejected  = "rejected"
	StatusWithdrawn = "withdrawn"
)

// Application tracks one submission against a job posting.
type Application struct {
	ID        string    `json:"id"`
	JobID     string    `json:"jobId"`
	JobTitle  string    `json:"jobTitle"`
	Company   string    `json:"company"`
	ResumeID  string    `json:"resumeId,omitempty"`
	Status    string    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	AppliedAt time.Time `json:"appliedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Resume is a stored resume document with its backend quality score.
type Resume struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Headline     string    `json:"headline,omitempty"`
	QualityScore int       `json:"qualityScore,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AnalyticsSummary aggregates a seeker's pipeline.
type AnalyticsSummary struct {
	TotalApplications int            `json:"totalApplications"`
	ActiveInterviews  int            `json:"activeInterviews"`
	Offers            int            `json:"offers"`
	ResponseRate      float64        `json:"responseRate"`
	ByStatus          map[string]int `json:"byStatus"`
}

// ApplicationEvent is a status change pushed over the event stream.
type ApplicationEvent struct {
	ApplicationID string    `json:"applicationId"`
	JobTitle      string    `json:"jobTitle"`
	Company       string    `json:"company"`
	OldStatus     string    `json:"oldStatus"`
	NewStatus     string    `json:"newStatus"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// PracticeQuestion is one interview practice prompt.
type PracticeQuestion struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Role     string `json:"role"`
	Prompt   string `json:"prompt"`
}

// PracticeFeedback is generated feedback for a practice answer.
type PracticeFeedback struct {
	QuestionID string   `json:"questionId"`
	Score      int      `json:"score"`
	Summary    string   `json:"summary"`
	Strengths  []string `json:"strengths"`
	Improve    []string `json:"improve"`
}
