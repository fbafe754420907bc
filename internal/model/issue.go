// internal/model/issue.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// GithubStatus mirrors the open/closed state of an issue on GitHub.
type GithubStatus string

const (
	GithubStatusOpen   GithubStatus = "open"
	GithubStatusClosed GithubStatus = "closed"
)

// ParseGithubStatus reports whether s names a known GitHub status.
func ParseGithubStatus(s string) (GithubStatus, bool) {
	switch GithubStatus(s) {
	case GithubStatusOpen, GithubStatusClosed:
		return GithubStatus(s), true
	}
	return "", false
}

// WorkflowStatus is the local progress marker, independent of GitHub state.
type WorkflowStatus string

const (
	WorkflowPending   WorkflowStatus = "pending"
	WorkflowInProcess WorkflowStatus = "in_process"
	WorkflowEnd       WorkflowStatus = "end"
)

// ParseWorkflowStatus reports whether s names a known workflow status.
func ParseWorkflowStatus(s string) (WorkflowStatus, bool) {
	switch WorkflowStatus(s) {
	case WorkflowPending, WorkflowInProcess, WorkflowEnd:
		return WorkflowStatus(s), true
	}
	return "", false
}

// Issue is the locally persisted view of a GitHub issue.
type Issue struct {
	ID              uuid.UUID      `json:"id"`
	GithubNumber    int            `json:"githubNumber"`
	Repository      string         `json:"repository"`
	Title           string         `json:"title"`
	Description     *string        `json:"description"`
	Labels          []string       `json:"labels"`
	StatusGithub    GithubStatus   `json:"statusGithub"`
	WorkflowStatus  WorkflowStatus `json:"workflowStatus"`
	URL             string         `json:"url"`
	SelectedContext *string        `json:"selectedContext"`
	Prompt          *string        `json:"prompt"`
	CreatedAtGithub time.Time      `json:"createdAtGithub"`
	UpdatedAtGithub time.Time      `json:"updatedAtGithub"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// RemoteIssue is an issue as fetched from GitHub, pull requests already removed.
type RemoteIssue struct {
	Number     int
	Repository string // owner/name
	Title      string
	Body       *string
	State      GithubStatus
	URL        string
	Labels     []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
