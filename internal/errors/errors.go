// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// ErrInvalidRepoFormat is returned when a repository string in the config is not in 'owner/name' format.
type ErrInvalidRepoFormat struct {
	Repo string
}

func (e *ErrInvalidRepoFormat) Error() string {
	return fmt.Sprintf("invalid repository format: %q, expected 'owner/name'", e.Repo)
}

// Configuration errors abort a sync run before anything is fetched.
var (
	ErrMissingToken    = errors.New("GITHUB_TOKEN is not configured")
	ErrNoRepositories  = errors.New("REPOS_TO_SYNC must contain at least one repository")
	ErrMissingUsername = errors.New("username is required")
)

// Issue transition errors. None of them change state.
var (
	ErrIssueNotFound   = errors.New("issue not found")
	ErrMissingContext  = errors.New("selectedContext is required")
	ErrIssueClosed     = errors.New("issue is closed on GitHub")
	ErrIssueNotPending = errors.New("issue is not pending")
)
