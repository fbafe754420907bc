// internal/reconcile/reconcile.go

// Package reconcile decides how a freshly fetched GitHub issue changes its local record.
package reconcile

import (
	"github-issue-tracker/internal/model"
)

// Action tells the store whether the outcome is a new row or a change to an existing one.
type Action int

const (
	ActionCreate Action = iota
	ActionUpdate
)

func (a Action) String() string {
	if a == ActionCreate {
		return "create"
	}
	return "update"
}

// Outcome is the result of reconciling one remote issue.
type Outcome struct {
	Action Action
	Issue  model.Issue
}

// Reconcile merges remote into existing. A nil existing means the issue has never been seen.
//
// GitHub closing an issue always ends its workflow. Reopening a closed issue discards local
// progress. While the issue stays open the local workflow status is preserved.
func Reconcile(remote model.RemoteIssue, existing *model.Issue) Outcome {
	if existing == nil {
		issue := model.Issue{
			GithubNumber:    remote.Number,
			Repository:      remote.Repository,
			CreatedAtGithub: remote.CreatedAt,
			WorkflowStatus:  model.WorkflowPending,
		}
		if remote.State == model.GithubStatusClosed {
			issue.WorkflowStatus = model.WorkflowEnd
		}
		mirror(&issue, remote)
		return Outcome{Action: ActionCreate, Issue: issue}
	}

	issue := *existing
	issue.WorkflowStatus = nextWorkflowStatus(existing.StatusGithub, remote.State, existing.WorkflowStatus)
	mirror(&issue, remote)
	return Outcome{Action: ActionUpdate, Issue: issue}
}

func nextWorkflowStatus(previous, current model.GithubStatus, workflow model.WorkflowStatus) model.WorkflowStatus {
	switch current {
	case model.GithubStatusClosed:
		return model.WorkflowEnd
	case model.GithubStatusOpen:
		if previous == model.GithubStatusClosed {
			return model.WorkflowPending
		}
	}
	return workflow
}

// mirror copies the fields GitHub owns onto issue.
func mirror(issue *model.Issue, remote model.RemoteIssue) {
	issue.Title = remote.Title
	issue.Description = remote.Body
	issue.Labels = remote.Labels
	if issue.Labels == nil {
		issue.Labels = []string{}
	}
	issue.URL = remote.URL
	issue.StatusGithub = remote.State
	issue.UpdatedAtGithub = remote.UpdatedAt
}
