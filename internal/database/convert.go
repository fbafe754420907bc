// internal/database/convert.go
package database

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github-issue-tracker/internal/model"
)

// ToModel converts a stored row into the domain representation.
func (i Issue) ToModel() model.Issue {
	labels := i.Labels
	if labels == nil {
		labels = []string{}
	}
	return model.Issue{
		ID:              i.ID,
		GithubNumber:    int(i.GithubNumber),
		Repository:      i.Repository,
		Title:           i.Title,
		Description:     fromText(i.Description),
		Labels:          labels,
		StatusGithub:    model.GithubStatus(i.StatusGithub),
		WorkflowStatus:  model.WorkflowStatus(i.WorkflowStatus),
		URL:             i.Url,
		SelectedContext: fromText(i.SelectedContext),
		Prompt:          fromText(i.Prompt),
		CreatedAtGithub: i.CreatedAtGithub,
		UpdatedAtGithub: i.UpdatedAtGithub,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}

// Text converts an optional string into a nullable column value. Empty strings are stored as NULL.
func Text(s *string) pgtype.Text {
	if s == nil || *s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func fromText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}
