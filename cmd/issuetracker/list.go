// cmd/issuetracker/list.go
package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/spf13/cobra"

	"github-issue-tracker/internal/database"
	"github-issue-tracker/internal/model"
)

type listFlags struct {
	repository   string
	status       string
	githubStatus string
	page         int
	limit        int
}

func newListCmd(a *app) *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List mirrored issues, pending first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.list(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVarP(&f.repository, "repository", "r", "", "Only issues of this owner/name repository")
	cmd.Flags().StringVarP(&f.status, "status", "s", "", "Workflow status: pending, in_process or end")
	cmd.Flags().StringVar(&f.githubStatus, "github-status", "", "GitHub state: open or closed")
	cmd.Flags().IntVar(&f.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&f.limit, "limit", 20, "Issues per page (max 100)")
	return cmd
}

// params turns the flags into query filters. Unlike the HTTP API, bad values are rejected.
func (f listFlags) params() (database.ListIssuesParams, error) {
	var p database.ListIssuesParams
	if f.repository != "" {
		p.Repository = pgtype.Text{String: f.repository, Valid: true}
	}
	if f.status != "" {
		s, ok := model.ParseWorkflowStatus(f.status)
		if !ok {
			return p, fmt.Errorf("unknown workflow status %q", f.status)
		}
		p.WorkflowStatus = pgtype.Text{String: string(s), Valid: true}
	}
	if f.githubStatus != "" {
		s, ok := model.ParseGithubStatus(f.githubStatus)
		if !ok {
			return p, fmt.Errorf("unknown github status %q", f.githubStatus)
		}
		p.StatusGithub = pgtype.Text{String: string(s), Valid: true}
	}
	if f.page < 1 {
		return p, fmt.Errorf("page must be at least 1")
	}
	if f.limit < 1 || f.limit > 100 {
		return p, fmt.Errorf("limit must be between 1 and 100")
	}
	p.Limit = int32(f.limit)
	p.Offset = int32((f.page - 1) * f.limit)
	return p, nil
}

func (a *app) list(ctx context.Context, f listFlags) error {
	params, err := f.params()
	if err != nil {
		return err
	}

	dbpool, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer dbpool.Close()

	q := database.New(dbpool)
	total, err := q.CountIssues(ctx, database.CountIssuesParams{
		Repository:     params.Repository,
		WorkflowStatus: params.WorkflowStatus,
		StatusGithub:   params.StatusGithub,
	})
	if err != nil {
		return fmt.Errorf("count issues: %w", err)
	}
	rows, err := q.ListIssues(ctx, params)
	if err != nil {
		return fmt.Errorf("list issues: %w", err)
	}

	if len(rows) == 0 {
		a.ui.Info("No issues found")
		return nil
	}

	issues := make([]model.Issue, 0, len(rows))
	for _, row := range rows {
		issues = append(issues, row.ToModel())
	}
	if err := a.ui.Issues(issues); err != nil {
		return err
	}
	a.ui.Info("Page %d, showing %d of %d issues", f.page, len(issues), total)
	return nil
}
