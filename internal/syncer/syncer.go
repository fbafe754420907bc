// internal/syncer/syncer.go
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github-issue-tracker/internal/database"
	custom_errors "github-issue-tracker/internal/errors"
	"github-issue-tracker/internal/model"
	"github-issue-tracker/internal/reconcile"
)

// RepoIdentifier holds the owner and name of a repository.
type RepoIdentifier struct {
	Owner string
	Name  string
}

func (r RepoIdentifier) String() string {
	return r.Owner + "/" + r.Name
}

// IssueFetcher is the subset of the GitHub client the syncer needs.
type IssueFetcher interface {
	ListRepoIssues(ctx context.Context, owner, name string) ([]model.RemoteIssue, error)
	ListAssignedIssues(ctx context.Context, username string) ([]model.RemoteIssue, error)
}

// Options carries the sync-related configuration.
type Options struct {
	Token    string
	Repos    []string
	Interval time.Duration
}

// Result summarises one sync run. Errors lists every issue or repository that was skipped.
type Result struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

// Syncer orchestrates the fetching and storing of issues.
type Syncer struct {
	store        database.TxRunner
	ghClient     IssueFetcher
	logger       *slog.Logger
	token        string
	reposToSync  []RepoIdentifier
	syncInterval time.Duration
}

// NewSyncer creates a new Syncer instance. Malformed repository entries are rejected here;
// a missing token or an empty repository list is only reported when a sync runs.
func NewSyncer(store database.TxRunner, ghClient IssueFetcher, logger *slog.Logger, opts Options) (*Syncer, error) {
	parsedRepos, err := parseRepoIdentifiers(opts.Repos)
	if err != nil {
		return nil, err
	}

	return &Syncer{
		store:        store,
		ghClient:     ghClient,
		logger:       logger,
		token:        opts.Token,
		reposToSync:  parsedRepos,
		syncInterval: opts.Interval,
	}, nil
}

// Repositories returns the configured repositories as owner/name strings.
func (s *Syncer) Repositories() []string {
	repos := make([]string, len(s.reposToSync))
	for i, r := range s.reposToSync {
		repos[i] = r.String()
	}
	return repos
}

// Start runs a sync immediately and then on every tick until ctx is done.
// It returns at once when no interval is configured.
func (s *Syncer) Start(ctx context.Context) {
	if s.syncInterval <= 0 {
		s.logger.Info("Periodic sync disabled")
		return
	}

	s.logger.Info("Starting syncer", "interval", s.syncInterval.String(), "repositories", len(s.reposToSync))
	ticker := time.NewTicker(s.syncInterval)
	defer ticker.Stop()

	s.runSyncCycle(ctx) // Initial sync

	for {
		select {
		case <-ticker.C:
			s.runSyncCycle(ctx)
		case <-ctx.Done():
			s.logger.Info("Syncer shutting down", "reason", ctx.Err())
			return
		}
	}
}

func (s *Syncer) runSyncCycle(ctx context.Context) {
	result, err := s.SyncAll(ctx)
	if err != nil {
		s.logger.Error("Sync cycle aborted", "error", err)
		return
	}
	s.logger.Info("Sync cycle finished", "created", result.Created, "updated", result.Updated, "errors", len(result.Errors))
}

// SyncAll mirrors the issues of every configured repository.
// Only missing configuration produces an error; per-repository and per-issue failures are
// collected in the result and the run carries on.
func (s *Syncer) SyncAll(ctx context.Context) (Result, error) {
	if s.token == "" {
		return Result{}, custom_errors.ErrMissingToken
	}
	if len(s.reposToSync) == 0 {
		return Result{}, custom_errors.ErrNoRepositories
	}

	result := Result{Errors: []string{}}
	for _, id := range s.reposToSync {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		logger := s.logger.With("repository", id.String())
		logger.Info("Syncing repository")

		issues, err := s.ghClient.ListRepoIssues(ctx, id.Owner, id.Name)
		if err != nil {
			logger.Error("Failed to fetch repository issues", "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("repository %s: %v", id, err))
			continue
		}

		logger.Info("Fetched issues", "count", len(issues))
		s.syncIssues(ctx, issues, &result)
	}

	return result, nil
}

// SyncUser mirrors the open issues assigned to username.
func (s *Syncer) SyncUser(ctx context.Context, username string) (Result, error) {
	if s.token == "" {
		return Result{}, custom_errors.ErrMissingToken
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return Result{}, custom_errors.ErrMissingUsername
	}

	logger := s.logger.With("assignee", username)
	logger.Info("Syncing assigned issues")

	issues, err := s.ghClient.ListAssignedIssues(ctx, username)
	if err != nil {
		return Result{}, fmt.Errorf("fetch issues assigned to %s: %w", username, err)
	}

	logger.Info("Fetched issues", "count", len(issues))
	result := Result{Errors: []string{}}
	s.syncIssues(ctx, issues, &result)
	return result, nil
}

func (s *Syncer) syncIssues(ctx context.Context, issues []model.RemoteIssue, result *Result) {
	for _, remote := range issues {
		var action reconcile.Action
		err := s.store.ExecTx(ctx, func(q database.Querier) error {
			var err error
			action, err = s.upsertIssue(ctx, q, remote)
			return err
		})
		if err != nil {
			s.logger.Error("Failed to sync issue", "repository", remote.Repository, "number", remote.Number, "error", err)
			result.Errors = append(result.Errors, fmt.Sprintf("issue #%d in %s: %v", remote.Number, remote.Repository, err))
			continue
		}

		switch action {
		case reconcile.ActionCreate:
			result.Created++
		case reconcile.ActionUpdate:
			result.Updated++
		}
	}
}

// upsertIssue locks the row for the issue's natural key, reconciles and writes it.
// If another sync inserts the same issue between the lookup and our insert, the insert
// yields no row and the now-existing row is updated instead.
func (s *Syncer) upsertIssue(ctx context.Context, q database.Querier, remote model.RemoteIssue) (reconcile.Action, error) {
	key := database.GetIssueByNumberForUpdateParams{
		GithubNumber: int32(remote.Number),
		Repository:   remote.Repository,
	}

	existing, err := q.GetIssueByNumberForUpdate(ctx, key)
	if errors.Is(err, pgx.ErrNoRows) {
		out := reconcile.Reconcile(remote, nil)
		_, err = q.InsertIssue(ctx, insertParams(out.Issue))
		if err == nil {
			return reconcile.ActionCreate, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("insert issue: %w", err)
		}

		s.logger.Debug("Issue inserted concurrently, updating instead", "repository", remote.Repository, "number", remote.Number)
		existing, err = q.GetIssueByNumberForUpdate(ctx, key)
	}
	if err != nil {
		return 0, fmt.Errorf("get issue: %w", err)
	}

	current := existing.ToModel()
	out := reconcile.Reconcile(remote, &current)
	if _, err := q.UpdateIssueFromRemote(ctx, updateParams(out.Issue)); err != nil {
		return 0, fmt.Errorf("update issue: %w", err)
	}
	return reconcile.ActionUpdate, nil
}

func parseRepoIdentifiers(repos []string) ([]RepoIdentifier, error) {
	var identifiers []RepoIdentifier
	for _, r := range repos {
		parts := strings.Split(r, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, &custom_errors.ErrInvalidRepoFormat{Repo: r}
		}
		identifiers = append(identifiers, RepoIdentifier{Owner: parts[0], Name: parts[1]})
	}
	return identifiers, nil
}

func insertParams(issue model.Issue) database.InsertIssueParams {
	return database.InsertIssueParams{
		ID:              uuid.New(),
		GithubNumber:    int32(issue.GithubNumber),
		Repository:      issue.Repository,
		Title:           issue.Title,
		Description:     database.Text(issue.Description),
		Labels:          issue.Labels,
		StatusGithub:    string(issue.StatusGithub),
		WorkflowStatus:  string(issue.WorkflowStatus),
		Url:             issue.URL,
		CreatedAtGithub: issue.CreatedAtGithub,
		UpdatedAtGithub: issue.UpdatedAtGithub,
	}
}

func updateParams(issue model.Issue) database.UpdateIssueFromRemoteParams {
	return database.UpdateIssueFromRemoteParams{
		ID:              issue.ID,
		Title:           issue.Title,
		Description:     database.Text(issue.Description),
		Labels:          issue.Labels,
		Url:             issue.URL,
		StatusGithub:    string(issue.StatusGithub),
		WorkflowStatus:  string(issue.WorkflowStatus),
		UpdatedAtGithub: issue.UpdatedAtGithub,
	}
}
