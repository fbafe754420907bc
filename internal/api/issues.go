// internal/api/issues.go
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github-issue-tracker/internal/database"
	custom_errors "github-issue-tracker/internal/errors"
	"github-issue-tracker/internal/model"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
	maxPage      = 1_000_000
)

type pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type listIssuesResponse struct {
	Issues     []model.Issue `json:"issues"`
	Pagination pagination    `json:"pagination"`
}

type startIssueRequest struct {
	SelectedContext string  `json:"selectedContext"`
	Prompt          *string `json:"prompt"`
}

// listIssues returns one page of issues matching the optional filters.
// GET /api/issues?repository=&workflowStatus=&statusGithub=&page=&limit=
// Unknown status values are ignored rather than rejected.
func (h *Handler) listIssues(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := positiveIntOr(q.Get("page"), defaultPage)
	if page > maxPage {
		page = maxPage
	}
	limit := positiveIntOr(q.Get("limit"), defaultLimit)
	if limit > maxLimit {
		limit = maxLimit
	}

	var filter database.CountIssuesParams
	if repo := strings.TrimSpace(q.Get("repository")); repo != "" {
		filter.Repository = pgtype.Text{String: repo, Valid: true}
	}
	if status, ok := model.ParseWorkflowStatus(q.Get("workflowStatus")); ok {
		filter.WorkflowStatus = pgtype.Text{String: string(status), Valid: true}
	}
	if status, ok := model.ParseGithubStatus(q.Get("statusGithub")); ok {
		filter.StatusGithub = pgtype.Text{String: string(status), Valid: true}
	}

	total, err := h.db.CountIssues(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, fmt.Errorf("count issues: %w", err))
		return
	}

	rows, err := h.db.ListIssues(r.Context(), database.ListIssuesParams{
		Repository:     filter.Repository,
		WorkflowStatus: filter.WorkflowStatus,
		StatusGithub:   filter.StatusGithub,
		Offset:         int32((page - 1) * limit),
		Limit:          int32(limit),
	})
	if err != nil {
		h.writeError(w, r, fmt.Errorf("list issues: %w", err))
		return
	}

	issues := make([]model.Issue, 0, len(rows))
	for _, row := range rows {
		issues = append(issues, row.ToModel())
	}

	respondWithJSON(w, http.StatusOK, listIssuesResponse{
		Issues: issues,
		Pagination: pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		},
	})
}

// getIssue returns a single issue.
// GET /api/issues/{id}
func (h *Handler) getIssue(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, custom_errors.ErrIssueNotFound)
		return
	}

	row, err := h.db.GetIssueByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = custom_errors.ErrIssueNotFound
		}
		h.writeError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, row.ToModel())
}

// startIssue moves a pending, open issue into in_process.
// POST /api/issues/{id}/start
func (h *Handler) startIssue(w http.ResponseWriter, r *http.Request) {
	var req startIssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.SelectedContext = strings.TrimSpace(req.SelectedContext)
	if req.SelectedContext == "" {
		h.writeError(w, r, custom_errors.ErrMissingContext)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, custom_errors.ErrIssueNotFound)
		return
	}

	issue, err := h.start(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info("Issue started", "id", issue.ID, "repository", issue.Repository, "number", issue.GithubNumber, "context", req.SelectedContext)
	respondWithJSON(w, http.StatusOK, issue.ToModel())
}

func (h *Handler) start(ctx context.Context, id uuid.UUID, req startIssueRequest) (database.Issue, error) {
	current, err := h.db.GetIssueByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return database.Issue{}, custom_errors.ErrIssueNotFound
	}
	if err != nil {
		return database.Issue{}, fmt.Errorf("get issue: %w", err)
	}
	if err := checkStartable(current); err != nil {
		return database.Issue{}, err
	}

	updated, err := h.db.StartIssue(ctx, database.StartIssueParams{
		ID:              id,
		SelectedContext: pgtype.Text{String: req.SelectedContext, Valid: true},
		Prompt:          database.Text(req.Prompt),
	})
	if errors.Is(err, pgx.ErrNoRows) {
		// The row changed between the read and the conditional update.
		current, err = h.db.GetIssueByID(ctx, id)
		if err != nil {
			return database.Issue{}, fmt.Errorf("reload issue: %w", err)
		}
		if err := checkStartable(current); err != nil {
			return database.Issue{}, err
		}
		return database.Issue{}, custom_errors.ErrIssueNotPending
	}
	if err != nil {
		return database.Issue{}, fmt.Errorf("start issue: %w", err)
	}
	return updated, nil
}

func checkStartable(issue database.Issue) error {
	if model.GithubStatus(issue.StatusGithub) != model.GithubStatusOpen {
		return custom_errors.ErrIssueClosed
	}
	if model.WorkflowStatus(issue.WorkflowStatus) != model.WorkflowPending {
		return custom_errors.ErrIssueNotPending
	}
	return nil
}

// listContexts returns the selectable service contexts for the start action.
// GET /api/contexts
func (h *Handler) listContexts(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string][]string{"contexts": h.serviceOptions})
}

// listRepositories returns configured and already synced repositories.
// GET /api/repositories
func (h *Handler) listRepositories(w http.ResponseWriter, r *http.Request) {
	stored, err := h.db.ListRepositories(r.Context())
	if err != nil {
		h.writeError(w, r, fmt.Errorf("list repositories: %w", err))
		return
	}

	repos := append(slices.Clone(h.syncer.Repositories()), stored...)
	slices.Sort(repos)
	repos = slices.Compact(repos)
	if repos == nil {
		repos = []string{}
	}

	respondWithJSON(w, http.StatusOK, map[string][]string{"repositories": repos})
}

func positiveIntOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
