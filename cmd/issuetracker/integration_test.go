//go:build integration

// cmd/issuetracker/integration_test.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github-issue-tracker/internal/api"
	"github-issue-tracker/internal/database"
	"github-issue-tracker/internal/github"
	"github-issue-tracker/internal/syncer"
)

func setupTestDatabase(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()

	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("issues"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(context.Background()))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.Migrate(connStr))
	// A second run is a no-op.
	require.NoError(t, database.Migrate(connStr))

	dbpool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(dbpool.Close)

	return dbpool
}

// fakeGitHub serves /repos/acme/api/issues from a mutable list.
type fakeGitHub struct {
	mu     sync.Mutex
	issues []map[string]any
}

func (f *fakeGitHub) set(issues ...map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issues = issues
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !strings.HasSuffix(r.URL.Path, "/repos/acme/api/issues") {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(f.issues)
}

func remoteIssue(number int, state, title string, updated time.Time) map[string]any {
	return map[string]any{
		"number":     number,
		"title":      title,
		"body":       "details",
		"state":      state,
		"html_url":   fmt.Sprintf("https://github.com/acme/api/issues/%d", number),
		"labels":     []map[string]any{{"name": "bug"}},
		"created_at": "2024-01-01T00:00:00Z",
		"updated_at": updated.Format(time.RFC3339),
	}
}

func TestIssueTracker_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	dbpool := setupTestDatabase(ctx, t)
	store := database.NewStore(dbpool)

	gh := &fakeGitHub{}
	server := httptest.NewServer(gh)
	defer server.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ghClient := github.NewClient("", logger)
	require.NoError(t, ghClient.SetBaseURL(server.URL))

	appSyncer, err := syncer.NewSyncer(store, ghClient, logger, syncer.Options{
		Token: "test-token",
		Repos: []string{"acme/api", "acme/missing"},
	})
	require.NoError(t, err)

	day := func(d int) time.Time { return time.Date(2024, 2, d, 0, 0, 0, 0, time.UTC) }

	// First sync: two open issues and one already closed.
	gh.set(
		remoteIssue(1, "open", "first", day(1)),
		remoteIssue(2, "open", "second", day(3)),
		remoteIssue(3, "closed", "third", day(5)),
	)
	result, err := appSyncer.SyncAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 0, result.Updated)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "acme/missing")

	q := database.New(dbpool)
	rows, err := q.ListIssues(ctx, database.ListIssuesParams{Limit: 10})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	// Pending first, most recently updated first within a status.
	assert.Equal(t, []int32{2, 1, 3}, []int32{rows[0].GithubNumber, rows[1].GithubNumber, rows[2].GithubNumber})
	assert.Equal(t, "end", rows[2].WorkflowStatus)
	assert.Equal(t, []string{"bug"}, rows[0].Labels)

	// Start issue 1 through the API.
	router := api.NewRouter(store, appSyncer, api.Options{ServiceOptions: []string{"backend"}}, logger)
	first := rows[1]
	req := httptest.NewRequest(http.MethodPost, "/api/issues/"+first.ID.String()+"/start",
		strings.NewReader(`{"selectedContext":"backend","prompt":"look at auth"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Starting twice fails; the conditional update matches nothing.
	_, err = q.StartIssue(ctx, database.StartIssueParams{
		ID:              first.ID,
		SelectedContext: pgtype.Text{String: "backend", Valid: true},
	})
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	// Second sync: issue 1 closes, issue 3 reopens, issue 2 is renamed.
	gh.set(
		remoteIssue(1, "closed", "first", day(6)),
		remoteIssue(2, "open", "second renamed", day(7)),
		remoteIssue(3, "open", "third", day(8)),
	)
	result, err = appSyncer.SyncAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 3, result.Updated)

	one, err := q.GetIssueByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "end", one.WorkflowStatus)
	assert.Equal(t, "closed", one.StatusGithub)
	assert.Equal(t, "backend", one.SelectedContext.String)
	assert.Equal(t, "look at auth", one.Prompt.String)

	three, err := q.GetIssueByID(ctx, rows[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", three.WorkflowStatus)

	two, err := q.GetIssueByID(ctx, rows[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "second renamed", two.Title)
	assert.Equal(t, "pending", two.WorkflowStatus)

	total, err := q.CountIssues(ctx, database.CountIssuesParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	// Repositories combine configured and stored names.
	req = httptest.NewRequest(http.MethodGet, "/api/repositories", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"repositories":["acme/api","acme/missing"]}`, string(body))
}
