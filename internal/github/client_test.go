// internal/github/client_test.go
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-issue-tracker/internal/model"
)

// setupTestClient creates a httptest server and a client pointing to it.
func setupTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	// An empty token means no auth transport; we never talk to the real GitHub.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client := NewClient("", logger)
	require.NoError(t, client.SetBaseURL(server.URL))

	return client
}

// issuesPayload builds a JSON array of n issues numbered from start. Every prEvery-th item is a pull request.
func issuesPayload(t *testing.T, start, n, prEvery int) []byte {
	t.Helper()
	items := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		number := start + i
		item := map[string]any{
			"number":     number,
			"title":      fmt.Sprintf("issue %d", number),
			"body":       "body",
			"state":      "open",
			"html_url":   fmt.Sprintf("https://github.com/acme/api/issues/%d", number),
			"labels":     []map[string]any{{"name": "bug"}},
			"created_at": "2024-01-01T12:00:00Z",
			"updated_at": "2024-01-02T12:00:00Z",
		}
		if prEvery > 0 && (i+1)%prEvery == 0 {
			item["pull_request"] = map[string]any{"url": "https://api.github.com/repos/acme/api/pulls/1"}
		}
		items = append(items, item)
	}
	b, err := json.Marshal(items)
	require.NoError(t, err)
	return b
}

func TestClient_ListRepoIssues(t *testing.T) {
	t.Run("pages until a short page and drops pull requests", func(t *testing.T) {
		var requestCount int32
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requestCount, 1)
			assert.Equal(t, "/repos/acme/api/issues", r.URL.Path)
			assert.Equal(t, "all", r.URL.Query().Get("state"))
			assert.Equal(t, "100", r.URL.Query().Get("per_page"))

			page, _ := strconv.Atoi(r.URL.Query().Get("page"))
			w.WriteHeader(http.StatusOK)
			switch page {
			case 1:
				w.Write(issuesPayload(t, 1, 100, 10)) // 10 of them are PRs
			case 2:
				w.Write(issuesPayload(t, 101, 5, 0))
			default:
				t.Errorf("unexpected page %d", page)
				w.Write([]byte(`[]`))
			}
		})
		client := setupTestClient(t, handler)

		issues, err := client.ListRepoIssues(context.Background(), "acme", "api")

		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&requestCount))
		assert.Len(t, issues, 95)
		for _, issue := range issues {
			assert.Equal(t, "acme/api", issue.Repository)
			assert.NotZero(t, issue.Number%10, "pull request %d leaked through", issue.Number)
		}
	})

	t.Run("stops after an exactly full page followed by an empty page", func(t *testing.T) {
		var requestCount int32
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			count := atomic.AddInt32(&requestCount, 1)
			if count == 1 {
				w.Write(issuesPayload(t, 1, 100, 0))
				return
			}
			w.Write([]byte(`[]`))
		})
		client := setupTestClient(t, handler)

		issues, err := client.ListRepoIssues(context.Background(), "acme", "api")

		require.NoError(t, err)
		assert.Len(t, issues, 100)
		assert.Equal(t, int32(2), atomic.LoadInt32(&requestCount))
	})

	t.Run("translates fields", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintln(w, `[{"number": 9, "title": "Crash", "state": "closed",
				"html_url": "https://github.com/acme/api/issues/9",
				"labels": [{"name": "bug"}, {"name": "urgent"}],
				"created_at": "2024-01-01T12:00:00Z", "updated_at": "2024-03-01T08:30:00Z"}]`)
		})
		client := setupTestClient(t, handler)

		issues, err := client.ListRepoIssues(context.Background(), "acme", "api")

		require.NoError(t, err)
		require.Len(t, issues, 1)
		issue := issues[0]
		assert.Equal(t, 9, issue.Number)
		assert.Equal(t, "Crash", issue.Title)
		assert.Nil(t, issue.Body)
		assert.Equal(t, model.GithubStatusClosed, issue.State)
		assert.Equal(t, []string{"bug", "urgent"}, issue.Labels)
		assert.Equal(t, "https://github.com/acme/api/issues/9", issue.URL)
		assert.Equal(t, 2024, issue.CreatedAt.Year())
		assert.Equal(t, 8, issue.UpdatedAt.Hour())
	})

	t.Run("surfaces authentication failures", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprintln(w, `{"message": "Bad credentials"}`)
		})
		client := setupTestClient(t, handler)

		_, err := client.ListRepoIssues(context.Background(), "acme", "api")

		require.Error(t, err)
		var fetchErr *FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Equal(t, KindAuth, fetchErr.Kind)
		assert.Equal(t, http.StatusUnauthorized, fetchErr.StatusCode)
		assert.Equal(t, "acme/api", fetchErr.Resource)
	})

	t.Run("does not retry server errors", func(t *testing.T) {
		var requestCount int32
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requestCount, 1)
			w.WriteHeader(http.StatusInternalServerError)
		})
		client := setupTestClient(t, handler)

		_, err := client.ListRepoIssues(context.Background(), "acme", "api")

		require.Error(t, err)
		var fetchErr *FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Equal(t, KindUnknown, fetchErr.Kind)
		assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount))
	})

	t.Run("missing repository is a not-found error", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprintln(w, `{"message": "Not Found"}`)
		})
		client := setupTestClient(t, handler)

		_, err := client.ListRepoIssues(context.Background(), "acme", "missing")

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, KindNotFound, fetchErr.Kind)
	})
}

func TestClient_ListAssignedIssues(t *testing.T) {
	t.Run("issues one search and derives repositories", func(t *testing.T) {
		var requestCount int32
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requestCount, 1)
			assert.Equal(t, "/search/issues", r.URL.Path)
			assert.Equal(t, "assignee:octocat is:issue is:open", r.URL.Query().Get("q"))
			assert.Equal(t, "100", r.URL.Query().Get("per_page"))
			fmt.Fprintln(w, `{"total_count": 3, "incomplete_results": false, "items": [
				{"number": 1, "title": "one", "state": "open", "repository_url": "https://api.github.com/repos/acme/api",
				 "created_at": "2024-01-01T12:00:00Z", "updated_at": "2024-01-02T12:00:00Z"},
				{"number": 2, "title": "pr", "state": "open", "repository_url": "https://api.github.com/repos/acme/api",
				 "pull_request": {"url": "https://api.github.com/repos/acme/api/pulls/2"}},
				{"number": 3, "title": "three", "state": "open", "repository_url": "https://ghe.example.com/api/v3/repos/acme/web"}
			]}`)
		})
		client := setupTestClient(t, handler)

		issues, err := client.ListAssignedIssues(context.Background(), "octocat")

		require.NoError(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&requestCount))
		require.Len(t, issues, 2)
		assert.Equal(t, "acme/api", issues[0].Repository)
		assert.Equal(t, 1, issues[0].Number)
		assert.Equal(t, "acme/web", issues[1].Repository)
	})

	t.Run("surfaces search failures", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprintln(w, `{"message": "Validation Failed"}`)
		})
		client := setupTestClient(t, handler)

		_, err := client.ListAssignedIssues(context.Background(), "ghost")

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusUnprocessableEntity, fetchErr.StatusCode)
	})
}

func TestRepositoryFromURL(t *testing.T) {
	tests := map[string]string{
		"https://api.github.com/repos/acme/api":            "acme/api",
		"https://ghe.example.com/api/v3/repos/acme/web/":   "acme/web",
		"https://api.github.com/users/octocat":             "",
		"https://api.github.com/repos/acme":                "",
		"https://api.github.com/repos/acme/api/issues/1":   "",
		"":                                                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, repositoryFromURL(in), in)
	}
}
