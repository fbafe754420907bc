// internal/github/client.go
package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github-issue-tracker/internal/model"
)

// perPage is the GitHub maximum; a shorter page marks the end of a listing.
const perPage = 100

// Client is a wrapper around the go-github client.
type Client struct {
	gh     *github.Client
	logger *slog.Logger
}

// NewClient creates and configures a new Client instance.
// A non-empty token is used to create an authenticated http.Client.
func NewClient(token string, logger *slog.Logger) *Client {
	var hc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		hc = oauth2.NewClient(context.Background(), ts)
	}

	return &Client{
		gh:     github.NewClient(hc),
		logger: logger,
	}
}

// SetBaseURL points the client at another API root, e.g. a GitHub Enterprise host.
func (c *Client) SetBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse github api url: %w", err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	c.gh.BaseURL = u
	return nil
}

// ListRepoIssues fetches every issue of a repository, open and closed.
// Pages are requested until one comes back short. Pull requests are dropped.
func (c *Client) ListRepoIssues(ctx context.Context, owner, name string) ([]model.RemoteIssue, error) {
	repository := owner + "/" + name
	var all []model.RemoteIssue

	opts := &github.IssueListByRepoOptions{
		State: "all",
		ListOptions: github.ListOptions{
			Page:    1,
			PerPage: perPage,
		},
	}

	for {
		c.logger.Debug("Fetching issues page", "repository", repository, "page", opts.Page)

		issues, _, err := c.gh.Issues.ListByRepo(ctx, owner, name, opts)
		if err != nil {
			return nil, wrapError(err, repository)
		}

		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			all = append(all, toRemoteIssue(issue, repository))
		}

		if len(issues) < perPage {
			break
		}
		opts.Page++
	}

	return all, nil
}

// ListAssignedIssues returns the open issues assigned to username across GitHub.
// Only the first page of search results is read.
func (c *Client) ListAssignedIssues(ctx context.Context, username string) ([]model.RemoteIssue, error) {
	query := fmt.Sprintf("assignee:%s is:issue is:open", username)
	c.logger.Debug("Searching assigned issues", "query", query)

	result, _, err := c.gh.Search.Issues(ctx, query, &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: perPage},
	})
	if err != nil {
		return nil, wrapError(err, "issues assigned to "+username)
	}

	issues := make([]model.RemoteIssue, 0, len(result.Issues))
	for _, issue := range result.Issues {
		if issue.IsPullRequest() {
			continue
		}
		repository := repositoryFromURL(issue.GetRepositoryURL())
		if repository == "" && issue.Repository != nil {
			repository = issue.Repository.GetFullName()
		}
		if repository == "" {
			c.logger.Warn("Skipping search result without repository", "number", issue.GetNumber())
			continue
		}
		issues = append(issues, toRemoteIssue(issue, repository))
	}

	return issues, nil
}

// toRemoteIssue translates a github.Issue object to our internal model.RemoteIssue.
func toRemoteIssue(i *github.Issue, repository string) model.RemoteIssue {
	labels := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		labels = append(labels, l.GetName())
	}

	state := model.GithubStatusOpen
	if i.GetState() == string(model.GithubStatusClosed) {
		state = model.GithubStatusClosed
	}

	return model.RemoteIssue{
		Number:     i.GetNumber(),
		Repository: repository,
		Title:      i.GetTitle(),
		Body:       i.Body,
		State:      state,
		URL:        i.GetHTMLURL(),
		Labels:     labels,
		CreatedAt:  i.GetCreatedAt().Time,
		UpdatedAt:  i.GetUpdatedAt().Time,
	}
}

// repositoryFromURL extracts owner/name from an API URL such as
// https://api.github.com/repos/owner/name.
func repositoryFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	idx := strings.LastIndex(u.Path, "/repos/")
	if idx < 0 {
		return ""
	}
	parts := strings.Split(strings.Trim(u.Path[idx+len("/repos/"):], "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ""
	}
	return parts[0] + "/" + parts[1]
}
