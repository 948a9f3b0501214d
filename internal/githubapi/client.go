// Package githubapi fetches pull-request discussion data using the GitHub CLI.
package githubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/llmctx/gitctx/internal/logging"
	"github.com/llmctx/gitctx/internal/record"
)

// Client runs gh queries against one repository.
type Client struct {
	logger   *slog.Logger
	token    string
	repo     string
	owner    string
	name     string
	pageSize int
	maxPages int
}

// Options tunes paging behavior; zero values use defaults.
type Options struct {
	// PageSize is the GraphQL page size (max 100).
	PageSize int
	// MaxPages caps how many pages are fetched per query; 0 means no cap.
	MaxPages int
}

// NewClient constructs a Client for an owner/repo slug.
func NewClient(logger *slog.Logger, token, repo string, opts Options) (*Client, error) {
	repo = strings.TrimSpace(repo)
	if repo == "" {
		return nil, fmt.Errorf("repository is empty")
	}
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return nil, fmt.Errorf("invalid repository slug %q, expected owner/repo", repo)
	}
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 50
	}
	return &Client{
		logger:   logger,
		token:    token,
		repo:     repo,
		owner:    parts[0],
		name:     parts[1],
		pageSize: pageSize,
		maxPages: opts.MaxPages,
	}, nil
}

// Repo returns the owner/repo slug the client is bound to.
func (c *Client) Repo() string {
	return c.repo
}

// FetchPullRequestComments returns the PR-level (issue) comments for a pull
// request, skipping minimized ones.
func (c *Client) FetchPullRequestComments(ctx context.Context, number int) ([]record.PullRequestComment, error) {
	if number <= 0 {
		return nil, fmt.Errorf("pr number must be positive")
	}
	query := `query($owner: String!, $name: String!, $number: Int!, $first: Int!, $after: String) {
  repository(owner: $owner, name: $name) {
    pullRequest(number: $number) {
      comments(first: $first, after: $after) {
        nodes {
          body
          url
          createdAt
          isMinimized
          minimizedReason
        }
        pageInfo { hasNextPage endCursor }
      }
    }
  }
}`

	var out []record.PullRequestComment
	err := c.paged(func(after string) (pageInfo, error) {
		resp := prCommentsResponse{}
		if err := c.runGraphQL(ctx, query, c.vars(number, after), &resp); err != nil {
			return pageInfo{}, err
		}
		block := resp.Data.Repository.PullRequest.Comments
		for _, node := range block.Nodes {
			if node.IsMinimized || strings.TrimSpace(node.MinimizedReason) != "" {
				continue
			}
			out = append(out, record.PullRequestComment{
				Body:      node.Body,
				CreatedAt: strings.TrimSpace(node.CreatedAt),
				URL:       strings.TrimSpace(node.URL),
			})
		}
		return block.PageInfo, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FetchReviewThreads returns all review threads of a pull request with their
// comments in thread order, including resolved threads.
func (c *Client) FetchReviewThreads(ctx context.Context, number int) ([]record.ReviewThread, error) {
	if number <= 0 {
		return nil, fmt.Errorf("pr number must be positive")
	}
	query := `query($owner: String!, $name: String!, $number: Int!, $first: Int!, $after: String) {
  repository(owner: $owner, name: $name) {
    pullRequest(number: $number) {
      reviewThreads(first: $first, after: $after) {
        nodes {
          isResolved
          comments(first: 100) {
            nodes {
              databaseId
              body
              diffHunk
              createdAt
              author { login }
            }
          }
        }
        pageInfo { hasNextPage endCursor }
      }
    }
  }
}`

	var out []record.ReviewThread
	err := c.paged(func(after string) (pageInfo, error) {
		resp := reviewThreadsResponse{}
		if err := c.runGraphQL(ctx, query, c.vars(number, after), &resp); err != nil {
			return pageInfo{}, err
		}
		block := resp.Data.Repository.PullRequest.ReviewThreads
		for _, node := range block.Nodes {
			thread := record.ReviewThread{Resolved: node.IsResolved}
			for _, cn := range node.Comments.Nodes {
				thread.Comments = append(thread.Comments, record.ThreadComment{
					ID:        strconv.Itoa(cn.DatabaseID),
					Author:    strings.TrimSpace(cn.Author.Login),
					CreatedAt: strings.TrimSpace(cn.CreatedAt),
					Body:      cn.Body,
					DiffHunk:  cn.DiffHunk,
				})
			}
			out = append(out, thread)
		}
		return block.PageInfo, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FetchReviewComments returns every review comment of a pull request as a
// flat list, without thread or diff context.
func (c *Client) FetchReviewComments(ctx context.Context, number int) ([]record.ReviewComment, error) {
	threads, err := c.FetchReviewThreads(ctx, number)
	if err != nil {
		return nil, err
	}
	return flattenThreads(threads), nil
}

// FetchCheckRuns returns the CI check statuses on the PR head commit via
// `gh pr view --json statusCheckRollup`.
func (c *Client) FetchCheckRuns(ctx context.Context, number int) ([]record.CheckRun, error) {
	if number <= 0 {
		return nil, fmt.Errorf("pr number must be positive")
	}
	args := []string{
		"pr", "view", strconv.Itoa(number),
		"--repo", c.repo,
		"--json", "statusCheckRollup",
	}
	out, err := c.runGH(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("gh pr view for PR %d failed: %w", number, err)
	}

	var resp checkRollupResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, fmt.Errorf("decode gh pr view output: %w", err)
	}
	return rollupChecks(resp), nil
}

// rollupChecks normalizes the mixed CheckRun/StatusContext entries of a
// status rollup into CheckRun records.
func rollupChecks(resp checkRollupResponse) []record.CheckRun {
	checks := make([]record.CheckRun, 0, len(resp.StatusCheckRollup))
	for _, node := range resp.StatusCheckRollup {
		name := node.Name
		if name == "" {
			name = node.Context
		}
		status := node.Status
		if status == "" {
			status = node.State
		}
		checks = append(checks, record.CheckRun{
			Name:       name,
			Status:     status,
			Conclusion: node.Conclusion,
		})
	}
	return checks
}

// FetchPullRequestData aggregates comments, threads, flattened review
// comments and check statuses for one pull request.
func (c *Client) FetchPullRequestData(ctx context.Context, number int) (record.PullRequestData, error) {
	comments, err := c.FetchPullRequestComments(ctx, number)
	if err != nil {
		return record.PullRequestData{}, err
	}
	threads, err := c.FetchReviewThreads(ctx, number)
	if err != nil {
		return record.PullRequestData{}, err
	}
	checks, err := c.FetchCheckRuns(ctx, number)
	if err != nil {
		return record.PullRequestData{}, err
	}
	return record.PullRequestData{
		Comments: comments,
		Threads:  threads,
		Reviews:  flattenThreads(threads),
		Checks:   checks,
	}, nil
}

// flattenThreads strips thread and diff context from thread comments.
func flattenThreads(threads []record.ReviewThread) []record.ReviewComment {
	var out []record.ReviewComment
	for _, t := range threads {
		for _, tc := range t.Comments {
			out = append(out, record.ReviewComment{
				ID:        tc.ID,
				Author:    tc.Author,
				CreatedAt: tc.CreatedAt,
				Body:      tc.Body,
			})
		}
	}
	return out
}

// paged drives a cursor loop over one GraphQL connection.
func (c *Client) paged(fetch func(after string) (pageInfo, error)) error {
	var after string
	for page := 0; ; page++ {
		if c.maxPages > 0 && page >= c.maxPages {
			return nil
		}
		info, err := fetch(after)
		if err != nil {
			return err
		}
		if !info.HasNextPage || info.EndCursor == "" {
			return nil
		}
		after = info.EndCursor
	}
}

// vars builds the standard variable set for a PR-scoped query.
func (c *Client) vars(number int, after string) map[string]any {
	vars := map[string]any{
		"owner":  c.owner,
		"name":   c.name,
		"number": number,
		"first":  c.pageSize,
	}
	if after != "" {
		vars["after"] = after
	}
	return vars
}

func (c *Client) runGraphQL(ctx context.Context, query string, vars map[string]any, out any) error {
	args := []string{"api", "graphql", "-f", "query=" + query}
	for key, val := range vars {
		if val == nil {
			continue
		}
		switch v := val.(type) {
		case int, int32, int64, uint, uint32, uint64, float32, float64, bool:
			args = append(args, "-F", fmt.Sprintf("%s=%v", key, v))
			continue
		}
		str := fmt.Sprintf("%v", val)
		if str == "" {
			continue
		}
		args = append(args, "-f", fmt.Sprintf("%s=%s", key, str))
	}
	if c.logger != nil {
		c.logger.Debug("github graphql query", "repo", c.repo, "args", args)
	}

	raw, err := c.runGH(ctx, args)
	if err != nil {
		return fmt.Errorf("gh api graphql failed: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode github graphql response: %w", err)
	}
	return nil
}

func (c *Client) runGH(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "gh", args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if c.logger != nil {
		cmd.Stderr = logging.NewWriter(c.logger, "gh stderr")
	} else {
		cmd.Stderr = os.Stderr
	}

	env := os.Environ()
	if c.token != "" {
		env = append(env, "GITHUB_TOKEN="+c.token, "GH_TOKEN="+c.token)
	}
	cmd.Env = env

	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}
