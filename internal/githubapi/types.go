// Package githubapi provides minimal GitHub API models for GraphQL responses.
package githubapi

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

type prCommentsResponse struct {
	Data struct {
		Repository struct {
			PullRequest struct {
				Comments struct {
					Nodes    []commentNode `json:"nodes"`
					PageInfo pageInfo      `json:"pageInfo"`
				} `json:"comments"`
			} `json:"pullRequest"`
		} `json:"repository"`
	} `json:"data"`
}

type commentNode struct {
	Body            string `json:"body"`
	URL             string `json:"url"`
	CreatedAt       string `json:"createdAt"`
	IsMinimized     bool   `json:"isMinimized"`
	MinimizedReason string `json:"minimizedReason"`
}

type reviewThreadsResponse struct {
	Data struct {
		Repository struct {
			PullRequest struct {
				ReviewThreads struct {
					Nodes    []reviewThreadNode `json:"nodes"`
					PageInfo pageInfo           `json:"pageInfo"`
				} `json:"reviewThreads"`
			} `json:"pullRequest"`
		} `json:"repository"`
	} `json:"data"`
}

type reviewThreadNode struct {
	IsResolved bool `json:"isResolved"`
	Comments   struct {
		Nodes []reviewCommentNode `json:"nodes"`
	} `json:"comments"`
}

type reviewCommentNode struct {
	DatabaseID int    `json:"databaseId"`
	Body       string `json:"body"`
	DiffHunk   string `json:"diffHunk"`
	CreatedAt  string `json:"createdAt"`
	Author     struct {
		Login string `json:"login"`
	} `json:"author"`
}

// checkRollupResponse models `gh pr view --json statusCheckRollup`, whose
// entries mix CheckRun (name/status/conclusion) and StatusContext
// (context/state) shapes.
type checkRollupResponse struct {
	StatusCheckRollup []checkRollupNode `json:"statusCheckRollup"`
}

type checkRollupNode struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion"`
	Context    string `json:"context"`
	State      string `json:"state"`
}
