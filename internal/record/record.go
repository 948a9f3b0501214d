// Package record defines the data model shared between the git/GitHub
// bridges and the compact codec.
package record

// PullRequestRef identifies the pull request a commit belongs to.
// A nil *PullRequestRef means the commit has no associated pull request;
// when present, all three fields are set.
type PullRequestRef struct {
	// Owner is the repository owner login or organization.
	Owner string `json:"owner"`
	// Repo is the repository name.
	Repo string `json:"repo"`
	// Number is the pull request number.
	Number int `json:"number"`
}

// Commit holds metadata about a single commit as returned by the git bridge.
type Commit struct {
	// SHA is the opaque revision identifier.
	SHA string `json:"sha"`
	// Description is the full commit message (subject and body).
	Description string `json:"description"`
	// Author is the commit author name.
	Author string `json:"author,omitempty"`
	// Added lists paths added by the commit.
	Added []string `json:"added,omitempty"`
	// Removed lists paths removed by the commit.
	Removed []string `json:"removed,omitempty"`
	// Modified lists paths modified by the commit.
	Modified []string `json:"modified,omitempty"`
	// Phase is a caller-supplied workflow phase tag.
	Phase string `json:"phase,omitempty"`
	// PR is the associated pull request, or nil if there is none.
	PR *PullRequestRef `json:"pr,omitempty"`
}

// PullRequestComment is a PR-level (issue) comment. The author is not
// carried in this path.
type PullRequestComment struct {
	// Body is the raw markdown body of the comment.
	Body string `json:"body"`
	// CreatedAt is the creation timestamp, opaque to the codec.
	CreatedAt string `json:"createdAt"`
	// URL is the canonical comment URL; its last path segment is the
	// comment identifier.
	URL string `json:"url"`
}

// ThreadComment is a single comment inside a review thread.
type ThreadComment struct {
	// ID is the comment identifier.
	ID string `json:"id"`
	// Author is the GitHub login of the comment author.
	Author string `json:"author"`
	// CreatedAt is the creation timestamp.
	CreatedAt string `json:"createdAt"`
	// Body is the raw markdown body.
	Body string `json:"body"`
	// DiffHunk is the diff excerpt the comment is anchored to.
	DiffHunk string `json:"diffHunk,omitempty"`
}

// ReviewThread is an ordered review conversation on a pull request.
type ReviewThread struct {
	// Resolved reports whether the thread has been marked resolved.
	Resolved bool `json:"resolved"`
	// Comments are the thread comments in chronological order.
	Comments []ThreadComment `json:"comments,omitempty"`
}

// ReviewComment is a standalone review comment without thread context.
type ReviewComment struct {
	// ID is the comment identifier.
	ID string `json:"id"`
	// Author is the GitHub login of the comment author.
	Author string `json:"author"`
	// CreatedAt is the creation timestamp.
	CreatedAt string `json:"createdAt"`
	// Body is the raw markdown body.
	Body string `json:"body"`
}

// CheckRun is the status of one CI check on a pull request head commit.
type CheckRun struct {
	// Name is the check name as reported by the host.
	Name string `json:"name"`
	// Status is the lifecycle state (e.g. COMPLETED, IN_PROGRESS).
	Status string `json:"status"`
	// Conclusion is the terminal result (e.g. SUCCESS, FAILURE), empty
	// while the check is still running.
	Conclusion string `json:"conclusion,omitempty"`
}

// PullRequestData aggregates everything the GitHub bridge fetches for one
// pull request.
type PullRequestData struct {
	Comments []PullRequestComment `json:"comments"`
	Threads  []ReviewThread       `json:"threads"`
	Reviews  []ReviewComment      `json:"reviews"`
	Checks   []CheckRun           `json:"checks"`
}
