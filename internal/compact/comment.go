package compact

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/llmctx/gitctx/internal/record"
)

// unknownAuthor is emitted for PR-level comments, which carry no author in
// this path.
const unknownAuthor = "unknown"

// EncodePullRequestComment renders a PR-level comment as one compact line.
// The pr field is built from the caller-supplied repo path and number, not
// from the comment itself; the comment id is the last path segment of its
// source URL.
func EncodePullRequestComment(repoPath string, number int, c record.PullRequestComment) string {
	return joinFields(
		fmt.Sprintf("pr:%s#%d", repoPath, number),
		"author:"+unknownAuthor,
		"date:"+c.CreatedAt,
		"id:"+lastURLSegment(c.URL),
		"body:"+escapeValue(c.Body),
	)
}

// ParsePullRequestComment decodes one compact PR-comment line, returning the
// comment together with the repo path and PR number recovered from the pr
// field. The comment URL is reconstructed so that its last path segment is
// the original comment id. This is the one decode path with a hard failure:
// a pr field without a parseable number is an error.
func ParsePullRequestComment(line string) (record.PullRequestComment, string, int, error) {
	fields := fieldMap(line)

	repoPath, numberPart, _ := strings.Cut(fields["pr"], "#")
	number, err := strconv.Atoi(numberPart)
	if err != nil {
		return record.PullRequestComment{}, "", 0, fmt.Errorf("parse pr number from %q: %w", fields["pr"], err)
	}

	c := record.PullRequestComment{
		Body:      unescapeValue(fields["body"]),
		CreatedAt: fields["date"],
		URL:       fmt.Sprintf("https://github.com/%s/pull/%d/%s", repoPath, number, fields["id"]),
	}
	return c, repoPath, number, nil
}

// EncodePullRequestComments encodes comments in order, one line each, all
// scoped to the same pull request.
func EncodePullRequestComments(repoPath string, number int, comments []record.PullRequestComment) string {
	lines := make([]string, 0, len(comments))
	for _, c := range comments {
		lines = append(lines, EncodePullRequestComment(repoPath, number, c))
	}
	return joinLines(lines)
}

// ParsePullRequestComments decodes a newline-joined comment payload in line
// order. The first malformed line aborts the whole batch.
func ParsePullRequestComments(payload string) ([]record.PullRequestComment, error) {
	lines := splitLines(payload)
	comments := make([]record.PullRequestComment, 0, len(lines))
	for _, line := range lines {
		c, _, _, err := ParsePullRequestComment(line)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}

// lastURLSegment returns the text after the final slash, or the whole input
// when it contains none.
func lastURLSegment(url string) string {
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}
