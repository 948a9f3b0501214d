package compact

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/llmctx/gitctx/internal/record"
)

// noPullRequest is the pr field value for commits without an associated PR.
const noPullRequest = "none"

// EncodeCommit renders a commit as one compact line. Only the SHA, the first
// line of the description and the PR reference survive; author, phase and
// file lists are deliberately dropped to keep the line short.
func EncodeCommit(c record.Commit) string {
	title, _, _ := strings.Cut(c.Description, "\n")

	pr := noPullRequest
	if c.PR != nil {
		pr = fmt.Sprintf("%s/%s#%d", c.PR.Owner, c.PR.Repo, c.PR.Number)
	}

	return joinFields(
		"sha:"+c.SHA,
		"title:"+escapeValue(title),
		"pr:"+pr,
	)
}

// ParseCommit decodes one compact commit line. The title becomes the whole
// description; fields the encoding dropped stay zero. A malformed pr field
// is treated as "no pull request" rather than an error.
func ParseCommit(line string) record.Commit {
	fields := fieldMap(line)
	return record.Commit{
		SHA:         fields["sha"],
		Description: unescapeValue(fields["title"]),
		PR:          parsePullRequestRef(fields["pr"]),
	}
}

// parsePullRequestRef parses an `owner/repo#number` value, returning nil for
// "none" or anything that does not match that shape.
func parsePullRequestRef(v string) *record.PullRequestRef {
	if v == "" || v == noPullRequest {
		return nil
	}
	slug, numberPart, ok := strings.Cut(v, "#")
	if !ok {
		return nil
	}
	owner, repo, ok := strings.Cut(slug, "/")
	if !ok {
		return nil
	}
	number, err := strconv.Atoi(numberPart)
	if err != nil {
		return nil
	}
	return &record.PullRequestRef{Owner: owner, Repo: repo, Number: number}
}

// EncodeCommits encodes commits in order, one line per commit.
func EncodeCommits(commits []record.Commit) string {
	lines := make([]string, 0, len(commits))
	for _, c := range commits {
		lines = append(lines, EncodeCommit(c))
	}
	return joinLines(lines)
}

// ParseCommits decodes a newline-joined commit payload, preserving line
// order and skipping blank lines.
func ParseCommits(payload string) []record.Commit {
	lines := splitLines(payload)
	commits := make([]record.Commit, 0, len(lines))
	for _, line := range lines {
		commits = append(commits, ParseCommit(line))
	}
	return commits
}
