package compact

import (
	"fmt"
	"strconv"

	"github.com/llmctx/gitctx/internal/record"
)

// EncodeReviewThread renders a review thread as one compact line. The line
// carries the resolved flag and the total comment count, but only the first
// comment's author, date, body and diff hunk; the remaining comments are
// summarized by the count alone. An empty thread omits the four per-comment
// keys entirely.
func EncodeReviewThread(repoPath string, number int, t record.ReviewThread) string {
	pairs := []string{
		fmt.Sprintf("pr:%s#%d", repoPath, number),
		"resolved:" + strconv.FormatBool(t.Resolved),
		"comments:" + strconv.Itoa(len(t.Comments)),
	}
	if len(t.Comments) > 0 {
		first := t.Comments[0]
		pairs = append(pairs,
			"author:"+first.Author,
			"date:"+first.CreatedAt,
			"body:"+escapeValue(first.Body),
			"diffHunk:"+escapeValue(first.DiffHunk),
		)
	}
	return joinFields(pairs...)
}

// ParseReviewThread decodes one compact thread line. Only the first comment
// is recoverable; the original count is not reconstructed beyond it. Used
// for symmetry checks rather than by the fetch path, which never decodes
// threads.
func ParseReviewThread(line string) record.ReviewThread {
	fields := fieldMap(line)
	t := record.ReviewThread{
		Resolved: fields["resolved"] == "true",
	}
	if _, ok := fields["author"]; ok {
		t.Comments = []record.ThreadComment{{
			Author:    fields["author"],
			CreatedAt: fields["date"],
			Body:      unescapeValue(fields["body"]),
			DiffHunk:  unescapeValue(fields["diffHunk"]),
		}}
	}
	return t
}

// EncodeReviewThreads encodes threads in order, one line per thread.
func EncodeReviewThreads(repoPath string, number int, threads []record.ReviewThread) string {
	lines := make([]string, 0, len(threads))
	for _, t := range threads {
		lines = append(lines, EncodeReviewThread(repoPath, number, t))
	}
	return joinLines(lines)
}

// EncodeReviewComment renders a standalone review comment as one compact
// line. Unlike thread lines it carries no diff excerpt.
func EncodeReviewComment(c record.ReviewComment) string {
	return joinFields(
		"id:"+c.ID,
		"author:"+c.Author,
		"date:"+c.CreatedAt,
		"body:"+escapeValue(c.Body),
	)
}

// ParseReviewComment decodes one compact review-comment line.
func ParseReviewComment(line string) record.ReviewComment {
	fields := fieldMap(line)
	return record.ReviewComment{
		ID:        fields["id"],
		Author:    fields["author"],
		CreatedAt: fields["date"],
		Body:      unescapeValue(fields["body"]),
	}
}

// EncodeReviewComments encodes standalone review comments in order.
func EncodeReviewComments(comments []record.ReviewComment) string {
	lines := make([]string, 0, len(comments))
	for _, c := range comments {
		lines = append(lines, EncodeReviewComment(c))
	}
	return joinLines(lines)
}
