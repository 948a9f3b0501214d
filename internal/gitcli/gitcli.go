// Package gitcli queries commit history by shelling out to the git CLI.
package gitcli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/llmctx/gitctx/internal/logging"
	"github.com/llmctx/gitctx/internal/record"
)

// Field and record separators for git log output. Control characters cannot
// appear in commit messages, so splitting on them is unambiguous.
const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// Runner executes git commands against one repository working copy.
type Runner struct {
	logger   *slog.Logger
	repoPath string
}

// NewRunner constructs a Runner for the repository at repoPath.
func NewRunner(logger *slog.Logger, repoPath string) *Runner {
	return &Runner{logger: logger, repoPath: repoPath}
}

// QueryCommits returns the commits selected by revisionRange in git log
// order (newest first), with file lists populated from each commit's
// diff-tree. The phase tag and PR reference are caller context and are
// attached to every returned commit.
func (r *Runner) QueryCommits(ctx context.Context, revisionRange, phase string, pr *record.PullRequestRef) ([]record.Commit, error) {
	format := "%H" + fieldSep + "%an" + fieldSep + "%B" + recordSep
	out, err := r.run(ctx, "log", "--format="+format, revisionRange)
	if err != nil {
		return nil, fmt.Errorf("git log %q: %w", revisionRange, err)
	}

	var commits []record.Commit
	for _, chunk := range strings.Split(out, recordSep) {
		chunk = strings.TrimLeft(chunk, "\n")
		if chunk == "" {
			continue
		}
		parts := strings.SplitN(chunk, fieldSep, 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("unexpected git log record: %q", chunk)
		}

		c := record.Commit{
			SHA:         parts[0],
			Author:      parts[1],
			Description: strings.TrimRight(parts[2], "\n"),
			Phase:       phase,
			PR:          pr,
		}
		if err := r.fillFiles(ctx, &c); err != nil {
			return nil, err
		}
		commits = append(commits, c)
	}
	return commits, nil
}

// fillFiles populates the added/removed/modified path lists for one commit.
func (r *Runner) fillFiles(ctx context.Context, c *record.Commit) error {
	out, err := r.run(ctx, "diff-tree", "--no-commit-id", "--name-status", "-r", "--root", c.SHA)
	if err != nil {
		return fmt.Errorf("git diff-tree %s: %w", c.SHA, err)
	}

	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}
		status, path := fields[0], fields[len(fields)-1]
		switch status[0] {
		case 'A':
			c.Added = append(c.Added, path)
		case 'D':
			c.Removed = append(c.Removed, path)
		default:
			// M, R, C, T all leave the target path modified.
			c.Modified = append(c.Modified, path)
		}
	}
	return nil
}

// run executes a git subcommand in the repository and returns its stdout.
func (r *Runner) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.repoPath

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if r.logger != nil {
		cmd.Stderr = logging.NewWriter(r.logger, "git stderr")
		r.logger.Debug("running git", "args", args, "dir", r.repoPath)
	} else {
		cmd.Stderr = os.Stderr
	}

	if err := cmd.Run(); err != nil {
		return "", err
	}
	return stdout.String(), nil
}
