package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llmctx/gitctx/internal/compact"
	"github.com/llmctx/gitctx/internal/gitcli"
	"github.com/llmctx/gitctx/internal/record"
)

// newCommitsCommand creates "commits", which queries a revision range and
// prints the compact commit payload.
func newCommitsCommand(opts *Options) *cobra.Command {
	var (
		phase string
		prRef string
	)

	cmd := &cobra.Command{
		Use:   "commits <revision-range>",
		Short: "Encode commits from a revision range as compact lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			var vals commitsEnv
			if err := parseEnv(&vals); err != nil {
				return err
			}
			if phase == "" {
				phase = vals.Phase
			}
			if phase == "" {
				phase = cfg.Phase
			}
			if prRef == "" {
				prRef = vals.PR
			}

			pr, err := parsePRRef(cfg.ResolveRepository(), prRef)
			if err != nil {
				return err
			}

			runner := gitcli.NewRunner(logger, cfg.RepoPath)
			commits, err := runner.QueryCommits(cmd.Context(), args[0], phase, pr)
			if err != nil {
				return err
			}

			logger.Debug("encoding commits", "count", len(commits), "range", args[0])
			return emitPayload(cmd, "commits", compact.EncodeCommits(commits))
		},
	}

	cmd.Flags().StringVar(&phase, "phase", "", "Workflow phase tag attached to each commit")
	cmd.Flags().StringVar(&prRef, "pr", "", "Associated pull request (owner/repo#number, or a bare number with --repo)")

	return cmd
}

// parsePRRef parses the --pr flag value. A bare number is resolved against
// the configured repository slug; empty input means no pull request.
func parsePRRef(repo, value string) (*record.PullRequestRef, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	slug := repo
	numberPart := value
	if s, n, ok := strings.Cut(value, "#"); ok {
		slug, numberPart = s, n
	}

	number, err := strconv.Atoi(numberPart)
	if err != nil {
		return nil, fmt.Errorf("invalid pull request reference %q: %w", value, err)
	}
	owner, name, ok := strings.Cut(slug, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("invalid pull request reference %q: missing owner/repo", value)
	}
	return &record.PullRequestRef{Owner: owner, Repo: name, Number: number}, nil
}
