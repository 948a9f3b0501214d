package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llmctx/gitctx/internal/compact"
	"github.com/llmctx/gitctx/internal/ghoutput"
	"github.com/llmctx/gitctx/internal/githubapi"
)

// newPRCommand creates the "pr" group with subcommands that fetch
// pull-request discussion data and print it in compact form.
func newPRCommand(opts *Options) *cobra.Command {
	return newGroupCommand(
		"pr",
		"Fetch pull-request discussion data as compact lines",
		newPRCommentsCommand(opts),
		newPRThreadsCommand(opts),
		newPRReviewsCommand(opts),
		newPRChecksCommand(opts),
		newPRAllCommand(opts),
	)
}

// prClient builds a GitHub client for the configured repository and resolves
// the target PR number from the flag or GITCTX_PR_NUMBER.
func prClient(cmd *cobra.Command, opts *Options, number int) (*githubapi.Client, int, error) {
	logger := LoggerFromContext(cmd.Context())

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, 0, err
	}

	if number <= 0 {
		var vals prNumberEnv
		if err := parseEnv(&vals); err != nil {
			return nil, 0, err
		}
		number = vals.PR
	}
	if number <= 0 {
		return nil, 0, fmt.Errorf("a positive --pr number is required")
	}

	repo := cfg.ResolveRepository()
	if strings.TrimSpace(repo) == "" {
		return nil, 0, fmt.Errorf("repository is not configured; set --repo, gitctx.yaml or GITHUB_REPOSITORY")
	}

	client, err := githubapi.NewClient(logger, cfg.Token(), repo, githubapi.Options{
		PageSize: cfg.Fetch.PageSize,
		MaxPages: cfg.Fetch.MaxPages,
	})
	if err != nil {
		return nil, 0, err
	}
	return client, number, nil
}

func newPRCommentsCommand(opts *Options) *cobra.Command {
	var number int

	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Encode PR-level comments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, n, err := prClient(cmd, opts, number)
			if err != nil {
				return err
			}
			comments, err := client.FetchPullRequestComments(cmd.Context(), n)
			if err != nil {
				return err
			}
			return emitPayload(cmd, "comments", compact.EncodePullRequestComments(client.Repo(), n, comments))
		},
	}

	cmd.Flags().IntVar(&number, "pr", 0, "Pull request number")
	return cmd
}

func newPRThreadsCommand(opts *Options) *cobra.Command {
	var number int

	cmd := &cobra.Command{
		Use:   "threads",
		Short: "Encode review threads",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, n, err := prClient(cmd, opts, number)
			if err != nil {
				return err
			}
			threads, err := client.FetchReviewThreads(cmd.Context(), n)
			if err != nil {
				return err
			}
			return emitPayload(cmd, "threads", compact.EncodeReviewThreads(client.Repo(), n, threads))
		},
	}

	cmd.Flags().IntVar(&number, "pr", 0, "Pull request number")
	return cmd
}

func newPRReviewsCommand(opts *Options) *cobra.Command {
	var number int

	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Encode standalone review comments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, n, err := prClient(cmd, opts, number)
			if err != nil {
				return err
			}
			reviews, err := client.FetchReviewComments(cmd.Context(), n)
			if err != nil {
				return err
			}
			return emitPayload(cmd, "reviews", compact.EncodeReviewComments(reviews))
		},
	}

	cmd.Flags().IntVar(&number, "pr", 0, "Pull request number")
	return cmd
}

func newPRChecksCommand(opts *Options) *cobra.Command {
	var number int

	cmd := &cobra.Command{
		Use:   "checks",
		Short: "Encode CI check statuses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, n, err := prClient(cmd, opts, number)
			if err != nil {
				return err
			}
			checks, err := client.FetchCheckRuns(cmd.Context(), n)
			if err != nil {
				return err
			}
			return emitPayload(cmd, "checks", compact.EncodeCheckRuns(checks))
		},
	}

	cmd.Flags().IntVar(&number, "pr", 0, "Pull request number")
	return cmd
}

// newPRAllCommand fetches every discussion shape in one pass and prints the
// payloads as labeled sections.
func newPRAllCommand(opts *Options) *cobra.Command {
	var number int

	cmd := &cobra.Command{
		Use:   "all",
		Short: "Encode comments, threads, reviews and checks together",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, n, err := prClient(cmd, opts, number)
			if err != nil {
				return err
			}
			data, err := client.FetchPullRequestData(cmd.Context(), n)
			if err != nil {
				return err
			}

			sections := []struct {
				key     string
				payload string
			}{
				{"comments", compact.EncodePullRequestComments(client.Repo(), n, data.Comments)},
				{"threads", compact.EncodeReviewThreads(client.Repo(), n, data.Threads)},
				{"reviews", compact.EncodeReviewComments(data.Reviews)},
				{"checks", compact.EncodeCheckRuns(data.Checks)},
			}
			outputs := make(map[string]string, len(sections))
			for _, s := range sections {
				fmt.Fprintf(cmd.OutOrStdout(), "## %s\n%s\n", s.key, s.payload)
				outputs[s.key] = s.payload
			}
			return ghoutput.Write(outputs)
		},
	}

	cmd.Flags().IntVar(&number, "pr", 0, "Pull request number")
	return cmd
}
