package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/llmctx/gitctx/internal/compact"
)

// newDecodeCommand creates the "decode" group, which turns compact payloads
// back into JSON records for inspection and debugging.
func newDecodeCommand(opts *Options) *cobra.Command {
	return newGroupCommand(
		"decode",
		"Decode compact payloads back into JSON records",
		newDecodeCommitsCommand(opts),
		newDecodeCommentsCommand(opts),
	)
}

func newDecodeCommitsCommand(opts *Options) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "commits",
		Short: "Decode a compact commit payload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := readPayload(cmd, input)
			if err != nil {
				return err
			}
			commits := compact.ParseCommits(payload)
			LoggerFromContext(cmd.Context()).Debug("decoded commits", "count", len(commits))
			return writeJSON(cmd.OutOrStdout(), commits)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Read the payload from a file instead of stdin")
	return cmd
}

func newDecodeCommentsCommand(opts *Options) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Decode a compact PR-comment payload",
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := readPayload(cmd, input)
			if err != nil {
				return err
			}
			comments, err := compact.ParsePullRequestComments(payload)
			if err != nil {
				return fmt.Errorf("unable to parse payload: %w", err)
			}
			LoggerFromContext(cmd.Context()).Debug("decoded comments", "count", len(comments))
			return writeJSON(cmd.OutOrStdout(), comments)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Read the payload from a file instead of stdin")
	return cmd
}

// readPayload reads the compact payload from a file or from stdin.
func readPayload(cmd *cobra.Command, path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read payload %q: %w", path, err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read payload from stdin: %w", err)
	}
	return string(data), nil
}

// writeJSON renders records as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
