// Package cli defines the command-line interface for gitctx.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/llmctx/gitctx/internal/config"
	"github.com/llmctx/gitctx/internal/logging"
)

const (
	// defaultConfigPath is the default path to the project configuration file.
	defaultConfigPath = "gitctx.yaml"
)

// Options stores global CLI options shared between commands.
type Options struct {
	ConfigPath string
	Repo       string
	RepoPath   string
	LogLevel   logging.Level
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	rootOpts := &Options{
		ConfigPath: defaultConfigPath,
		LogLevel:   logging.LevelInfo,
	}

	rootCmd := newRootCommand(rootOpts, logger)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gitctx",
		Short: "gitctx packs git and pull-request context into compact lines for LLM agents",
		Long: "gitctx queries local git history and GitHub pull-request discussion via the " +
			"git and gh CLIs and encodes the results in a compact, token-efficient line format.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			applyEnvDefaults(cmd, opts)

			level := logging.ParseLevel(cmd.Flag("log-level").Value.String())
			opts.LogLevel = level
			logger = logging.NewLogger(os.Stderr, level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level)
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", defaultConfigPath, "Path to gitctx.yaml configuration file")
	cmd.PersistentFlags().StringVar(&opts.Repo, "repo", "", "GitHub repository slug (owner/repo)")
	cmd.PersistentFlags().StringVar(&opts.RepoPath, "repo-path", "", "Path to the local git working copy")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newCommitsCommand(opts),
		newPRCommand(opts),
		newDecodeCommand(opts),
	)

	return cmd
}

// newGroupCommand builds a cobra.Command that groups subcommands.
func newGroupCommand(use, short string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
	}
	if len(subcommands) > 0 {
		cmd.AddCommand(subcommands...)
	}
	return cmd
}

// loadConfig reads the project configuration and overlays CLI-level options.
func loadConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.Repo != "" {
		cfg.Repository = opts.Repo
	}
	if opts.RepoPath != "" {
		cfg.RepoPath = opts.RepoPath
	}
	return cfg, nil
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
