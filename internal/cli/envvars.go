package cli

import (
	envparse "github.com/caarlos0/env/v11"

	"github.com/spf13/cobra"

	"github.com/llmctx/gitctx/internal/config"
)

// baseEnv defines root CLI defaults sourced from GITCTX_* env vars.
type baseEnv struct {
	// ConfigPath is the gitctx.yaml path from GITCTX_CONFIG.
	ConfigPath string `env:"GITCTX_CONFIG"`
	// Repo is the repository slug from GITCTX_REPO.
	Repo string `env:"GITCTX_REPO"`
	// RepoPath is the working copy path from GITCTX_REPO_PATH.
	RepoPath string `env:"GITCTX_REPO_PATH"`
	// LogLevel is the logging level from GITCTX_LOG_LEVEL.
	LogLevel string `env:"GITCTX_LOG_LEVEL"`
}

// prNumberEnv captures the PR number for pr subcommands from GITCTX_PR_NUMBER.
type prNumberEnv struct {
	// PR is the pull request number from GITCTX_PR_NUMBER.
	PR int `env:"GITCTX_PR_NUMBER"`
}

// commitsEnv captures inputs for the commits command.
type commitsEnv struct {
	// Phase is the workflow phase tag from GITCTX_PHASE.
	Phase string `env:"GITCTX_PHASE"`
	// PR is the associated pull request reference from GITCTX_PR.
	PR string `env:"GITCTX_PR"`
}

// parseEnv fills target from GITCTX_* env vars via caarlos0/env.
func parseEnv(target interface{}) error {
	return envparse.Parse(target)
}

// applyEnvDefaults overlays GITCTX_* values onto root flags the user did not set.
func applyEnvDefaults(cmd *cobra.Command, opts *Options) {
	var vals baseEnv
	if err := parseEnv(&vals); err != nil {
		return
	}
	flags := cmd.Flags()
	if vals.ConfigPath != "" && !flags.Changed("config") {
		opts.ConfigPath = vals.ConfigPath
	}
	if vals.Repo != "" && !flags.Changed("repo") {
		opts.Repo = vals.Repo
	}
	if vals.RepoPath != "" && !flags.Changed("repo-path") {
		opts.RepoPath = vals.RepoPath
	}
	if !flags.Changed("log-level") {
		level := vals.LogLevel
		if level == "" {
			if user, err := config.LoadUser(); err == nil && user != nil {
				level = user.LogLevel
			}
		}
		if level != "" {
			_ = flags.Set("log-level", level)
		}
	}
}
