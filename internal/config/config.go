// Package config contains the loader and strongly typed model for gitctx configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/llmctx/gitctx/internal/env"
)

// Config is the merged gitctx configuration: user-level defaults overlaid by
// the project file, overlaid by GITCTX_* environment variables (applied by
// the CLI layer).
type Config struct {
	// Repository is the owner/repo slug queries run against.
	Repository string `yaml:"repository,omitempty"`
	// RepoPath is the local working copy used for git queries.
	// Defaults to the current directory.
	RepoPath string `yaml:"repoPath,omitempty"`
	// Phase is the default workflow phase tag attached to queried commits.
	Phase string `yaml:"phase,omitempty"`
	// EnvFiles lists .env files loaded before resolving the GitHub token.
	EnvFiles []string `yaml:"envFiles,omitempty"`
	// Fetch tunes GitHub paging.
	Fetch FetchConfig `yaml:"fetch,omitempty"`

	// Vars is the merged process + env-file variable set, populated by Load.
	Vars env.Vars `yaml:"-"`
}

// FetchConfig tunes how much PR data is pulled per query.
type FetchConfig struct {
	// PageSize is the GraphQL page size (1..100).
	PageSize int `yaml:"pageSize,omitempty"`
	// MaxPages caps pages fetched per connection; 0 means unlimited.
	MaxPages int `yaml:"maxPages,omitempty"`
}

// Load reads the project configuration file at path, layered on top of the
// user-level defaults, and loads any configured env files. A missing project
// file is not an error: user defaults and the process environment still apply.
func Load(path string) (*Config, error) {
	cfg := &Config{RepoPath: "."}

	if user, err := LoadUser(); err != nil {
		return nil, err
	} else if user != nil {
		user.apply(cfg)
	}

	baseDir := "."
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %q: %w", path, err)
		}
		baseDir = filepath.Dir(path)
	case errors.Is(err, os.ErrNotExist):
		// Optional file.
	default:
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	fileVars, err := env.LoadEnvFiles(baseDir, cfg.EnvFiles)
	if err != nil {
		return nil, err
	}
	cfg.Vars = env.Merge(env.FromOS(), fileVars)

	if cfg.RepoPath == "" {
		cfg.RepoPath = "."
	}
	return cfg, nil
}

// Token resolves the GitHub token from the merged variable set.
func (c *Config) Token() string {
	return c.Vars.Lookup("GITHUB_TOKEN", "GH_TOKEN")
}

// ResolveRepository returns the configured repository slug, falling back to
// GITHUB_REPOSITORY the way CI environments provide it.
func (c *Config) ResolveRepository() string {
	if strings.TrimSpace(c.Repository) != "" {
		return strings.TrimSpace(c.Repository)
	}
	return c.Vars.Lookup("GITHUB_REPOSITORY")
}
