package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// UserConfig holds user-level defaults from ~/.config/gitctx/config.toml.
// Project configuration overrides every field set here.
type UserConfig struct {
	// Repository is the default owner/repo slug.
	Repository string `toml:"repository"`
	// RepoPath is the default local working copy path.
	RepoPath string `toml:"repo_path"`
	// Phase is the default workflow phase tag.
	Phase string `toml:"phase"`
	// LogLevel is the default log level (debug, info, warn, error).
	LogLevel string `toml:"log_level"`
}

// UserConfigPath returns the user config location, honoring XDG_CONFIG_HOME.
func UserConfigPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "gitctx", "config.toml"), nil
}

// LoadUser reads the user config file, returning nil when absent.
func LoadUser() (*UserConfig, error) {
	path, err := UserConfigPath()
	if err != nil {
		return nil, err
	}
	var user UserConfig
	if _, err := toml.DecodeFile(path, &user); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse user config %q: %w", path, err)
	}
	return &user, nil
}

// apply copies non-empty user defaults onto cfg.
func (u *UserConfig) apply(cfg *Config) {
	if strings.TrimSpace(u.Repository) != "" {
		cfg.Repository = strings.TrimSpace(u.Repository)
	}
	if strings.TrimSpace(u.RepoPath) != "" {
		cfg.RepoPath = strings.TrimSpace(u.RepoPath)
	}
	if strings.TrimSpace(u.Phase) != "" {
		cfg.Phase = strings.TrimSpace(u.Phase)
	}
}
