package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// FileName is the config file looked up at the repository top level.
const FileName = ".shipit.toml"

// Config captures the user editable settings stored in .shipit.toml.
type Config struct {
	Publish   PublishBlock   `toml:"publish"`
	Workspace WorkspaceBlock `toml:"workspace"`
}

// PublishBlock describes how the package manager's publish operation
// is invoked inside the exported tree.
type PublishBlock struct {
	Command    string `toml:"command"`
	AllowDirty bool   `toml:"allow_dirty"`
}

// WorkspaceBlock governs where the per-run export directory lives.
type WorkspaceBlock struct {
	TempRoot string `toml:"temp_root"`
}

var (
	// ErrEmptyCommand indicates publish.command resolved to nothing.
	ErrEmptyCommand = errors.New("config.publish.command must not be empty")
)

// DefaultPublishCommand publishes a crate, the ecosystem this workflow
// originally served. Override it per repository in .shipit.toml.
const DefaultPublishCommand = "cargo publish"

// Default returns a baseline configuration.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Publish.Command) == "" {
		c.Publish.Command = DefaultPublishCommand
	}
}

// Validate ensures the configuration can drive a publish run.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Publish.Command) == "" {
		return ErrEmptyCommand
	}
	if c.Workspace.TempRoot != "" && !filepath.IsAbs(c.Workspace.TempRoot) {
		return fmt.Errorf("config.workspace.temp_root must be an absolute path, got %q", c.Workspace.TempRoot)
	}
	return nil
}

// Load reads configuration from disk. Missing files return a default config.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes configuration to disk.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// SplitCommand breaks a configured command line into an argv using
// whitespace separation with single/double quoting. No other shell
// features are supported; the command never passes through a shell.
func SplitCommand(command string) ([]string, error) {
	var argv []string
	var cur strings.Builder
	var quote rune
	pending := false
	for _, r := range command {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			pending = true
		case r == ' ' || r == '\t':
			if pending || cur.Len() > 0 {
				argv = append(argv, cur.String())
				cur.Reset()
				pending = false
			}
		default:
			cur.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote in %q", quote, command)
	}
	if pending || cur.Len() > 0 {
		argv = append(argv, cur.String())
	}
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}
	return argv, nil
}
