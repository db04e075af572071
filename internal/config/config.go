package config

import (
	"path/filepath"

	"wtw/internal/pathutil"
)

const (
	FileName       = ".wtp.yml"
	DefaultVersion = "1.0"
	DefaultBaseDir = "../worktree"
)

type Config struct {
	Version  string   `yaml:"version"`
	Defaults Defaults `yaml:"defaults"`
	Hooks    Hooks    `yaml:"hooks"`
}

type Defaults struct {
	BaseDir string `yaml:"base_dir"`
}

type Hooks struct {
	PostCreate []Hook `yaml:"post_create"`
}

type HookType string

const (
	HookCopy    HookType = "copy"
	HookCommand HookType = "command"
)

// Hook is one post-create action. Copy hooks use From and To; command hooks
// use Command, Env and WorkDir.
type Hook struct {
	Type    HookType          `yaml:"type"`
	From    string            `yaml:"from"`
	To      string            `yaml:"to"`
	Command string            `yaml:"command"`
	Env     map[string]string `yaml:"env"`
	WorkDir string            `yaml:"work_dir"`
}

func Default() Config {
	return Config{
		Version: DefaultVersion,
		Defaults: Defaults{
			BaseDir: DefaultBaseDir,
		},
	}
}

// ResolvedBaseDir returns the normalized absolute directory new worktrees
// are created under. Relative base dirs are taken from mainRoot.
func (c Config) ResolvedBaseDir(mainRoot string) string {
	base := filepath.FromSlash(c.Defaults.BaseDir)
	if !filepath.IsAbs(base) {
		base = filepath.Join(pathutil.Normalize(mainRoot), base)
	}
	return pathutil.Normalize(base)
}
