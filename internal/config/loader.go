package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"wtw/internal/apperror"
)

// Load reads FileName from the main repository root. A missing file yields
// the defaults.
func Load(mainRoot string) (Config, error) {
	path := filepath.Join(mainRoot, FileName)

	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Debug("no config file, using defaults", "path", path)
		return Default(), nil
	}
	if err != nil {
		return Config{}, apperror.Configf("failed to inspect config file %s: %v", path, err)
	}
	if !info.Mode().IsRegular() {
		return Config{}, apperror.Configf("configuration path is not a regular file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, apperror.Configf("failed to read config file %s: %v", path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates configuration data. source names the data in
// error messages.
func Parse(data []byte, source string) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, apperror.Configf("failed to parse config file %s: %v", source, err)
	}

	if err := mergo.Merge(&cfg, Default()); err != nil {
		return Config{}, fmt.Errorf("failed to apply config defaults: %w", err)
	}

	for i, hook := range cfg.Hooks.PostCreate {
		if err := hook.validate(); err != nil {
			return Config{}, apperror.Configf("%s: hooks.post_create[%d]: %v", source, i, err)
		}
	}
	return cfg, nil
}

func (h Hook) validate() error {
	switch h.Type {
	case HookCopy:
		if h.From == "" || h.To == "" {
			return errors.New("copy hook requires 'from' and 'to'")
		}
		if h.Command != "" || len(h.Env) > 0 || h.WorkDir != "" {
			return errors.New("copy hook accepts only 'from' and 'to'")
		}
	case HookCommand:
		if h.Command == "" {
			return errors.New("command hook requires 'command'")
		}
		if h.From != "" || h.To != "" {
			return errors.New("command hook accepts only 'command', 'env' and 'work_dir'")
		}
	case "":
		return errors.New("hook is missing 'type'")
	default:
		return fmt.Errorf("unknown hook type %q", h.Type)
	}
	return nil
}
