package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"wtw/internal/apperror"
)

const starterTemplate = `version: "%s"

defaults:
  # Where new worktrees are created. Relative paths start at the repository root.
  base_dir: %s

hooks:
  post_create:
  # - type: copy
  #   from: .env
  #   to: .env
  # - type: command
  #   command: npm ci
  #   env:
  #     NODE_ENV: development
  #   work_dir: .
`

// Starter returns the contents of a freshly initialized configuration file.
func Starter() []byte {
	return []byte(fmt.Sprintf(starterTemplate, DefaultVersion, DefaultBaseDir))
}

// WriteStarter creates FileName under mainRoot with the starter contents.
// An existing file is never overwritten.
func WriteStarter(mainRoot string) (string, error) {
	path := filepath.Join(mainRoot, FileName)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return "", apperror.Userf("configuration file already exists: %s", path)
	}
	if err != nil {
		return "", apperror.Configf("failed to create config file %s: %v", path, err)
	}
	defer f.Close()

	if _, err := f.Write(Starter()); err != nil {
		return "", apperror.Configf("failed to write config file %s: %v", path, err)
	}
	return path, nil
}
