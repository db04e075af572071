// Package hooks runs the post-create actions declared in configuration
// against a freshly created worktree.
package hooks

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"wtw/internal/apperror"
	"wtw/internal/config"
	"wtw/internal/pathutil"
	"wtw/internal/ui"
)

// Variables injected into every command hook.
const (
	EnvWorktreePath     = "GIT_WTP_WORKTREE_PATH"
	EnvRepoRoot         = "GIT_WTP_REPO_ROOT"
	envShellIntegration = "WTP_SHELL_INTEGRATION"
)

type Executor struct {
	hooks    []config.Hook
	repoRoot string
	out      io.Writer
}

// NewExecutor returns an executor for hooks. Relative copy sources resolve
// against repoRoot; progress and command output go to out.
func NewExecutor(hooks []config.Hook, repoRoot string, out io.Writer) *Executor {
	return &Executor{hooks: hooks, repoRoot: repoRoot, out: out}
}

// Execute runs every hook in order against worktreePath and stops at the
// first failure. Effects of hooks that already ran are kept.
func (e *Executor) Execute(worktreePath string) error {
	if len(e.hooks) == 0 {
		return nil
	}

	fmt.Fprintln(e.out, "\nExecuting post-create hooks...")
	for i, hook := range e.hooks {
		fmt.Fprintln(e.out, "\n"+ui.Step(fmt.Sprintf("Running hook %d of %d...", i+1, len(e.hooks))))
		slog.Debug("running hook", "index", i+1, "type", hook.Type, "worktree", worktreePath)

		var err error
		switch hook.Type {
		case config.HookCopy:
			err = e.runCopy(hook, worktreePath)
		case config.HookCommand:
			err = e.runCommand(hook, worktreePath)
		default:
			err = fmt.Errorf("unknown hook type %q", hook.Type)
		}
		if err != nil {
			return apperror.Wrap(apperror.KindGit, fmt.Sprintf("post-create hook %d (%s) failed", i+1, describe(hook)), err)
		}

		fmt.Fprintln(e.out, ui.Success(fmt.Sprintf("Hook %d completed", i+1)))
	}
	fmt.Fprintln(e.out, ui.Success("All hooks executed successfully"))
	return nil
}

func (e *Executor) runCopy(hook config.Hook, worktreePath string) error {
	src := resolve(e.repoRoot, hook.From)
	dst := resolve(worktreePath, hook.To)

	info, err := os.Stat(src)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("source path for copy hook does not exist: %s", src)
	}
	if err != nil {
		return fmt.Errorf("failed to inspect copy source %s: %w", src, err)
	}
	if err := checkCopyTarget(src, dst, info); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory %s: %w", filepath.Dir(dst), err)
	}

	fmt.Fprintf(e.out, "  Copying: %s → %s\n", relativeTo(e.repoRoot, src), relativeTo(worktreePath, dst))
	if info.IsDir() {
		return copyDir(src, dst)
	}
	return copyFile(src, dst, info.Mode().Perm())
}

// checkCopyTarget refuses copies that would read from what they write:
// the same file, or a directory copied into itself.
func checkCopyTarget(src, dst string, srcInfo os.FileInfo) error {
	if pathutil.Equal(src, dst) {
		return fmt.Errorf("copy source and destination are the same path: %s", src)
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
		return fmt.Errorf("copy source and destination are the same file: %s and %s", src, dst)
	}
	if srcInfo.IsDir() && pathutil.Within(dst, src) {
		return fmt.Errorf("copy destination %s is inside source directory %s", dst, src)
	}
	return nil
}

func (e *Executor) runCommand(hook config.Hook, worktreePath string) error {
	fmt.Fprintf(e.out, "  Running: %s\n", hook.Command)

	cmd := shellCommand(hook.Command)
	cmd.Dir = worktreePath
	if hook.WorkDir != "" {
		cmd.Dir = resolve(worktreePath, hook.WorkDir)
	}
	cmd.Env = commandEnv(os.Environ(), hook.Env, worktreePath, e.repoRoot)
	// A single shared writer keeps stdout and stderr in production order.
	cmd.Stdout = e.out
	cmd.Stderr = e.out

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("command exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to execute hook command %q in %s: %w", hook.Command, cmd.Dir, err)
	}
	return nil
}

// commandEnv overlays declared variables on base and injects the worktree
// and repository locations.
func commandEnv(base []string, declared map[string]string, worktreePath, repoRoot string) []string {
	drop := map[string]bool{
		envShellIntegration: true,
		EnvWorktreePath:     true,
		EnvRepoRoot:         true,
	}
	for k := range declared {
		drop[k] = true
	}

	env := make([]string, 0, len(base)+len(declared)+2)
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if drop[key] {
			continue
		}
		env = append(env, kv)
	}

	keys := make([]string, 0, len(declared))
	for k := range declared {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+declared[k])
	}

	return append(env,
		EnvWorktreePath+"="+worktreePath,
		EnvRepoRoot+"="+repoRoot,
	)
}

func describe(hook config.Hook) string {
	switch hook.Type {
	case config.HookCopy:
		return fmt.Sprintf("copy %s → %s", hook.From, hook.To)
	case config.HookCommand:
		return fmt.Sprintf("command '%s'", hook.Command)
	default:
		return string(hook.Type)
	}
}

func resolve(root, path string) string {
	path = filepath.FromSlash(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func relativeTo(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
