package git

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"

	"wtw/internal/apperror"
	"wtw/internal/pathutil"
)

// RepoContext locates the checkout a command runs from and the primary
// checkout it belongs to. It is built once per invocation.
type RepoContext struct {
	WorktreeRoot string
	MainRoot     string
	RepoName     string
}

// IsMainWorktree reports whether the command runs from the primary checkout.
func (c RepoContext) IsMainWorktree() bool {
	return pathutil.Equal(c.WorktreeRoot, c.MainRoot)
}

// Discover builds a RepoContext for explicit, or for the current directory
// when explicit is empty. The checkout is opened with go-git; if that fails
// (unsupported repository format, bare repository) git rev-parse is asked
// through r instead.
func Discover(r Runner, explicit string) (RepoContext, error) {
	start, err := startDir(explicit)
	if err != nil {
		return RepoContext{}, err
	}

	root, commonDir, err := openCheckout(start)
	if err != nil {
		slog.Debug("go-git discovery failed, falling back to rev-parse", "dir", start, "error", err)
		root, commonDir, err = revParse(r, start)
		if err != nil {
			return RepoContext{}, err
		}
	}

	mainRoot, err := resolveMainRoot(root, commonDir)
	if err != nil {
		return RepoContext{}, err
	}

	ctx := RepoContext{
		WorktreeRoot: pathutil.Normalize(root),
		MainRoot:     mainRoot,
		RepoName:     filepath.Base(mainRoot),
	}
	slog.Debug("discovered repository",
		"worktree_root", ctx.WorktreeRoot,
		"main_root", ctx.MainRoot,
		"repo_name", ctx.RepoName)
	return ctx, nil
}

func startDir(explicit string) (string, error) {
	if explicit == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(explicit)
	if err != nil {
		return "", fmt.Errorf("failed to resolve --repo path %s: %w", explicit, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", apperror.Userf("--repo path not found: %s", abs)
	}
	if !info.IsDir() {
		return filepath.Dir(abs), nil
	}
	return abs, nil
}

func openCheckout(start string) (root, commonDir string, err error) {
	repo, err := gogit.PlainOpenWithOptions(start, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return "", "", err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", "", err
	}
	root = wt.Filesystem.Root()

	commonDir, err = commonDirFor(root)
	if err != nil {
		return "", "", err
	}
	return root, commonDir, nil
}

// commonDirFor reads the .git entry of a checkout. The primary checkout has
// a .git directory; linked worktrees have a "gitdir:" file whose target
// holds a commondir file pointing back at the shared repository.
func commonDirFor(root string) (string, error) {
	dotGit := filepath.Join(root, ".git")
	info, err := os.Stat(dotGit)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return dotGit, nil
	}

	content, err := os.ReadFile(dotGit)
	if err != nil {
		return "", err
	}
	line := strings.TrimSpace(string(content))
	gitDir, ok := strings.CutPrefix(line, "gitdir: ")
	if !ok {
		return "", fmt.Errorf("unrecognized .git file in %s", root)
	}
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(root, gitDir)
	}

	common, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	if os.IsNotExist(err) {
		return gitDir, nil
	}
	if err != nil {
		return "", err
	}
	commonDir := strings.TrimSpace(string(common))
	if !filepath.IsAbs(commonDir) {
		commonDir = filepath.Join(gitDir, commonDir)
	}
	return filepath.Clean(commonDir), nil
}

func revParse(r Runner, start string) (root, commonDir string, err error) {
	out, err := r.Run(start, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", "", BackendError(err, fmt.Sprintf("failed to determine git worktree root from %s", start))
	}
	root = strings.TrimSpace(out)
	if root == "" {
		return "", "", apperror.Git("git rev-parse returned an empty path")
	}
	root = filepath.FromSlash(root)

	out, err = r.Run(root, "rev-parse", "--git-common-dir")
	if err != nil {
		return "", "", BackendError(err, fmt.Sprintf("failed to determine git common directory from %s", root))
	}
	commonDir = filepath.FromSlash(strings.TrimSpace(out))
	if commonDir == "" {
		return "", "", apperror.Git("git rev-parse returned an empty path")
	}
	return root, commonDir, nil
}

func resolveMainRoot(root, commonDir string) (string, error) {
	if !filepath.IsAbs(commonDir) {
		commonDir = filepath.Join(root, commonDir)
	}
	canonical := pathutil.Normalize(commonDir)
	if filepath.Base(canonical) != ".git" {
		return canonical, nil
	}
	parent := filepath.Dir(canonical)
	if parent == canonical {
		return "", fmt.Errorf("git common dir has no parent: %s", canonical)
	}
	return parent, nil
}
