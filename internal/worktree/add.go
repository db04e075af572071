package worktree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wtw/internal/apperror"
	"wtw/internal/git"
	"wtw/internal/hooks"
	"wtw/internal/models"
	"wtw/internal/pathutil"
	"wtw/internal/ui"
)

// AddSpec is a fully validated `git worktree add` invocation.
type AddSpec struct {
	Path        string
	Branch      string
	Commitish   string
	Track       bool
	DisplayName string
}

// Args returns the git arguments that create the worktree.
func (s AddSpec) Args() []string {
	args := []string{"worktree", "add"}
	if s.Track {
		args = append(args, "--track")
	}
	if s.Branch != "" {
		args = append(args, "-b", s.Branch)
	}
	args = append(args, s.Path)
	if s.Commitish != "" {
		args = append(args, s.Commitish)
	}
	return args
}

// BuildSpec derives the path, branch and start point of a new worktree under
// baseDir and checks it against the existing inventory. Exactly one input
// shape is accepted: --track (branch inferred from REMOTE/BRANCH unless
// given), --branch with an optional start point, or a bare commit-ish.
func BuildSpec(baseDir string, opts models.AddOptions, existing []models.Worktree) (AddSpec, error) {
	branchFlag := strings.TrimSpace(opts.Branch)
	trackFlag := strings.TrimSpace(opts.Track)
	target := strings.TrimSpace(opts.Target)

	var spec AddSpec
	switch {
	case trackFlag != "":
		branch := branchFlag
		if branch == "" {
			branch = inferBranchFromTrack(trackFlag)
		}
		if branch == "" {
			return AddSpec{}, apperror.User("--track requires a branch name (use --branch or specify remote/branch)")
		}
		spec = AddSpec{Branch: branch, Commitish: trackFlag, Track: true}
	case branchFlag != "":
		spec = AddSpec{Branch: branchFlag, Commitish: target}
	default:
		if target == "" {
			return AddSpec{}, apperror.User("branch or commit is required")
		}
		spec = AddSpec{Commitish: target}
	}

	identifier := spec.Branch
	if identifier == "" {
		identifier = spec.Commitish
	}

	relative := BranchToRelativePath(identifier)
	if relative == "" {
		return AddSpec{}, apperror.Userf("worktree name resolves to an empty path: %s", identifier)
	}
	spec.Path = filepath.Join(baseDir, relative)
	spec.DisplayName = identifier

	if err := detectConflicts(spec.Path, spec.Branch, existing); err != nil {
		return AddSpec{}, err
	}
	return spec, nil
}

// inferBranchFromTrack returns everything after the first "/" of a
// REMOTE/BRANCH reference, or "" when there is none.
func inferBranchFromTrack(track string) string {
	_, branch, ok := strings.Cut(track, "/")
	if !ok {
		return ""
	}
	return branch
}

// BranchToRelativePath turns a branch or commit-ish into a path relative to
// the base directory. Each "/" or "\" separated segment is sanitized on its
// own: characters invalid in file names become "_", and empty, "." and ".."
// segments become "_".
func BranchToRelativePath(name string) string {
	segments := strings.Split(strings.ReplaceAll(name, `\`, "/"), "/")

	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		if sanitized := sanitizeSegment(segment); sanitized != "" {
			parts = append(parts, sanitized)
		}
	}
	return filepath.Join(parts...)
}

var invalidNameChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_", "|", "_", "?", "_", "*", "_", `\`, "_",
)

func sanitizeSegment(segment string) string {
	if segment == "" || segment == "." || segment == ".." {
		return "_"
	}
	return invalidNameChars.Replace(segment)
}

func detectConflicts(path, branch string, existing []models.Worktree) error {
	if branch != "" {
		for _, wt := range existing {
			if wt.HasBranch() && wt.Branch == branch {
				return apperror.Userf("worktree for branch '%s' already exists: %s", branch, wt.Path)
			}
		}
	}

	for _, wt := range existing {
		if pathutil.Equal(wt.Path, path) {
			return apperror.Userf("worktree path already exists in git metadata: %s", path)
		}
	}

	if _, err := os.Lstat(path); err == nil {
		return apperror.Userf("destination path already exists: %s", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return apperror.Wrap(apperror.KindInternal, fmt.Sprintf("failed to inspect %s", path), err)
	}
	return nil
}

// Add creates a worktree and runs the post-create hooks against it. A hook
// failure is returned as is; the worktree itself is left in place.
func (m *Manager) Add(opts models.AddOptions) error {
	existing, err := m.inventory()
	if err != nil {
		return err
	}

	spec, err := BuildSpec(m.baseDir(), opts, existing)
	if err != nil {
		return err
	}

	parent := filepath.Dir(spec.Path)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return apperror.Wrap(apperror.KindInternal, fmt.Sprintf("failed to create directory %s", parent), err)
	}

	if _, err := m.Git.Run(m.Repo.WorktreeRoot, spec.Args()...); err != nil {
		return git.BackendError(err, "git worktree add failed without error output")
	}

	fmt.Fprintln(m.Out, ui.Success(fmt.Sprintf("Created worktree '%s' at %s", spec.DisplayName, pathutil.Normalize(spec.Path))))

	executor := hooks.NewExecutor(m.Config.Hooks.PostCreate, m.Repo.MainRoot, m.Out)
	return executor.Execute(spec.Path)
}
