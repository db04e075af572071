package worktree

import (
	"fmt"

	"wtw/internal/apperror"
	"wtw/internal/git"
	"wtw/internal/models"
	"wtw/internal/ui"
)

// Remove deletes a managed worktree and, with WithBranch, its branch. The
// primary worktree and the worktree the command runs from are refused.
func (m *Manager) Remove(opts models.RemoveOptions) error {
	target := SanitizeTarget(opts.Target)
	if target == "" {
		return apperror.User("worktree name is required")
	}
	if opts.ForceBranch && !opts.WithBranch {
		return apperror.User("--force-branch requires --with-branch")
	}

	worktrees, err := m.inventory()
	if err != nil {
		return err
	}

	wt, err := resolveRemovable(worktrees, m.baseDir(), target)
	if err != nil {
		return err
	}
	if m.isCurrent(wt) {
		return apperror.Userf("cannot remove the current worktree '%s': %s", target, wt.Path)
	}

	displayPath := normalizedPath(wt)
	if err := removeWorktree(m.Git, m.Repo.WorktreeRoot, wt.Path, opts.Force); err != nil {
		return err
	}
	fmt.Fprintln(m.Out, ui.Success(fmt.Sprintf("Removed worktree '%s' at %s", target, displayPath)))

	if opts.WithBranch && wt.HasBranch() {
		if err := removeBranch(m.Git, m.Repo.WorktreeRoot, wt.Branch, opts.ForceBranch); err != nil {
			return err
		}
		fmt.Fprintln(m.Out, ui.Success(fmt.Sprintf("Removed branch '%s'", wt.Branch)))
	}
	return nil
}

func removeWorktree(r git.Runner, dir, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)

	if _, err := r.Run(dir, args...); err != nil {
		return git.BackendError(err, fmt.Sprintf("git worktree remove failed for %s without error output", path))
	}
	return nil
}

func removeBranch(r git.Runner, dir, branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	if _, err := r.Run(dir, "branch", flag, branch); err != nil {
		return git.BackendError(err, fmt.Sprintf("failed to remove branch '%s'", branch))
	}
	return nil
}
