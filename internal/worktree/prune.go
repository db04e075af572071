package worktree

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	"wtw/internal/apperror"
	"wtw/internal/git"
	"wtw/internal/models"
	"wtw/internal/ui"
)

type pruneCandidate struct {
	wt    models.Worktree
	name  string
	dirty bool
}

// Prune removes managed worktrees whose branch is already merged into
// opts.BaseBranch. The primary worktree, locked or detached worktrees and
// the worktree the command runs from are never candidates.
func (m *Manager) Prune(opts models.PruneOptions) error {
	worktrees, err := m.inventory()
	if err != nil {
		return err
	}

	fmt.Fprintf(m.Out, "Checking for worktrees with branches merged into '%s'...\n\n", opts.BaseBranch)

	candidates, err := m.pruneCandidates(worktrees, opts.BaseBranch)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		fmt.Fprintln(m.Out, "No worktrees found with merged branches.")
		return nil
	}

	fmt.Fprintf(m.Out, "Found %d worktree(s) with merged branches:\n\n", len(candidates))
	dirtyCount := 0
	for _, c := range candidates {
		status := "clean"
		if c.dirty {
			status = "dirty"
			dirtyCount++
		}
		fmt.Fprintf(m.Out, "  %s\n", c.name)
		fmt.Fprintf(m.Out, "    Branch: %s\n", c.wt.Branch)
		fmt.Fprintf(m.Out, "    Path:   %s\n", normalizedPath(c.wt))
		fmt.Fprintf(m.Out, "    Status: %s\n\n", status)
	}

	if opts.DryRun {
		fmt.Fprintln(m.Out, ui.Faint("This was a dry run. Run without --dry-run to remove the worktrees."))
		return nil
	}

	if dirtyCount > 0 && !opts.Force {
		fmt.Fprintln(m.Out, ui.Warn(fmt.Sprintf("Warning: %d worktree(s) have uncommitted changes and will be skipped.", dirtyCount)))
		fmt.Fprintln(m.Out, "Use --force to remove them anyway, or commit/stash your changes first.")
	}

	if !opts.Yes {
		ok, err := m.confirm("Do you want to proceed with removing these worktrees? [y/N]: ")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(m.Out, "Operation cancelled.")
			return nil
		}
	}

	fmt.Fprintln(m.Out, "\nRemoving worktrees...")
	failed := 0
	for _, c := range candidates {
		if c.dirty && !opts.Force {
			fmt.Fprintf(m.Out, "Skipping dirty worktree: %s\n", c.name)
			continue
		}
		if err := removeWorktree(m.Git, m.Repo.WorktreeRoot, c.wt.Path, opts.Force); err != nil {
			fmt.Fprintln(m.Out, ui.Warn(fmt.Sprintf("Failed to remove worktree %s: %v", c.name, err)))
			failed++
			continue
		}
		fmt.Fprintln(m.Out, ui.Success(fmt.Sprintf("Removed worktree: %s (branch: %s)", c.name, c.wt.Branch)))
	}

	if failed > 0 {
		return apperror.Gitf("%d worktree(s) could not be removed", failed)
	}
	fmt.Fprintln(m.Out, "\nPrune operation completed.")
	return nil
}

func (m *Manager) pruneCandidates(worktrees []models.Worktree, baseBranch string) ([]pruneCandidate, error) {
	baseDir := m.baseDir()
	var candidates []pruneCandidate

	for _, wt := range worktrees {
		if wt.IsMain || wt.IsLocked() || !wt.HasBranch() || wt.Branch == baseBranch {
			continue
		}
		if !IsManaged(wt, baseDir) || m.isCurrent(wt) {
			continue
		}

		merged, err := git.IsBranchMerged(m.Repo.MainRoot, wt.Branch, baseBranch)
		if err != nil {
			slog.Warn("could not check merge status", "branch", wt.Branch, "base", baseBranch, "error", err)
			continue
		}
		if !merged {
			continue
		}

		status, err := worktreeStatus(m.Git, normalizedPath(wt))
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, pruneCandidate{
			wt:    wt,
			name:  DisplayName(wt, baseDir),
			dirty: status == "dirty",
		})
	}
	return candidates, nil
}

func (m *Manager) confirm(prompt string) (bool, error) {
	fmt.Fprint(m.Out, prompt)
	response, err := bufio.NewReader(m.In).ReadString('\n')
	if err != nil && response == "" {
		return false, fmt.Errorf("failed to read input: %w", err)
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}
