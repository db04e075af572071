package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// IsBranchMerged reports whether the tip of branch is reachable from the tip
// of baseBranch in the repository at repoRoot.
func IsBranchMerged(repoRoot, branch, baseBranch string) (bool, error) {
	repo, err := gogit.PlainOpenWithOptions(repoRoot, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return false, fmt.Errorf("failed to open repository %s: %w", repoRoot, err)
	}

	base, err := branchTip(repo, baseBranch)
	if err != nil {
		return false, err
	}
	tip, err := branchTip(repo, branch)
	if err != nil {
		return false, err
	}

	merged, err := tip.IsAncestor(base)
	if err != nil {
		return false, fmt.Errorf("failed to check whether %s is merged into %s: %w", branch, baseBranch, err)
	}
	return merged, nil
}

func branchTip(repo *gogit.Repository, branch string) (*object.Commit, error) {
	ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup branch %s: %w", branch, err)
	}
	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to lookup commit of branch %s: %w", branch, err)
	}
	return commit, nil
}
