package cmd

import (
	"github.com/spf13/cobra"

	"wtw/internal/models"
	"wtw/internal/worktree"
)

var (
	pruneDryRun bool
	pruneForce  bool
	pruneBase   string
	pruneYes    bool
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove worktrees for merged branches",
	Long: `Remove managed worktrees whose branches have been merged into the base branch.
By default, this checks against the 'main' branch. Use --base to specify a different base branch.
Worktrees with uncommitted changes are skipped unless --force is given.`,
	Args: userArgs(cobra.NoArgs),
	RunE: withManager(runPrune),
}

func init() {
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "Show what would be removed without actually removing")
	pruneCmd.Flags().BoolVar(&pruneForce, "force", false, "Remove worktrees even if they have uncommitted changes")
	pruneCmd.Flags().StringVar(&pruneBase, "base", "main", "Base branch to check for merged branches")
	pruneCmd.Flags().BoolVarP(&pruneYes, "yes", "y", false, "Skip confirmation prompt")
}

func runPrune(m *worktree.Manager, args []string) error {
	return m.Prune(models.PruneOptions{
		DryRun:     pruneDryRun,
		Force:      pruneForce,
		BaseBranch: pruneBase,
		Yes:        pruneYes,
	})
}
