package cmd

import (
	"github.com/spf13/cobra"

	"wtw/internal/models"
	"wtw/internal/worktree"
)

var (
	removeForce       bool
	removeWithBranch  bool
	removeForceBranch bool
)

var removeCmd = &cobra.Command{
	Use:     "remove [WORKTREE]",
	Aliases: []string{"rm"},
	Short:   "Remove a worktree",
	Long: `Remove a worktree created under the base directory.
The main worktree and the worktree you are currently in cannot be removed.
With --with-branch the worktree's branch is deleted as well.`,
	Args:              userArgs(cobra.MaximumNArgs(1)),
	ValidArgsFunction: completeWorktreeNames,
	RunE:              withManager(runRemove),
}

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Remove even if the worktree has uncommitted changes")
	removeCmd.Flags().BoolVar(&removeWithBranch, "with-branch", false, "Also delete the worktree's branch")
	removeCmd.Flags().BoolVar(&removeForceBranch, "force-branch", false, "Delete the branch even if it is not merged (requires --with-branch)")
}

func runRemove(m *worktree.Manager, args []string) error {
	opts := models.RemoveOptions{
		Force:       removeForce,
		WithBranch:  removeWithBranch,
		ForceBranch: removeForceBranch,
	}
	if len(args) > 0 {
		opts.Target = args[0]
	}
	return m.Remove(opts)
}
