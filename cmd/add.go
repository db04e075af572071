package cmd

import (
	"github.com/spf13/cobra"

	"wtw/internal/models"
	"wtw/internal/worktree"
)

var (
	addBranch string
	addTrack  string
)

var addCmd = &cobra.Command{
	Use:   "add [BRANCH_OR_COMMIT]",
	Short: "Create a worktree",
	Long: `Create a worktree under the configured base directory.
The directory is derived from the branch name, so "feature/auth" lands in
<base_dir>/feature/auth. Post-create hooks from .wtp.yml run afterwards.

Examples:
  wtw add feature/auth              check out an existing branch
  wtw add -b feature/new main       create a branch from main
  wtw add --track origin/fix-123    create a tracking branch fix-123`,
	Args: userArgs(cobra.MaximumNArgs(1)),
	RunE: withManager(runAdd),
}

func init() {
	addCmd.Flags().StringVarP(&addBranch, "branch", "b", "", "Create a new branch with this name")
	addCmd.Flags().StringVar(&addTrack, "track", "", "Track a remote branch (REMOTE/BRANCH)")
}

func runAdd(m *worktree.Manager, args []string) error {
	opts := models.AddOptions{
		Branch: addBranch,
		Track:  addTrack,
	}
	if len(args) > 0 {
		opts.Target = args[0]
	}
	return m.Add(opts)
}
