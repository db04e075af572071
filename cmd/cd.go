package cmd

import (
	"github.com/spf13/cobra"

	"wtw/internal/worktree"
)

var cdCmd = &cobra.Command{
	Use:   "cd WORKTREE",
	Short: "Print the path of a worktree",
	Long: `Resolve a worktree name and print its absolute path.
Accepted names are "@", "root" or the repository name for the main worktree,
and the branch, relative path or directory name of any managed worktree.

With shell integration installed (see "wtw shell-init") the calling shell
changes into the printed directory.`,
	Args:              userArgs(cobra.MaximumNArgs(1)),
	ValidArgsFunction: completeWorktreeNames,
	RunE:              withManager(runCd),
}

func runCd(m *worktree.Manager, args []string) error {
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	return m.Cd(target)
}
