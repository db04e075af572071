package cmd

import (
	"github.com/spf13/cobra"

	"wtw/internal/models"
	"wtw/internal/worktree"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all worktrees",
	Long: `List all worktrees of the current repository.
Shows the name, branch, abbreviated HEAD, working tree status and upstream
of each worktree. The current worktree is marked with "*".`,
	Args: userArgs(cobra.NoArgs),
	RunE: withManager(runList),
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print the worktrees as JSON")
}

func runList(m *worktree.Manager, args []string) error {
	return m.List(models.ListOptions{JSON: listJSON})
}
