package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wtw/internal/config"
	"wtw/internal/git"
	"wtw/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter .wtp.yml",
	Long: `Create a .wtp.yml configuration file in the root of the main worktree.
The file sets the default base directory and lists example post-create hooks.
An existing file is left untouched.`,
	Args: userArgs(cobra.NoArgs),
	RunE: tagged(runInit),
}

func runInit(cmd *cobra.Command, args []string) error {
	repo, err := git.Discover(git.NewRunner(), repoPath)
	if err != nil {
		return err
	}

	path, err := config.WriteStarter(repo.MainRoot)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Success("Created configuration file "+path))
	fmt.Fprintf(out, "  Worktrees will be created under %s\n", config.Default().ResolvedBaseDir(repo.MainRoot))
	return nil
}
