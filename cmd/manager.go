package cmd

import (
	"github.com/spf13/cobra"

	"wtw/internal/config"
	"wtw/internal/git"
	"wtw/internal/worktree"
)

// newManager discovers the repository, loads its configuration and wires a
// Manager writing to the command's streams.
func newManager(cmd *cobra.Command) (*worktree.Manager, error) {
	runner := git.NewRunner()
	repo, err := git.Discover(runner, repoPath)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(repo.MainRoot)
	if err != nil {
		return nil, err
	}

	m := worktree.NewManager(repo, runner, cfg)
	m.Out = cmd.OutOrStdout()
	m.In = cmd.InOrStdin()
	return m, nil
}

func withManager(fn func(m *worktree.Manager, args []string) error) func(*cobra.Command, []string) error {
	return tagged(func(cmd *cobra.Command, args []string) error {
		m, err := newManager(cmd)
		if err != nil {
			return err
		}
		return fn(m, args)
	})
}

// completeWorktreeNames offers every name "wtw cd" resolves.
func completeWorktreeNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	m, err := newManager(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names, err := m.Names()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
