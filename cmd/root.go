package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"wtw/internal/apperror"
	"wtw/internal/logging"
)

var (
	verbose  int
	quiet    bool
	repoPath string
)

var rootCmd = &cobra.Command{
	Use:   "wtw",
	Short: "wtw is a Git worktree helper",
	Long: `wtw is a CLI tool for managing Git worktrees.
It creates worktrees under a common base directory, lists them with their
status, resolves short names to paths for "wtw cd" and removes them again.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	// Errors cobra raises itself (unknown commands, bad flags) are usage errors.
	if !apperror.Tagged(err) {
		err = apperror.Wrap(apperror.KindUser, "", err)
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return apperror.ExitCode(err)
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "Increase log verbosity (repeat for source locations)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	rootCmd.PersistentFlags().StringVar(&repoPath, "repo", "", "Run as if started in this directory")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(cdCmd)
	rootCmd.AddCommand(pruneCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(shellInitCmd)
	rootCmd.AddCommand(versionCmd)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	logging.Setup(cmd.ErrOrStderr(), verbose, quiet)
	return nil
}

// userArgs tags argument validation failures as usage errors.
func userArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return apperror.Wrap(apperror.KindUser, "", err)
		}
		return nil
	}
}

// tagged wraps a RunE so that untagged failures surface as internal errors.
func tagged(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err != nil && !apperror.Tagged(err) {
			return apperror.Wrap(apperror.KindInternal, "", err)
		}
		return err
	}
}
