package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wtw/internal/shell"
)

var shellInitCmd = &cobra.Command{
	Use:   "shell-init SHELL",
	Short: "Print the shell integration script",
	Long: `Print a script that wraps wtw in a shell function so that "wtw cd"
changes the directory of the calling shell.

  bash/zsh:   eval "$(wtw shell-init bash)"
  PowerShell: wtw shell-init pwsh | Out-String | Invoke-Expression`,
	Args:      userArgs(cobra.ExactArgs(1)),
	ValidArgs: shell.Supported(),
	RunE:      tagged(runShellInit),
}

func runShellInit(cmd *cobra.Command, args []string) error {
	script, err := shell.Script(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), script)
	return err
}
