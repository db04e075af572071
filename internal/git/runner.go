package git

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"wtw/internal/apperror"
)

// Runner executes git subcommands. The working directory is explicit so
// callers never depend on the process cwd.
type Runner interface {
	Run(dir string, args ...string) (string, error)
}

// ExecRunner runs the git binary as a subprocess.
type ExecRunner struct {
	Binary string
}

func NewRunner() *ExecRunner {
	return &ExecRunner{Binary: "git"}
}

// CommandError is returned when git ran but exited non-zero.
type CommandError struct {
	Command  string
	Dir      string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *CommandError) Error() string {
	if d := e.Diagnostic(); d != "" {
		return d
	}
	return fmt.Sprintf("%s failed with exit code %d", e.Command, e.ExitCode)
}

// Diagnostic returns the first non-empty line git wrote to stderr.
func (e *CommandError) Diagnostic() string {
	for _, line := range strings.Split(e.Stderr, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

func (r *ExecRunner) Run(dir string, args ...string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("git: no command specified")
	}
	command := formatCommand(r.Binary, args)

	start := time.Now()
	defer func() {
		slog.Debug("git command completed",
			"dir", dir,
			"command", command,
			"duration_ms", time.Since(start).Milliseconds())
	}()

	cmd := exec.Command(r.Binary, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if !utf8.Valid(stderr.Bytes()) {
		return "", fmt.Errorf("%s wrote non-text diagnostics", command)
	}
	if err := runErr; err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &CommandError{
				Command:  command,
				Dir:      dir,
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}
		}
		return "", fmt.Errorf("failed to execute %s in %s: %w", command, dir, err)
	}

	if !utf8.Valid(stdout.Bytes()) {
		return "", fmt.Errorf("%s returned non-text output", command)
	}
	return stdout.String(), nil
}

// BackendError converts a Runner failure into a git-category error. The
// message is git's first diagnostic line, or fallback when git printed none.
func BackendError(err error, fallback string) error {
	if err == nil {
		return nil
	}
	if apperror.KindOf(err) != apperror.KindInternal {
		return err
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		if d := cmdErr.Diagnostic(); d != "" {
			return apperror.Git(d)
		}
		return apperror.Git(fallback)
	}
	return apperror.Wrap(apperror.KindGit, "", err)
}

// IsCommandFailure reports whether err means git ran and exited non-zero,
// as opposed to failing to start or producing unreadable output.
func IsCommandFailure(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr)
}

func formatCommand(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, binary)
	for _, arg := range args {
		parts = append(parts, formatArgument(arg))
	}
	return strings.Join(parts, " ")
}

func formatArgument(arg string) string {
	if arg == "" {
		return `""`
	}
	if strings.ContainsAny(arg, " \t\n\"'") {
		return `"` + strings.ReplaceAll(arg, `"`, `\"`) + `"`
	}
	return arg
}
