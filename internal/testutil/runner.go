// Package testutil provides a scripted git.Runner for tests.
package testutil

import (
	"strings"

	"wtw/internal/git"
)

// Call records one invocation of FakeRunner.Run.
type Call struct {
	Dir  string
	Args []string
}

func (c Call) String() string {
	return strings.Join(c.Args, " ")
}

type handler struct {
	dir    string
	prefix string
	exact  bool
	fn     func(dir string, args []string) (string, error)
}

// FakeRunner answers git commands from a script. Handlers registered later
// take precedence, and dir-specific handlers win over dir-agnostic ones.
// Unscripted commands fail like git would with exit code 128.
type FakeRunner struct {
	handlers []handler
	calls    []Call
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{}
}

// On answers the exact command args with out, in any directory.
func (f *FakeRunner) On(args, out string) *FakeRunner {
	return f.add(handler{prefix: args, exact: true, fn: constant(out, nil)})
}

// OnIn answers the exact command args with out when run in dir.
func (f *FakeRunner) OnIn(dir, args, out string) *FakeRunner {
	return f.add(handler{dir: dir, prefix: args, exact: true, fn: constant(out, nil)})
}

// Fail makes the exact command args exit non-zero with stderr.
func (f *FakeRunner) Fail(args, stderr string) *FakeRunner {
	return f.add(handler{prefix: args, exact: true, fn: constant("", commandError(args, stderr))})
}

// FailIn makes the exact command args exit non-zero with stderr in dir.
func (f *FakeRunner) FailIn(dir, args, stderr string) *FakeRunner {
	return f.add(handler{dir: dir, prefix: args, exact: true, fn: constant("", commandError(args, stderr))})
}

// Handle routes every command starting with prefix to fn.
func (f *FakeRunner) Handle(prefix string, fn func(dir string, args []string) (string, error)) *FakeRunner {
	return f.add(handler{prefix: prefix, fn: fn})
}

func (f *FakeRunner) add(h handler) *FakeRunner {
	f.handlers = append(f.handlers, h)
	return f
}

func (f *FakeRunner) Run(dir string, args ...string) (string, error) {
	f.calls = append(f.calls, Call{Dir: dir, Args: append([]string(nil), args...)})
	command := strings.Join(args, " ")

	var fallback *handler
	for i := len(f.handlers) - 1; i >= 0; i-- {
		h := &f.handlers[i]
		if !h.matches(command) {
			continue
		}
		if h.dir == dir {
			return h.fn(dir, args)
		}
		if h.dir == "" && fallback == nil {
			fallback = h
		}
	}
	if fallback != nil {
		return fallback.fn(dir, args)
	}
	return "", commandError(command, "fatal: unexpected command: git "+command)
}

func (h *handler) matches(command string) bool {
	if h.exact {
		return command == h.prefix
	}
	return command == h.prefix || strings.HasPrefix(command, h.prefix+" ")
}

// Calls returns every recorded invocation in order.
func (f *FakeRunner) Calls() []Call {
	return f.calls
}

// Commands returns the recorded invocations as space-joined argument lists.
func (f *FakeRunner) Commands() []string {
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.String())
	}
	return out
}

// Called reports whether any recorded command starts with prefix.
func (f *FakeRunner) Called(prefix string) bool {
	for _, c := range f.calls {
		command := c.String()
		if command == prefix || strings.HasPrefix(command, prefix+" ") {
			return true
		}
	}
	return false
}

func constant(out string, err error) func(string, []string) (string, error) {
	return func(string, []string) (string, error) {
		return out, err
	}
}

func commandError(command, stderr string) error {
	return &git.CommandError{
		Command:  "git " + command,
		ExitCode: 128,
		Stderr:   stderr,
	}
}
