package testutil

import (
	"fmt"
	"strings"
)

// Entry describes one worktree for Porcelain.
type Entry struct {
	Path     string
	Head     string
	Branch   string
	Detached bool
	Locked   string
}

// Porcelain renders entries the way `git worktree list --porcelain` does.
func Porcelain(entries ...Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		head := e.Head
		if head == "" {
			head = fmt.Sprintf("%040d", i+1)
		}
		fmt.Fprintf(&b, "worktree %s\nHEAD %s\n", e.Path, head)
		if e.Detached || e.Branch == "" {
			b.WriteString("detached\n")
		} else {
			fmt.Fprintf(&b, "branch refs/heads/%s\n", e.Branch)
		}
		if e.Locked != "" {
			fmt.Fprintf(&b, "locked %s\n", e.Locked)
		}
	}
	return b.String()
}
