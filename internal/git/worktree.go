package git

import (
	"path/filepath"
	"strings"

	"wtw/internal/models"
)

// ListWorktrees queries the backend inventory from dir. The first entry is
// the primary worktree.
func ListWorktrees(r Runner, dir string) ([]models.Worktree, error) {
	out, err := r.Run(dir, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, BackendError(err, "git worktree list failed without error output")
	}
	return ParseWorktreeList(out), nil
}

type parseState int

const (
	stateNoRecord parseState = iota
	stateBuildingRecord
)

type inventoryParser struct {
	state   parseState
	current models.Worktree
	records []models.Worktree
}

// ParseWorktreeList converts `git worktree list --porcelain` output into
// records. Git always reports the primary checkout first, so record 0 is
// marked as main without further checks.
func ParseWorktreeList(output string) []models.Worktree {
	p := &inventoryParser{}
	for _, line := range strings.Split(output, "\n") {
		p.feed(strings.TrimSuffix(line, "\r"))
	}
	p.finish()

	if len(p.records) > 0 {
		p.records[0].IsMain = true
	}
	return p.records
}

func (p *inventoryParser) feed(line string) {
	if line == "" {
		p.finish()
		return
	}

	if path, ok := strings.CutPrefix(line, "worktree "); ok {
		p.finish()
		p.current = models.Worktree{Path: filepath.FromSlash(path)}
		p.state = stateBuildingRecord
		return
	}

	// Attribute lines outside a record have nothing to attach to.
	if p.state != stateBuildingRecord {
		return
	}

	switch {
	case strings.HasPrefix(line, "HEAD "):
		p.current.Head = strings.TrimPrefix(line, "HEAD ")
	case strings.HasPrefix(line, "branch "):
		ref := strings.TrimPrefix(line, "branch ")
		p.current.Branch = strings.TrimPrefix(ref, "refs/heads/")
	case line == "detached":
		p.current.IsDetached = true
	case line == "locked" || strings.HasPrefix(line, "locked "):
		reason := strings.TrimSpace(strings.TrimPrefix(line, "locked"))
		p.current.Locked = &reason
	case line == "prunable" || strings.HasPrefix(line, "prunable "):
		reason := strings.TrimSpace(strings.TrimPrefix(line, "prunable"))
		p.current.Prunable = &reason
	}
}

func (p *inventoryParser) finish() {
	if p.state != stateBuildingRecord {
		return
	}
	record := p.current
	if record.IsDetached {
		record.Branch = ""
	}
	if record.Path != "" {
		p.records = append(p.records, record)
	}
	p.current = models.Worktree{}
	p.state = stateNoRecord
}
