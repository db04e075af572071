package worktree

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"wtw/internal/git"
	"wtw/internal/models"
)

const headLength = 8

// Row is one enriched inventory entry.
type Row struct {
	Name      string  `json:"name"`
	Branch    *string `json:"branch"`
	Head      string  `json:"head"`
	Status    string  `json:"status"`
	Upstream  *string `json:"upstream"`
	Path      string  `json:"path"`
	AbsPath   string  `json:"abs_path"`
	IsMain    bool    `json:"is_main"`
	IsCurrent bool    `json:"is_current"`
}

// List prints every worktree with its status and upstream, as a table or
// as JSON.
func (m *Manager) List(opts models.ListOptions) error {
	worktrees, err := m.inventory()
	if err != nil {
		return err
	}

	rows, err := m.BuildRows(worktrees)
	if err != nil {
		return err
	}

	if opts.JSON {
		return WriteJSON(m.Out, rows)
	}
	return WriteTable(m.Out, rows)
}

// BuildRows queries status and upstream for each worktree, in inventory
// order. A failed status query aborts the listing; a missing upstream
// does not.
func (m *Manager) BuildRows(worktrees []models.Worktree) ([]Row, error) {
	baseDir := m.baseDir()
	rows := make([]Row, 0, len(worktrees))

	for _, wt := range worktrees {
		absPath := normalizedPath(wt)

		status, err := worktreeStatus(m.Git, absPath)
		if err != nil {
			return nil, err
		}
		upstream, err := worktreeUpstream(m.Git, absPath)
		if err != nil {
			return nil, err
		}

		name := DisplayName(wt, baseDir)
		row := Row{
			Name:      name,
			Head:      abbreviate(wt.Head),
			Status:    status,
			Upstream:  upstream,
			Path:      name,
			AbsPath:   absPath,
			IsMain:    wt.IsMain,
			IsCurrent: m.isCurrent(wt),
		}
		if wt.HasBranch() {
			branch := wt.Branch
			row.Branch = &branch
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func worktreeStatus(r git.Runner, path string) (string, error) {
	out, err := r.Run(path, "status", "--short")
	if err != nil {
		return "", git.BackendError(err, fmt.Sprintf("git status failed in %s without error output", path))
	}
	if strings.TrimSpace(out) == "" {
		return "clean", nil
	}
	return "dirty", nil
}

// worktreeUpstream returns nil when no upstream is configured, which git
// reports as a non-zero exit.
func worktreeUpstream(r git.Runner, path string) (*string, error) {
	out, err := r.Run(path, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}")
	if err != nil {
		if git.IsCommandFailure(err) {
			return nil, nil
		}
		return nil, git.BackendError(err, "git rev-parse failed without error output")
	}
	upstream := strings.TrimSpace(out)
	if upstream == "" {
		return nil, nil
	}
	return &upstream, nil
}

func abbreviate(head string) string {
	if len(head) <= headLength {
		return head
	}
	return head[:headLength]
}

func WriteTable(out io.Writer, rows []Row) error {
	w := tabwriter.NewWriter(out, 0, 0, 1, ' ', 0)

	fmt.Fprintln(w, "PATH\tBRANCH\tHEAD\tSTATUS\tUPSTREAM\tABS_PATH")
	fmt.Fprintln(w, "----\t------\t----\t------\t--------\t--------")
	for _, row := range rows {
		name := row.Name
		if row.IsCurrent {
			name += "*"
		}
		branch := "detached"
		if row.Branch != nil {
			branch = *row.Branch
		}
		upstream := "-"
		if row.Upstream != nil {
			upstream = *row.Upstream
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", name, branch, row.Head, row.Status, upstream, row.AbsPath)
	}
	return w.Flush()
}

func WriteJSON(out io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize JSON: %w", err)
	}
	_, err = fmt.Fprintf(out, "%s\n", data)
	return err
}
