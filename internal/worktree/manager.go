package worktree

import (
	"io"
	"os"

	"wtw/internal/config"
	"wtw/internal/git"
	"wtw/internal/models"
	"wtw/internal/pathutil"
)

// Manager runs worktree operations for one repository. Every operation
// re-reads the inventory from git; nothing is cached between calls.
type Manager struct {
	Repo   git.RepoContext
	Git    git.Runner
	Config config.Config
	Out    io.Writer
	In     io.Reader
}

func NewManager(repo git.RepoContext, runner git.Runner, cfg config.Config) *Manager {
	return &Manager{
		Repo:   repo,
		Git:    runner,
		Config: cfg,
		Out:    os.Stdout,
		In:     os.Stdin,
	}
}

func (m *Manager) inventory() ([]models.Worktree, error) {
	return git.ListWorktrees(m.Git, m.Repo.WorktreeRoot)
}

func (m *Manager) baseDir() string {
	return m.Config.ResolvedBaseDir(m.Repo.MainRoot)
}

func (m *Manager) isCurrent(wt models.Worktree) bool {
	return pathutil.Equal(wt.Path, m.Repo.WorktreeRoot)
}

func normalizedPath(wt models.Worktree) string {
	return pathutil.Normalize(wt.Path)
}
