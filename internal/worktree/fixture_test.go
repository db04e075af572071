package worktree

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"wtw/internal/config"
	"wtw/internal/git"
	"wtw/internal/models"
	"wtw/internal/pathutil"
	"wtw/internal/testutil"
)

type fixture struct {
	t      *testing.T
	main   string
	base   string
	runner *testutil.FakeRunner
	out    bytes.Buffer
	mgr    *Manager
}

// newFixture lays out <tmp>/repo as the primary checkout with the default
// base dir <tmp>/worktree.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	main := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(main, 0o755))

	f := &fixture{
		t:      t,
		main:   pathutil.Normalize(main),
		runner: testutil.NewFakeRunner(),
	}
	cfg := config.Default()
	f.base = cfg.ResolvedBaseDir(f.main)
	f.mgr = &Manager{
		Repo: git.RepoContext{
			WorktreeRoot: f.main,
			MainRoot:     f.main,
			RepoName:     "repo",
		},
		Git:    f.runner,
		Config: cfg,
		Out:    &f.out,
		In:     strings.NewReader(""),
	}
	f.runner.On("status --short", "")
	return f
}

// dir creates rel under the base dir and returns its absolute path.
func (f *fixture) dir(rel string) string {
	f.t.Helper()
	p := filepath.Join(f.base, filepath.FromSlash(rel))
	require.NoError(f.t, os.MkdirAll(p, 0o755))
	return p
}

func (f *fixture) inventory(entries ...testutil.Entry) []models.Worktree {
	out := testutil.Porcelain(entries...)
	f.runner.On("worktree list --porcelain", out)
	return git.ParseWorktreeList(out)
}

func (f *fixture) mainEntry() testutil.Entry {
	return testutil.Entry{Path: f.main, Branch: "main", Head: "0123456789abcdef0123"}
}

func (f *fixture) runFrom(path string) {
	f.mgr.Repo.WorktreeRoot = pathutil.Normalize(path)
}
