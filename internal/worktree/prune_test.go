package worktree

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtw/internal/apperror"
	"wtw/internal/models"
	"wtw/internal/testutil"
)

type pruneFixture struct {
	*fixture
	done  string
	done2 string
	wip   string
}

// newPruneFixture makes the primary checkout a real repository where
// "done" and "done2" point at main's tip and "wip" is one commit ahead.
func newPruneFixture(t *testing.T) *pruneFixture {
	f := newFixture(t)
	repo, err := gogit.PlainInit(f.main, false)
	require.NoError(t, err)

	first := commit(t, repo, f.main, "a.txt")
	second := commit(t, repo, f.main, "b.txt")
	setBranch(t, repo, "main", first)
	setBranch(t, repo, "done", first)
	setBranch(t, repo, "done2", first)
	setBranch(t, repo, "wip", second)

	pf := &pruneFixture{
		fixture: f,
		done:    f.dir("done"),
		done2:   f.dir("done2"),
		wip:     f.dir("wip"),
	}
	f.inventory(
		f.mainEntry(),
		testutil.Entry{Path: pf.done, Branch: "done"},
		testutil.Entry{Path: pf.wip, Branch: "wip"},
		testutil.Entry{Path: pf.done2, Branch: "done2"},
	)
	f.runner.Handle("worktree remove", func(string, []string) (string, error) { return "", nil })
	return pf
}

func commit(t *testing.T, repo *gogit.Repository, dir, file string) plumbing.Hash {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(file), 0o644))
	_, err = wt.Add(file)
	require.NoError(t, err)
	hash, err := wt.Commit("add "+file, &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash
}

func setBranch(t *testing.T, repo *gogit.Repository, name string, hash plumbing.Hash) {
	t.Helper()
	ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(name), hash)
	require.NoError(t, repo.Storer.SetReference(ref))
}

func TestPruneDryRunListsMergedOnly(t *testing.T) {
	pf := newPruneFixture(t)

	require.NoError(t, pf.mgr.Prune(models.PruneOptions{BaseBranch: "main", DryRun: true}))

	out := pf.out.String()
	assert.Contains(t, out, "Found 2 worktree(s) with merged branches")
	assert.Contains(t, out, "Branch: done\n")
	assert.Contains(t, out, "Branch: done2\n")
	assert.NotContains(t, out, "Branch: wip")
	assert.Contains(t, out, "This was a dry run")
	assert.False(t, pf.runner.Called("worktree remove"))
}

func TestPruneRemovesMergedWorktrees(t *testing.T) {
	pf := newPruneFixture(t)

	require.NoError(t, pf.mgr.Prune(models.PruneOptions{BaseBranch: "main", Yes: true}))

	assert.Equal(t, []string{
		"worktree remove " + pf.done,
		"worktree remove " + pf.done2,
	}, removals(pf.runner))
	assert.Contains(t, pf.out.String(), "Prune operation completed.")
}

func TestPruneSkipsDirtyUnlessForced(t *testing.T) {
	pf := newPruneFixture(t)
	pf.runner.OnIn(pf.done, "status --short", "?? scratch\n")

	require.NoError(t, pf.mgr.Prune(models.PruneOptions{BaseBranch: "main", Yes: true}))
	assert.Equal(t, []string{"worktree remove " + pf.done2}, removals(pf.runner))
	assert.Contains(t, pf.out.String(), "Skipping dirty worktree: done")

	pf.runner = testutil.NewFakeRunner()
	pf.mgr.Git = pf.runner
	pf.runner.On("status --short", "?? scratch\n")
	pf.inventory(pf.mainEntry(), testutil.Entry{Path: pf.done, Branch: "done"})
	pf.runner.Handle("worktree remove", func(string, []string) (string, error) { return "", nil })

	require.NoError(t, pf.mgr.Prune(models.PruneOptions{BaseBranch: "main", Yes: true, Force: true}))
	assert.Equal(t, []string{"worktree remove --force " + pf.done}, removals(pf.runner))
}

func TestPruneNeverRemovesCurrentWorktree(t *testing.T) {
	pf := newPruneFixture(t)
	pf.runFrom(pf.done)

	require.NoError(t, pf.mgr.Prune(models.PruneOptions{BaseBranch: "main", Yes: true}))
	assert.Equal(t, []string{"worktree remove " + pf.done2}, removals(pf.runner))
}

func TestPruneAsksForConfirmation(t *testing.T) {
	pf := newPruneFixture(t)
	pf.mgr.In = strings.NewReader("n\n")

	require.NoError(t, pf.mgr.Prune(models.PruneOptions{BaseBranch: "main"}))
	assert.Contains(t, pf.out.String(), "Operation cancelled.")
	assert.Empty(t, removals(pf.runner))

	pf.out.Reset()
	pf.mgr.In = strings.NewReader("yes\n")
	require.NoError(t, pf.mgr.Prune(models.PruneOptions{BaseBranch: "main"}))
	assert.Len(t, removals(pf.runner), 2)
}

func TestPruneReportsFailedRemovals(t *testing.T) {
	pf := newPruneFixture(t)
	pf.runner.Fail("worktree remove "+pf.done, "fatal: cannot remove\n")

	err := pf.mgr.Prune(models.PruneOptions{BaseBranch: "main", Yes: true})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindGit))
	assert.Equal(t, "1 worktree(s) could not be removed", err.Error())
	assert.Contains(t, removals(pf.runner), "worktree remove "+pf.done2)
}

func TestPruneUnknownBaseBranchFindsNothing(t *testing.T) {
	pf := newPruneFixture(t)

	require.NoError(t, pf.mgr.Prune(models.PruneOptions{BaseBranch: "develop", Yes: true}))
	assert.Contains(t, pf.out.String(), "No worktrees found with merged branches.")
}

func removals(r *testutil.FakeRunner) []string {
	var out []string
	for _, c := range r.Commands() {
		if strings.HasPrefix(c, "worktree remove") {
			out = append(out, c)
		}
	}
	return out
}
