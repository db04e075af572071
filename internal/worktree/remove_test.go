package worktree

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtw/internal/apperror"
	"wtw/internal/models"
	"wtw/internal/testutil"
)

func newRemoveFixture(t *testing.T) (*fixture, string) {
	f := newFixture(t)
	feature := f.dir("feature/auth")
	f.inventory(
		f.mainEntry(),
		testutil.Entry{Path: feature, Branch: "feature/auth"},
		testutil.Entry{Path: filepath.Join(t.TempDir(), "outside"), Branch: "outside"},
	)
	return f, feature
}

func TestRemoveWorktree(t *testing.T) {
	f, feature := newRemoveFixture(t)
	f.runner.On("worktree remove "+feature, "")

	require.NoError(t, f.mgr.Remove(models.RemoveOptions{Target: "feature/auth"}))

	assert.Contains(t, f.out.String(), "Removed worktree 'feature/auth' at "+feature)
	assert.False(t, f.runner.Called("branch"))
}

func TestRemoveWithForce(t *testing.T) {
	f, feature := newRemoveFixture(t)
	f.runner.On("worktree remove --force "+feature, "")

	require.NoError(t, f.mgr.Remove(models.RemoveOptions{Target: "auth", Force: true}))
	assert.True(t, f.runner.Called("worktree remove --force"))
}

func TestRemoveWithBranch(t *testing.T) {
	f, feature := newRemoveFixture(t)
	f.runner.On("worktree remove "+feature, "")
	f.runner.On("branch -d feature/auth", "Deleted branch feature/auth\n")

	require.NoError(t, f.mgr.Remove(models.RemoveOptions{Target: "feature/auth", WithBranch: true}))
	assert.Contains(t, f.out.String(), "Removed branch 'feature/auth'")
}

func TestRemoveWithForcedBranch(t *testing.T) {
	f, feature := newRemoveFixture(t)
	f.runner.On("worktree remove "+feature, "")
	f.runner.On("branch -D feature/auth", "")

	require.NoError(t, f.mgr.Remove(models.RemoveOptions{Target: "feature/auth", WithBranch: true, ForceBranch: true}))
	assert.True(t, f.runner.Called("branch -D feature/auth"))
}

func TestRemoveBranchFailureIsGitError(t *testing.T) {
	f, feature := newRemoveFixture(t)
	f.runner.On("worktree remove "+feature, "")
	f.runner.Fail("branch -d feature/auth", "error: The branch 'feature/auth' is not fully merged.\n")

	err := f.mgr.Remove(models.RemoveOptions{Target: "feature/auth", WithBranch: true})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindGit))
	assert.Contains(t, err.Error(), "not fully merged")
	assert.Contains(t, f.out.String(), "Removed worktree")
}

func TestRemoveForceBranchRequiresWithBranch(t *testing.T) {
	f, _ := newRemoveFixture(t)

	err := f.mgr.Remove(models.RemoveOptions{Target: "feature/auth", ForceBranch: true})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUser))
	assert.Empty(t, f.runner.Calls())
}

func TestRemoveRefusesCurrentWorktree(t *testing.T) {
	f, feature := newRemoveFixture(t)
	f.runFrom(filepath.Join(feature))

	err := f.mgr.Remove(models.RemoveOptions{Target: "feature/auth"})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUser))
	assert.Contains(t, err.Error(), "cannot remove the current worktree")
	assert.False(t, f.runner.Called("worktree remove"))
}

func TestRemoveNeverSelectsPrimaryOrUnmanaged(t *testing.T) {
	f, _ := newRemoveFixture(t)

	for _, target := range []string{"@", "main", "repo", "root", "outside"} {
		err := f.mgr.Remove(models.RemoveOptions{Target: target})
		require.Error(t, err, target)
		assert.True(t, apperror.IsKind(err, apperror.KindUser), target)
		assert.Contains(t, err.Error(), "not found", target)
	}
	assert.False(t, f.runner.Called("worktree remove"))
}

func TestRemoveRequiresTarget(t *testing.T) {
	f, _ := newRemoveFixture(t)

	err := f.mgr.Remove(models.RemoveOptions{Target: " * "})
	require.Error(t, err)
	assert.Equal(t, "worktree name is required", err.Error())
}
