package git

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
	"wtw/internal/pathutil"
)

func initRepo(t *testing.T, name string) (string, *gogit.Repository) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

func commitFile(t *testing.T, repo *gogit.Repository, dir, file, content string) plumbing.Hash {
	t.Helper()
	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644))
	_, err = wt.Add(file)
	require.NoError(t, err)
	hash, err := wt.Commit("update "+file, &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash
}

func TestDiscoverPrimaryCheckoutFromSubdirectory(t *testing.T) {
	dir, _ := initRepo(t, "myrepo")
	sub := filepath.Join(dir, "nested", "deeper")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	ctx, err := Discover(&stubRunner{}, sub)
	require.NoError(t, err)
	assert.Equal(t, pathutil.Normalize(dir), ctx.WorktreeRoot)
	assert.Equal(t, pathutil.Normalize(dir), ctx.MainRoot)
	assert.Equal(t, "myrepo", ctx.RepoName)
	assert.True(t, ctx.IsMainWorktree())
}

func TestDiscoverExplicitFileUsesParent(t *testing.T) {
	dir, _ := initRepo(t, "repo")
	file := filepath.Join(dir, "README")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	ctx, err := Discover(&stubRunner{}, file)
	require.NoError(t, err)
	assert.Equal(t, pathutil.Normalize(dir), ctx.WorktreeRoot)
}

func TestDiscoverMissingExplicitPathIsUserError(t *testing.T) {
	_, err := Discover(&stubRunner{}, filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindUser))
}

func TestDiscoverFallsBackToRevParse(t *testing.T) {
	plain := t.TempDir()
	runner := &scriptedRunner{responses: map[string]string{
		"rev-parse --show-toplevel":  plain + "\n",
		"rev-parse --git-common-dir": filepath.Join(plain, ".git") + "\n",
	}}

	ctx, err := Discover(runner, plain)
	require.NoError(t, err)
	assert.Equal(t, pathutil.Normalize(plain), ctx.WorktreeRoot)
	assert.Equal(t, filepath.Base(plain), ctx.RepoName)
}

func TestCommonDirForLinkedWorktree(t *testing.T) {
	base := t.TempDir()
	main := filepath.Join(base, "repo")
	gitDir := filepath.Join(main, ".git", "worktrees", "feature")
	linked := filepath.Join(base, "worktree", "feature")
	require.NoError(t, os.MkdirAll(gitDir, 0o755))
	require.NoError(t, os.MkdirAll(linked, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "commondir"), []byte("../..\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(linked, ".git"), []byte("gitdir: "+gitDir+"\n"), 0o644))

	common, err := commonDirFor(linked)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(main, ".git"), common)

	mainRoot, err := resolveMainRoot(linked, common)
	require.NoError(t, err)
	assert.Equal(t, pathutil.Normalize(main), mainRoot)
}

func TestResolveMainRootKeepsBareCommonDir(t *testing.T) {
	bare := filepath.Join(t.TempDir(), "repo.git")
	require.NoError(t, os.MkdirAll(bare, 0o755))

	mainRoot, err := resolveMainRoot("/unused", bare)
	require.NoError(t, err)
	assert.Equal(t, pathutil.Normalize(bare), mainRoot)
}

func TestIsBranchMerged(t *testing.T) {
	dir, repo := initRepo(t, "repo")
	first := commitFile(t, repo, dir, "a.txt", "one")
	require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewBranchReferenceName("main"), first)))
	require.NoError(t, repo.Storer.SetReference(plumbing.NewHashReference(plumbing.NewBranchReferenceName("done"), first)))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("feature"),
		Create: true,
	}))
	commitFile(t, repo, dir, "b.txt", "two")

	merged, err := IsBranchMerged(dir, "done", "main")
	require.NoError(t, err)
	assert.True(t, merged)

	merged, err = IsBranchMerged(dir, "feature", "main")
	require.NoError(t, err)
	assert.False(t, merged)

	_, err = IsBranchMerged(dir, "ghost", "main")
	assert.Error(t, err)
}

type scriptedRunner struct {
	responses map[string]string
}

func (s *scriptedRunner) Run(dir string, args ...string) (string, error) {
	key := strings.Join(args, " ")
	if out, ok := s.responses[key]; ok {
		return out, nil
	}
	return "", &CommandError{Command: "git " + key, ExitCode: 128, Stderr: "fatal: unexpected command"}
}
