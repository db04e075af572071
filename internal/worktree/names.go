// Package worktree maps user-facing names onto the backend's worktree
// inventory and orchestrates add, list, remove, cd and prune.
package worktree

import (
	"path/filepath"

	"wtw/internal/models"
	"wtw/internal/pathutil"
)

// MainAlias is the display name of the primary worktree.
const MainAlias = "@"

// IsManaged reports whether wt is the primary worktree or lives under baseDir.
func IsManaged(wt models.Worktree, baseDir string) bool {
	if wt.IsMain {
		return true
	}
	return pathutil.Within(wt.Path, baseDir)
}

// DisplayName is "@" for the primary worktree, the path relative to baseDir
// for managed worktrees and the final path segment otherwise.
func DisplayName(wt models.Worktree, baseDir string) string {
	if wt.IsMain {
		return MainAlias
	}
	if rel, ok := pathutil.Relative(wt.Path, baseDir); ok && rel != "." {
		return rel
	}
	return dirName(wt)
}

func dirName(wt models.Worktree) string {
	return filepath.Base(pathutil.Normalize(wt.Path))
}
