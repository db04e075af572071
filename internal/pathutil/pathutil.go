// Package pathutil canonicalizes filesystem paths so that two spellings of
// the same location compare equal, whatever tool reported them.
package pathutil

import (
	"path/filepath"
	"strings"
)

// Normalize returns the absolute, symlink-resolved form of path with any
// platform verbatim prefix removed. Components that do not exist yet are
// kept as written on top of the deepest existing ancestor, so Normalize
// never fails and Normalize(Normalize(p)) == Normalize(p).
func Normalize(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(stripVerbatimPrefix(path))
	if err != nil {
		abs = filepath.Clean(path)
	}
	return stripVerbatimPrefix(resolveExisting(abs))
}

// resolveExisting resolves symlinks on the longest existing prefix of path
// and re-appends the remaining components unchanged.
func resolveExisting(path string) string {
	var tail []string
	cur := path
	for {
		if resolved, err := filepath.EvalSymlinks(cur); err == nil {
			for i := len(tail) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, tail[i])
			}
			return resolved
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return path
		}
		tail = append(tail, filepath.Base(cur))
		cur = parent
	}
}

// Equal reports whether a and b name the same location.
func Equal(a, b string) bool {
	return foldCase(Normalize(a)) == foldCase(Normalize(b))
}

// Within reports whether path is base or one of its descendants.
func Within(path, base string) bool {
	_, ok := Relative(path, base)
	return ok
}

// Relative returns path relative to base, using the platform separator.
// ok is false when path lies outside base. path == base yields ".".
func Relative(path, base string) (string, bool) {
	p := Normalize(path)
	b := Normalize(base)
	if p == "" || b == "" {
		return "", false
	}
	fp, fb := foldCase(p), foldCase(b)
	if fp == fb {
		return ".", true
	}
	prefix := fb
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if !strings.HasPrefix(fp, prefix) {
		return "", false
	}
	return p[len(prefix):], true
}
