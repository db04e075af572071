//go:build windows

package pathutil

import "strings"

const (
	verbatimPrefix    = `\\?\`
	verbatimUNCPrefix = `\\?\UNC\`
)

func stripVerbatimPrefix(path string) string {
	switch {
	case strings.HasPrefix(path, verbatimUNCPrefix):
		return `\\` + strings.TrimPrefix(path, verbatimUNCPrefix)
	case strings.HasPrefix(path, verbatimPrefix):
		return strings.TrimPrefix(path, verbatimPrefix)
	default:
		return path
	}
}

// NTFS paths compare case-insensitively.
func foldCase(path string) string {
	return strings.ToLower(path)
}
