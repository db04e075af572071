//go:build !windows

package pathutil

func stripVerbatimPrefix(path string) string {
	return path
}

func foldCase(path string) string {
	return path
}
