package worktree

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"wtw/internal/apperror"
	"wtw/internal/models"
)

const listHint = "Run 'wtw list' to see available worktrees."

// matcher is one named alias rule. Rules are evaluated in slice order and
// the first one that matches wins.
type matcher struct {
	name  string
	match func(wt models.Worktree, target string, rc resolveContext) bool
}

type resolveContext struct {
	baseDir  string
	repoName string
}

var primaryMatchers = []matcher{
	{"main-alias", func(_ models.Worktree, target string, _ resolveContext) bool {
		return target == MainAlias
	}},
	{"root", func(_ models.Worktree, target string, _ resolveContext) bool {
		return strings.EqualFold(target, "root")
	}},
	{"repo-name", func(_ models.Worktree, target string, rc resolveContext) bool {
		return rc.repoName != "" && strings.EqualFold(target, rc.repoName)
	}},
	{"main-branch", matchBranch},
}

var managedMatchers = []matcher{
	{"branch", matchBranch},
	{"display-name", func(wt models.Worktree, target string, rc resolveContext) bool {
		return sameDisplayName(DisplayName(wt, rc.baseDir), target)
	}},
	{"directory-name", func(wt models.Worktree, target string, _ resolveContext) bool {
		return dirName(wt) == target
	}},
}

func matchBranch(wt models.Worktree, target string, _ resolveContext) bool {
	return wt.HasBranch() && wt.Branch == target
}

// sameDisplayName compares display names treating / and \ alike, so a
// nested worktree resolves from either spelling on every platform.
func sameDisplayName(name, target string) bool {
	return strings.ReplaceAll(name, `\`, "/") == strings.ReplaceAll(target, `\`, "/")
}

func firstMatch(rules []matcher, wt models.Worktree, target string, rc resolveContext) (string, bool) {
	for _, rule := range rules {
		if rule.match(wt, target, rc) {
			return rule.name, true
		}
	}
	return "", false
}

// SanitizeTarget trims whitespace and the trailing "*" that marks the
// current worktree in list output.
func SanitizeTarget(target string) string {
	return strings.TrimRight(strings.TrimSpace(target), "*")
}

// Resolve finds the worktree named by target. Worktrees are visited in
// inventory order. The primary worktree matches its aliases; other
// worktrees match by branch, display name or directory name, and only
// when they live under baseDir.
func Resolve(worktrees []models.Worktree, baseDir, repoName, target string) (models.Worktree, error) {
	target = SanitizeTarget(target)
	rc := resolveContext{baseDir: baseDir, repoName: repoName}

	for _, wt := range worktrees {
		rules := managedMatchers
		if wt.IsMain {
			rules = primaryMatchers
		} else if !IsManaged(wt, baseDir) {
			continue
		}
		if rule, ok := firstMatch(rules, wt, target, rc); ok {
			slog.Debug("resolved worktree", "target", target, "rule", rule, "path", wt.Path)
			return wt, nil
		}
	}

	return models.Worktree{}, notFound(target, Suggestions(worktrees, baseDir, repoName))
}

// resolveRemovable is Resolve restricted to managed, non-primary worktrees.
// Primary aliases never match, so the primary worktree cannot be selected.
func resolveRemovable(worktrees []models.Worktree, baseDir, target string) (models.Worktree, error) {
	rc := resolveContext{baseDir: baseDir}
	var available []string

	for _, wt := range worktrees {
		if wt.IsMain || !IsManaged(wt, baseDir) {
			continue
		}
		if _, ok := firstMatch(managedMatchers, wt, target, rc); ok {
			return wt, nil
		}
		available = append(available, DisplayName(wt, baseDir))
	}

	return models.Worktree{}, notFound(target, available)
}

// Suggestions lists the names a user could have meant: "@", every managed
// display name, the primary branch and the repository name.
func Suggestions(worktrees []models.Worktree, baseDir, repoName string) []string {
	var names []string
	for _, wt := range worktrees {
		if IsManaged(wt, baseDir) {
			names = append(names, DisplayName(wt, baseDir))
		}
	}

	for _, wt := range worktrees {
		if !wt.IsMain {
			continue
		}
		names = append(names, MainAlias)
		if wt.HasBranch() && !contains(names, wt.Branch) {
			names = append(names, wt.Branch)
		}
		if repoName != "" && !containsFold(names, repoName) {
			names = append(names, repoName)
		}
		break
	}
	return sortUnique(names)
}

func notFound(target string, available []string) error {
	available = sortUnique(available)
	if len(available) == 0 {
		return apperror.Userf("worktree '%s' not found\n%s", target, listHint)
	}
	return apperror.Userf("worktree '%s' not found\nAvailable worktrees: %s\n%s",
		target, strings.Join(available, ", "), listHint)
}

func sortUnique(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := append([]string(nil), values...)
	sort.Strings(out)
	j := 0
	for i, v := range out {
		if i > 0 && v == out[j-1] {
			continue
		}
		out[j] = v
		j++
	}
	return out[:j]
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// Names returns every name Cd accepts for the current inventory.
func (m *Manager) Names() ([]string, error) {
	worktrees, err := m.inventory()
	if err != nil {
		return nil, err
	}
	return Suggestions(worktrees, m.baseDir(), m.Repo.RepoName), nil
}

// Cd resolves target and prints the worktree's absolute path.
func (m *Manager) Cd(target string) error {
	target = SanitizeTarget(target)
	if target == "" {
		return apperror.User("worktree name is required")
	}

	worktrees, err := m.inventory()
	if err != nil {
		return err
	}

	wt, err := Resolve(worktrees, m.baseDir(), m.Repo.RepoName, target)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(m.Out, normalizedPath(wt))
	return err
}
