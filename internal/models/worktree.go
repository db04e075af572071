package models

// Worktree is one entry of the backend's worktree inventory.
type Worktree struct {
	Path       string
	Head       string
	Branch     string // empty when detached
	IsMain     bool
	IsDetached bool
	Locked     *string
	Prunable   *string
}

func (w Worktree) HasBranch() bool {
	return !w.IsDetached && w.Branch != ""
}

func (w Worktree) IsLocked() bool {
	return w.Locked != nil
}

type AddOptions struct {
	Target string
	Branch string
	Track  string
}

type ListOptions struct {
	JSON bool
}

type RemoveOptions struct {
	Target      string
	Force       bool
	WithBranch  bool
	ForceBranch bool
}

type PruneOptions struct {
	DryRun     bool
	Force      bool
	BaseBranch string
	Yes        bool
}
