package gitx

import "errors"

// Error types for git operations.
var (
	// ErrNotRepository indicates the path is not inside a git repository.
	ErrNotRepository = errors.New("not a git repository")

	// ErrNoBaseline indicates no main/master base branch could be found to
	// compare the current branch with.
	ErrNoBaseline = errors.New("no base branch found")

	// ErrDirtyWorkingTree indicates the target file has uncommitted changes.
	ErrDirtyWorkingTree = errors.New("uncommitted changes in working tree")
)
