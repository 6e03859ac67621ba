// Package gitx is a thin exec-based git wrapper: working-tree dirtiness,
// base-branch discovery, and changed-line extraction for diff scoping. All
// queries are read-only.
package gitx

import (
	"fmt"
	"os/exec"
	"strings"
)

// Repository is a handle on the git repository containing a directory.
type Repository struct {
	dir string
}

// Discover opens the repository that contains dir. Returns ErrNotRepository
// when dir is not inside a git working tree (including when git itself is
// not installed).
func Discover(dir string) (*Repository, error) {
	r := &Repository{dir: dir}
	out, err := r.git("rev-parse", "--is-inside-work-tree")
	if err != nil || strings.TrimSpace(out) != "true" {
		return nil, ErrNotRepository
	}
	return r, nil
}

// Dir returns the directory the repository was discovered from.
func (r *Repository) Dir() string {
	return r.dir
}

// git runs one git subcommand against the repository directory and returns
// its stdout.
func (r *Repository) git(args ...string) (string, error) {
	fullArgs := append([]string{"-C", r.dir}, args...)
	cmd := exec.Command("git", fullArgs...)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return stdout.String(), nil
}

// IsDirty reports whether the file has uncommitted changes (staged or not)
// per `git status --porcelain`.
func (r *Repository) IsDirty(path string) (bool, error) {
	out, err := r.git("status", "--porcelain", "--", path)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// CurrentBranch returns the checked-out branch name, empty for detached
// HEAD.
func (r *Repository) CurrentBranch() (string, error) {
	out, err := r.git("branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// BaseBranch discovers the branch to diff against: origin/main is
// preferred, then main, then origin/master, then master. Returns
// ErrNoBaseline when none of those refs exist.
func (r *Repository) BaseBranch() (string, error) {
	out, err := r.git("for-each-ref", "--format=%(refname:short)")
	if err != nil {
		return "", err
	}
	base := pickBaseBranch(strings.Split(out, "\n"))
	if base == "" {
		return "", ErrNoBaseline
	}
	return base, nil
}

// pickBaseBranch selects the baseline ref from a short-name ref listing.
// main derivatives beat master derivatives; remote refs beat local ones.
func pickBaseBranch(refs []string) string {
	var base string
	best := 0
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if r := baseRank(ref); r > best {
			base, best = ref, r
		}
	}
	return base
}

func baseRank(ref string) int {
	switch ref {
	case "origin/main":
		return 4
	case "main":
		return 3
	case "origin/master":
		return 2
	case "master":
		return 1
	}
	return 0
}
