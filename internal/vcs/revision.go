// Package vcs reads version control metadata for the project directory.
package vcs

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNotRepository is returned when the directory is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// Revision identifies the commit a build was produced from.
type Revision struct {
	Commit string
	// Branch is empty for a detached HEAD.
	Branch string
}

// Short returns the abbreviated commit hash.
func (r Revision) Short() string {
	if len(r.Commit) > 8 {
		return r.Commit[:8]
	}
	return r.Commit
}

// IsZero reports whether no revision was found.
func (r Revision) IsZero() bool { return r.Commit == "" }

// Head resolves HEAD of the repository containing dir. Parent directories are
// searched for the .git directory.
func Head(dir string) (Revision, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return Revision{}, ErrNotRepository
		}
		return Revision{}, fmt.Errorf("open repository: %w", err)
	}
	ref, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// Fresh repository without commits.
			return Revision{}, nil
		}
		return Revision{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	rev := Revision{Commit: ref.Hash().String()}
	if ref.Name().IsBranch() {
		rev.Branch = ref.Name().Short()
	}
	return rev, nil
}
