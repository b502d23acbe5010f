// Package history reads commit records and version boundaries out of a
// git repository using go-git. It is the version-control collaborator of
// the pipeline: everything downstream works on plain records and never
// touches the repository.
package history

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/mkchangelog/mkchangelog/internal/changelog"
	"github.com/mkchangelog/mkchangelog/internal/commit"
)

// debugLogger is a function that logs debug messages when debug mode is
// enabled. By default it's a no-op. Set it via SetDebugLogger.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for history operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Repository wraps an opened git repository.
type Repository struct {
	repo *git.Repository
	path string
}

// Open opens the git repository at path, traversing up the directory tree
// to find the repository root. An empty path means the current working
// directory.
func Open(path string) (*Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[history] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return &Repository{repo: repo, path: path}, nil
}

// WalkOptions tunes the commit walk.
type WalkOptions struct {
	// Range restricts the walk to "from..to". Both sides are revisions
	// (tag, branch, hash). Empty means HEAD down to the root commit.
	Range string
	// KeepMerges retains merge commits. The default drops commits with
	// more than one parent and the "Merge pull request"/"Merge branch"
	// message forms, which carry no conventional-commit structure.
	KeepMerges bool
}

// Commits walks the history newest-first and returns one record per
// commit. The walk honors ctx cancellation between commits.
func (r *Repository) Commits(ctx context.Context, opts WalkOptions) ([]commit.Record, error) {
	from, stop, err := r.resolveRange(opts.Range)
	if err != nil {
		return nil, err
	}

	iter, err := r.repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return nil, fmt.Errorf("walking commit history: %w", err)
	}
	defer iter.Close()

	var records []commit.Record
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if stop != plumbing.ZeroHash && c.Hash == stop {
			return storer.ErrStop
		}

		if !opts.KeepMerges && isMerge(c) {
			logDebug("[history] skipping merge commit %s", c.Hash.String()[:7])
			return nil
		}

		records = append(records, commit.Record{
			Hash:    c.Hash.String(),
			Author:  authorOf(c),
			Date:    c.Author.When.UTC(),
			Message: c.Message,
		})
		return nil
	})
	if err != nil && err != storer.ErrStop {
		return nil, fmt.Errorf("walking commit history: %w", err)
	}

	logDebug("[history] collected %d commit records", len(records))
	return records, nil
}

// resolveRange turns an optional "from..to" range into a walk start hash
// and an exclusive stop hash. Without a range the walk starts at HEAD.
func (r *Repository) resolveRange(rng string) (from, stop plumbing.Hash, err error) {
	if rng == "" {
		head, err := r.repo.Head()
		if err != nil {
			return plumbing.ZeroHash, plumbing.ZeroHash, fmt.Errorf("getting HEAD reference: %w", err)
		}
		return head.Hash(), plumbing.ZeroHash, nil
	}

	lower, upper, found := strings.Cut(rng, "..")
	if !found || lower == "" || upper == "" {
		return plumbing.ZeroHash, plumbing.ZeroHash, fmt.Errorf("invalid revision range %q (expected: from..to)", rng)
	}

	upperHash, err := r.repo.ResolveRevision(plumbing.Revision(upper))
	if err != nil {
		return plumbing.ZeroHash, plumbing.ZeroHash, fmt.Errorf("resolving revision %q: %w", upper, err)
	}
	lowerHash, err := r.repo.ResolveRevision(plumbing.Revision(lower))
	if err != nil {
		return plumbing.ZeroHash, plumbing.ZeroHash, fmt.Errorf("resolving revision %q: %w", lower, err)
	}

	return *upperHash, *lowerHash, nil
}

// isMerge reports whether the commit is a merge: more than one parent, or
// the GitHub/git merge message forms.
func isMerge(c *object.Commit) bool {
	if c.NumParents() > 1 {
		return true
	}
	return strings.HasPrefix(c.Message, "Merge pull request") ||
		strings.HasPrefix(c.Message, "Merge branch")
}

// authorOf returns the commit author name, falling back to the committer
// when the author is unset.
func authorOf(c *object.Commit) string {
	if c.Author.Name != "" {
		return c.Author.Name
	}
	return c.Committer.Name
}

// Boundaries resolves every tag (annotated and lightweight) to its target
// commit and returns the version boundaries newest-first by commit date.
// Tags that do not point at commits are skipped.
func (r *Repository) Boundaries() ([]changelog.Boundary, error) {
	tags, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer tags.Close()

	var boundaries []changelog.Boundary
	err = tags.ForEach(func(ref *plumbing.Reference) error {
		target, err := r.resolveTagCommit(ref)
		if err != nil {
			logDebug("[history] skipping tag %s: %v", ref.Name().Short(), err)
			return nil
		}

		boundaries = append(boundaries, changelog.Boundary{
			Version: ref.Name().Short(),
			Hash:    target.Hash.String(),
			Date:    target.Author.When.UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	sort.SliceStable(boundaries, func(i, j int) bool {
		return boundaries[i].Date.After(boundaries[j].Date)
	})

	logDebug("[history] resolved %d version boundaries", len(boundaries))
	return boundaries, nil
}

// resolveTagCommit resolves a tag reference to the commit it points at,
// peeling annotated tag objects.
func (r *Repository) resolveTagCommit(ref *plumbing.Reference) (*object.Commit, error) {
	if tag, err := r.repo.TagObject(ref.Hash()); err == nil {
		return tag.Commit()
	}
	return r.repo.CommitObject(ref.Hash())
}
