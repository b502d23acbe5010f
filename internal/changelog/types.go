// Package changelog holds the changelog model and the classification and
// grouping stages of the pipeline: parsed commits are mapped to categories
// through an ordered type table, then partitioned into release groups at
// version boundaries. Every stage is a pure transformation over immutable
// inputs; rendering lives in the render package.
package changelog

import (
	"time"

	"github.com/mkchangelog/mkchangelog/internal/commit"
)

// Category is a human-facing grouping label (e.g. "Features") derived
// from a commit's type token.
type Category string

// Uncategorized is the catch-all category for type tokens absent from the
// table. It always renders last.
const Uncategorized Category = "Uncategorized"

// Section is one category's commits within a release group, ordered most
// recent first. Sections with zero commits are never materialized.
type Section struct {
	Category Category
	Commits  []commit.Parsed
}

// ReleaseGroup is the set of commits between two version boundaries.
// An empty Version means "Unreleased": commits since the last tagged
// release. Sections appear in table order.
type ReleaseGroup struct {
	Version  string
	Date     time.Time
	Sections []Section
}

// IsUnreleased reports whether this group holds commits newer than the
// newest version boundary.
func (g ReleaseGroup) IsUnreleased() bool {
	return g.Version == ""
}

// Label returns the heading text for this group.
func (g ReleaseGroup) Label() string {
	if g.IsUnreleased() {
		return "Unreleased"
	}
	return g.Version
}

// IsEmpty reports whether the group has no commits in any section.
func (g ReleaseGroup) IsEmpty() bool {
	return len(g.Sections) == 0
}

// Count returns the total number of commits across all sections.
func (g ReleaseGroup) Count() int {
	n := 0
	for _, s := range g.Sections {
		n += len(s.Commits)
	}
	return n
}

// Changelog is an ordered sequence of release groups, most recent first.
// It is built once per generation run and discarded after rendering.
type Changelog struct {
	Project string
	Groups  []ReleaseGroup
}

// Count returns the total number of commits across all groups.
func (c *Changelog) Count() int {
	n := 0
	for _, g := range c.Groups {
		n += g.Count()
	}
	return n
}
