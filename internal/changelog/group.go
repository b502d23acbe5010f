package changelog

import (
	"fmt"
	"time"

	"github.com/mkchangelog/mkchangelog/internal/commit"
)

// Boundary marks where one release's commit range ends and the next
// begins: the commit a version tag points at. Boundaries are supplied
// newest first.
type Boundary struct {
	Version string
	Hash    string
	Date    time.Time
}

// GroupOptions tunes grouping policy.
type GroupOptions struct {
	// StrictKinds drops commits whose type token has no table entry
	// instead of pooling them under Uncategorized.
	StrictKinds bool
	// StrictBoundaries makes a boundary referencing an unknown commit
	// hash an error. The default is lenient: a dangling boundary is
	// treated as the end of history and collects everything from its
	// position down to the oldest commit.
	StrictBoundaries bool
}

// Group partitions parsed commits into release groups at the supplied
// boundaries, then into category sections via the table. Commits must
// arrive in reverse-chronological order; that order is preserved inside
// every section. With no boundaries, all commits form a single
// "Unreleased" group. Empty sections and empty groups are omitted.
//
// Grouping is deterministic: the same commits, boundaries and table
// always produce identical orderings.
func Group(commits []commit.Parsed, boundaries []Boundary, table *Table, opts GroupOptions) (*Changelog, error) {
	if table == nil {
		table = DefaultTable()
	}

	present := make(map[string]bool, len(commits))
	for _, c := range commits {
		present[c.Raw.Hash] = true
	}
	if opts.StrictBoundaries {
		for _, b := range boundaries {
			if !present[b.Hash] {
				return nil, fmt.Errorf("boundary %q references unknown commit %s", b.Version, b.Hash)
			}
		}
	}

	out := &Changelog{}

	current := ReleaseGroup{} // unreleased until the first boundary hash
	var pending []commit.Parsed
	flush := func() {
		current.Sections = sectionize(pending, table, opts)
		if !current.IsEmpty() {
			out.Groups = append(out.Groups, current)
		}
		pending = nil
	}

	next := 0
	for _, c := range commits {
		// A dangling boundary never matches any commit; treat it as the
		// end of history so it takes over from here to the oldest commit
		// (or until a later boundary matches).
		for next < len(boundaries) && !present[boundaries[next].Hash] {
			flush()
			current = ReleaseGroup{Version: boundaries[next].Version, Date: boundaries[next].Date}
			next++
		}

		if next < len(boundaries) && c.Raw.Hash == boundaries[next].Hash {
			flush()
			current = ReleaseGroup{Version: boundaries[next].Version, Date: boundaries[next].Date}
			next++
		}

		pending = append(pending, c)
	}
	flush()

	return out, nil
}

// sectionize splits a group's commits into category sections, keeping the
// table's category order and the commits' input order.
func sectionize(commits []commit.Parsed, table *Table, opts GroupOptions) []Section {
	byCategory := make(map[Category][]commit.Parsed)
	for _, c := range commits {
		if opts.StrictKinds && !table.Known(c.Type) {
			continue
		}
		cat := table.Classify(c.Type)
		byCategory[cat] = append(byCategory[cat], c)
	}

	var sections []Section
	for _, cat := range table.Categories() {
		if cs := byCategory[cat]; len(cs) > 0 {
			sections = append(sections, Section{Category: cat, Commits: cs})
		}
	}
	return sections
}
