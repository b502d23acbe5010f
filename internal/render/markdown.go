package render

import (
	"fmt"
	"io"

	"github.com/mkchangelog/mkchangelog/internal/changelog"
	"github.com/mkchangelog/mkchangelog/internal/commit"
)

// markdown renders the changelog as a Markdown document: "#" headings for
// release groups, "##" for categories, "- " bulleted entries.
type markdown struct {
	opts    Options
	started bool
}

func (m *markdown) begin(w io.Writer, c *changelog.Changelog) error {
	m.started = false
	if c.Project == "" {
		return nil
	}
	m.started = true
	_, err := fmt.Fprintf(w, "# Changelog — %s\n", c.Project)
	return err
}

func (m *markdown) groupHeading(w io.Writer, g changelog.ReleaseGroup) error {
	sep := ""
	if m.started {
		sep = "\n"
	}
	m.started = true

	if g.IsUnreleased() {
		_, err := fmt.Fprintf(w, "%s# Unreleased\n", sep)
		return err
	}
	if g.Date.IsZero() {
		_, err := fmt.Fprintf(w, "%s# %s\n", sep, g.Version)
		return err
	}
	_, err := fmt.Fprintf(w, "%s# %s (%s)\n", sep, g.Version, g.Date.Format(dateLayout))
	return err
}

func (m *markdown) sectionBegin(w io.Writer, s changelog.Section) error {
	_, err := fmt.Fprintf(w, "\n## %s\n\n", s.Category)
	return err
}

func (m *markdown) entry(w io.Writer, c commit.Parsed) error {
	ref := "`" + c.Raw.ShortHash() + "`"
	if url := m.opts.CommitURL(c); url != "" {
		ref = fmt.Sprintf("[%s](%s)", ref, url)
	}

	marker := ""
	if c.Breaking {
		marker = "**BREAKING** "
	}

	_, err := fmt.Fprintf(w, "- [ %s ] %s%s [`%s`] (`%s`)\n",
		ref, marker, c.Description, c.Raw.Author, c.Raw.Date.Format(dateLayout))
	return err
}

func (m *markdown) sectionEnd(io.Writer) error { return nil }

func (m *markdown) groupEnd(io.Writer) error { return nil }

func (m *markdown) end(io.Writer, *changelog.Changelog) error { return nil }
