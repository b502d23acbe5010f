// Package render turns a changelog model into a text document. Format
// polymorphism is a capability interface with one method per structural
// element (group heading, category heading, entry), implemented once per
// format, so the rest of the pipeline stays format-agnostic.
//
// Rendering is pure: it walks the model, writes to the supplied writer,
// and performs no other I/O. Malformed input cannot reach this stage, so
// the only failure modes are an unknown format and writer errors.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mkchangelog/mkchangelog/internal/changelog"
	"github.com/mkchangelog/mkchangelog/internal/commit"
)

// Format selects the output document type.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ErrUnknownFormat is returned when rendering is requested in an
// unsupported format. There is no sensible default, so this is the one
// condition that fails a generation run outright.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat normalizes a format name. "md" is accepted as an alias for
// markdown, "htm" for html.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: markdown, html)", ErrUnknownFormat, name)
	}
}

// Options carries rendering knobs shared by all formats.
type Options struct {
	// LinkLayout is a commit URL template with a {hash} placeholder,
	// e.g. "https://github.com/acme/widget/commit/{hash}". When empty,
	// hashes render without links.
	LinkLayout string
}

// CommitURL expands the link layout for a commit. Returns "" when no
// layout is configured.
func (o Options) CommitURL(c commit.Parsed) string {
	if o.LinkLayout == "" {
		return ""
	}
	return strings.ReplaceAll(o.LinkLayout, "{hash}", c.Raw.Hash)
}

// formatter is the per-format capability interface. Each method emits one
// structural element of the document.
type formatter interface {
	begin(w io.Writer, c *changelog.Changelog) error
	groupHeading(w io.Writer, g changelog.ReleaseGroup) error
	sectionBegin(w io.Writer, s changelog.Section) error
	entry(w io.Writer, c commit.Parsed) error
	sectionEnd(w io.Writer) error
	groupEnd(w io.Writer) error
	end(w io.Writer, c *changelog.Changelog) error
}

// Render writes the changelog to w in the requested format. Groups render
// in model order (most recent first), sections in table order, entries in
// group order. Identical input always produces byte-identical output.
func Render(c *changelog.Changelog, format Format, w io.Writer, opts Options) error {
	f, err := newFormatter(format, opts)
	if err != nil {
		return err
	}
	return walk(c, f, w)
}

// RenderString is a convenience wrapper rendering to a string.
func RenderString(c *changelog.Changelog, format Format, opts Options) (string, error) {
	var b strings.Builder
	if err := Render(c, format, &b, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

func newFormatter(format Format, opts Options) (formatter, error) {
	switch format {
	case FormatMarkdown:
		return &markdown{opts: opts}, nil
	case FormatHTML:
		return &html{opts: opts}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// walk drives any formatter over the model in document order.
func walk(c *changelog.Changelog, f formatter, w io.Writer) error {
	if err := f.begin(w, c); err != nil {
		return err
	}

	for _, g := range c.Groups {
		if err := f.groupHeading(w, g); err != nil {
			return fmt.Errorf("rendering group %s: %w", g.Label(), err)
		}
		for _, s := range g.Sections {
			if err := f.sectionBegin(w, s); err != nil {
				return err
			}
			for _, entry := range s.Commits {
				if err := f.entry(w, entry); err != nil {
					return err
				}
			}
			if err := f.sectionEnd(w); err != nil {
				return err
			}
		}
		if err := f.groupEnd(w); err != nil {
			return err
		}
	}

	return f.end(w, c)
}

// dateLayout is the date format used in headings and entries.
const dateLayout = "2006-01-02"
