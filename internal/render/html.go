package render

import (
	"fmt"
	stdhtml "html"
	"io"

	"github.com/mkchangelog/mkchangelog/internal/changelog"
	"github.com/mkchangelog/mkchangelog/internal/commit"
)

// html renders the changelog as an HTML fragment carrying the same
// information content as the Markdown output: h1 headings for release
// groups, h2 for categories, list items for entries.
type html struct {
	opts Options
}

func (h *html) begin(w io.Writer, c *changelog.Changelog) error {
	if _, err := fmt.Fprintf(w, "<article class=\"changelog\">\n"); err != nil {
		return err
	}
	if c.Project != "" {
		_, err := fmt.Fprintf(w, "<header><h1>Changelog — %s</h1></header>\n", stdhtml.EscapeString(c.Project))
		return err
	}
	return nil
}

func (h *html) groupHeading(w io.Writer, g changelog.ReleaseGroup) error {
	if g.IsUnreleased() {
		_, err := fmt.Fprintf(w, "<section>\n<h1>Unreleased</h1>\n")
		return err
	}
	if g.Date.IsZero() {
		_, err := fmt.Fprintf(w, "<section>\n<h1>%s</h1>\n", stdhtml.EscapeString(g.Version))
		return err
	}
	_, err := fmt.Fprintf(w, "<section>\n<h1>%s <small>(%s)</small></h1>\n",
		stdhtml.EscapeString(g.Version), g.Date.Format(dateLayout))
	return err
}

func (h *html) sectionBegin(w io.Writer, s changelog.Section) error {
	_, err := fmt.Fprintf(w, "<h2>%s</h2>\n<ul>\n", stdhtml.EscapeString(string(s.Category)))
	return err
}

func (h *html) entry(w io.Writer, c commit.Parsed) error {
	ref := fmt.Sprintf("<code>%s</code>", stdhtml.EscapeString(c.Raw.ShortHash()))
	if url := h.opts.CommitURL(c); url != "" {
		ref = fmt.Sprintf("<a href=%q>%s</a>", url, ref)
	}

	marker := ""
	if c.Breaking {
		marker = "<strong>BREAKING</strong> "
	}

	_, err := fmt.Fprintf(w, "<li>[ %s ] %s%s [<code>%s</code>] (<code>%s</code>)</li>\n",
		ref, marker,
		stdhtml.EscapeString(c.Description),
		stdhtml.EscapeString(c.Raw.Author),
		c.Raw.Date.Format(dateLayout))
	return err
}

func (h *html) sectionEnd(w io.Writer) error {
	_, err := fmt.Fprintf(w, "</ul>\n")
	return err
}

func (h *html) groupEnd(w io.Writer) error {
	_, err := fmt.Fprintf(w, "</section>\n")
	return err
}

func (h *html) end(w io.Writer, _ *changelog.Changelog) error {
	_, err := fmt.Fprintf(w, "</article>\n")
	return err
}
