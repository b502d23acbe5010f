package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/mkchangelog/mkchangelog/internal/changelog"
	"github.com/mkchangelog/mkchangelog/internal/commit"
)

// TerminalOptions controls the terminal preview formatting.
type TerminalOptions struct {
	Plain    bool // Disable colors
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

var (
	headerStyle   = color.New(color.Bold)
	categoryStyle = color.New(color.FgCyan, color.Bold)
	hashStyle     = color.New(color.FgYellow)
	breakingStyle = color.New(color.FgRed, color.Bold)
	metaStyle     = color.New(color.Faint)
)

// FormatTerminal writes a color-highlighted preview of the changelog to w.
// It carries the same structure as the document renderers but targets a
// human reading a terminal, not a file: bold version headers, colored
// category names, dimmed author/date metadata, wrapped descriptions.
func FormatTerminal(c *changelog.Changelog, w io.Writer, opts TerminalOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i, g := range c.Groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := writeGroupHeader(g, w, opts); err != nil {
			return fmt.Errorf("formatting group %s: %w", g.Label(), err)
		}
		for _, s := range g.Sections {
			if err := writeSection(s, w, opts, width); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeGroupHeader(g changelog.ReleaseGroup, w io.Writer, opts TerminalOptions) error {
	header := g.Label()
	if !g.IsUnreleased() && !g.Date.IsZero() {
		header = fmt.Sprintf("%s (%s)", g.Label(), g.Date.Format(dateLayout))
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s\n", header)
		return err
	}
	_, err := fmt.Fprintf(w, "%s\n", headerStyle.Sprint(header))
	return err
}

func writeSection(s changelog.Section, w io.Writer, opts TerminalOptions, width int) error {
	if opts.Plain {
		if _, err := fmt.Fprintf(w, "\n%s\n", s.Category); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "\n%s\n", categoryStyle.Sprint(string(s.Category))); err != nil {
			return err
		}
	}

	for _, c := range s.Commits {
		if err := writePreviewEntry(c, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

func writePreviewEntry(c commit.Parsed, w io.Writer, opts TerminalOptions, width int) error {
	const prefix = "  - "

	desc := wrapText(c.Description, width-len(prefix), "    ")
	meta := fmt.Sprintf("[%s] (%s)", c.Raw.Author, c.Raw.Date.Format(dateLayout))

	if opts.Plain {
		marker := ""
		if c.Breaking {
			marker = "BREAKING "
		}
		_, err := fmt.Fprintf(w, "%s%s %s%s %s\n", prefix, c.Raw.ShortHash(), marker, desc, meta)
		return err
	}

	marker := ""
	if c.Breaking {
		marker = breakingStyle.Sprint("BREAKING") + " "
	}
	_, err := fmt.Fprintf(w, "%s%s %s%s %s\n",
		prefix, hashStyle.Sprint(c.Raw.ShortHash()), marker, desc, metaStyle.Sprint(meta))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for
// continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}
		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
