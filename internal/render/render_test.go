package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkchangelog/mkchangelog/internal/changelog"
	"github.com/mkchangelog/mkchangelog/internal/commit"
)

func entry(hash, author, typ, desc string, breaking bool, date time.Time) commit.Parsed {
	return commit.Parsed{
		Header: commit.Header{Type: typ, Description: desc, Breaking: breaking},
		Raw:    commit.Record{Hash: hash, Author: author, Date: date},
	}
}

func sampleChangelog() *changelog.Changelog {
	oct22 := time.Date(2019, 10, 22, 0, 0, 0, 0, time.UTC)
	oct14 := time.Date(2019, 10, 14, 0, 0, 0, 0, time.UTC)

	return &changelog.Changelog{
		Groups: []changelog.ReleaseGroup{
			{
				Sections: []changelog.Section{
					{
						Category: "Features",
						Commits: []commit.Parsed{
							entry("dd867ce19b3e0e688c413ed8e0eee5cf9bba4bdc", "Florentin Dubois",
								"feat", "implements html output", false, oct22),
						},
					},
					{
						Category: "Chore tasks",
						Commits: []commit.Parsed{
							entry("b412888bd673b2e96c2fc6a397e5cbeb15678acf", "Florentin Dubois",
								"chore", "generate changelog", false, oct14),
						},
					},
				},
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]struct {
		name    string
		want    Format
		wantErr bool
	}{
		"markdown":        {name: "markdown", want: FormatMarkdown},
		"md alias":        {name: "md", want: FormatMarkdown},
		"html":            {name: "html", want: FormatHTML},
		"case insensitive": {name: "HTML", want: FormatHTML},
		"padded":          {name: " markdown ", want: FormatMarkdown},
		"unknown":         {name: "pdf", wantErr: true},
		"empty":           {name: "", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	var b strings.Builder
	err := Render(sampleChangelog(), Format("pdf"), &b, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRenderMarkdownUnreleasedExample(t *testing.T) {
	out, err := RenderString(sampleChangelog(), FormatMarkdown, Options{})
	require.NoError(t, err)

	assert.Contains(t, out, "# Unreleased")
	assert.Contains(t, out, "## Features")
	assert.Contains(t, out, "## Chore tasks")
	assert.Contains(t, out, "- [ `dd867ce` ] implements html output [`Florentin Dubois`] (`2019-10-22`)")
	assert.Contains(t, out, "- [ `b412888` ] generate changelog [`Florentin Dubois`] (`2019-10-14`)")

	// Features renders before Chore tasks, per table order.
	assert.Less(t, strings.Index(out, "## Features"), strings.Index(out, "## Chore tasks"))
}

func TestRenderMarkdownLinksAndVersions(t *testing.T) {
	c := &changelog.Changelog{
		Project: "widget",
		Groups: []changelog.ReleaseGroup{
			{
				Version: "v1.0.0",
				Date:    time.Date(2019, 11, 2, 0, 0, 0, 0, time.UTC),
				Sections: []changelog.Section{
					{
						Category: "Fixes",
						Commits: []commit.Parsed{
							entry("b412888bd673b2e96c2fc6a397e5cbeb15678acf", "Florentin Dubois",
								"fix", "handle empty scope", true, time.Date(2019, 11, 1, 0, 0, 0, 0, time.UTC)),
						},
					},
				},
			},
		},
	}
	opts := Options{LinkLayout: "https://github.com/acme/widget/commit/{hash}"}

	out, err := RenderString(c, FormatMarkdown, opts)
	require.NoError(t, err)

	assert.Contains(t, out, "# Changelog — widget")
	assert.Contains(t, out, "# v1.0.0 (2019-11-02)")
	// Full hash in the link, short hash displayed.
	assert.Contains(t, out, "[`b412888`](https://github.com/acme/widget/commit/b412888bd673b2e96c2fc6a397e5cbeb15678acf)")
	assert.Contains(t, out, "**BREAKING** handle empty scope")
}

func TestRenderVersionWithoutDate(t *testing.T) {
	c := &changelog.Changelog{
		Groups: []changelog.ReleaseGroup{
			{
				Version: "v0.3.0",
				Sections: []changelog.Section{
					{
						Category: "Fixes",
						Commits: []commit.Parsed{
							entry("abc1234", "Dev", "fix", "patch things", false,
								time.Date(2019, 11, 1, 0, 0, 0, 0, time.UTC)),
						},
					},
				},
			},
		},
	}

	md, err := RenderString(c, FormatMarkdown, Options{})
	require.NoError(t, err)
	assert.Contains(t, md, "# v0.3.0\n")
	assert.NotContains(t, md, "0001-01-01")

	html, err := RenderString(c, FormatHTML, Options{})
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>v0.3.0</h1>")
	assert.NotContains(t, html, "0001-01-01")
}

func TestRenderHTML(t *testing.T) {
	out, err := RenderString(sampleChangelog(), FormatHTML, Options{LinkLayout: "https://example.com/c/{hash}"})
	require.NoError(t, err)

	assert.Contains(t, out, "<h1>Unreleased</h1>")
	assert.Contains(t, out, "<h2>Features</h2>")
	assert.Contains(t, out, "<h2>Chore tasks</h2>")
	assert.Contains(t, out, `<a href="https://example.com/c/dd867ce19b3e0e688c413ed8e0eee5cf9bba4bdc"><code>dd867ce</code></a>`)
	assert.Contains(t, out, "implements html output")
	assert.Contains(t, out, "<code>Florentin Dubois</code>")

	// Balanced structure tags.
	assert.Equal(t, strings.Count(out, "<section>"), strings.Count(out, "</section>"))
	assert.Equal(t, strings.Count(out, "<ul>"), strings.Count(out, "</ul>"))
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	c := &changelog.Changelog{
		Groups: []changelog.ReleaseGroup{
			{
				Sections: []changelog.Section{
					{
						Category: "Features",
						Commits: []commit.Parsed{
							entry("abc1234", "A <Script> Kid", "feat", "support <b> & friends", false, time.Now()),
						},
					},
				},
			},
		},
	}

	out, err := RenderString(c, FormatHTML, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "support &lt;b&gt; &amp; friends")
	assert.Contains(t, out, "A &lt;Script&gt; Kid")
	assert.NotContains(t, out, "<b>")
}

func TestRenderHTMLBreakingMarker(t *testing.T) {
	c := &changelog.Changelog{
		Groups: []changelog.ReleaseGroup{
			{
				Sections: []changelog.Section{
					{
						Category: "Fixes",
						Commits: []commit.Parsed{
							entry("abc1234", "Dev", "fix", "drop old API", true, time.Now()),
						},
					},
				},
			},
		},
	}

	out, err := RenderString(c, FormatHTML, Options{})
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>BREAKING</strong> drop old API")
}

func TestRenderIsDeterministic(t *testing.T) {
	for _, format := range []Format{FormatMarkdown, FormatHTML} {
		first, err := RenderString(sampleChangelog(), format, Options{})
		require.NoError(t, err)
		second, err := RenderString(sampleChangelog(), format, Options{})
		require.NoError(t, err)
		assert.Equal(t, first, second, "format %s", format)
	}
}

func TestFormatTerminalPlain(t *testing.T) {
	var b strings.Builder
	err := FormatTerminal(sampleChangelog(), &b, TerminalOptions{Plain: true, MaxWidth: 120})
	require.NoError(t, err)

	out := b.String()
	assert.Contains(t, out, "Unreleased")
	assert.Contains(t, out, "Features")
	assert.Contains(t, out, "dd867ce implements html output")
	assert.Contains(t, out, "[Florentin Dubois] (2019-10-22)")
}

func TestWrapText(t *testing.T) {
	tests := map[string]struct {
		text     string
		maxWidth int
		want     string
	}{
		"short text unchanged": {
			text:     "short",
			maxWidth: 80,
			want:     "short",
		},
		"wraps at space": {
			text:     "aaa bbb ccc",
			maxWidth: 7,
			want:     "aaa\n    bbb ccc",
		},
		"zero width unchanged": {
			text:     "anything at all",
			maxWidth: 0,
			want:     "anything at all",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.text, tt.maxWidth, "    "))
		})
	}
}
