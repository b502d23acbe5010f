package commit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		message string
		wantOK  bool
		want    Header
	}{
		"plain type": {
			message: "feat: add html output",
			wantOK:  true,
			want:    Header{Type: "feat", Description: "add html output"},
		},
		"type with scope": {
			message: "feat(parser): implements html output",
			wantOK:  true,
			want:    Header{Type: "feat", Scope: "parser", Description: "implements html output"},
		},
		"scope and breaking marker": {
			message: "fix(api)!: drop legacy endpoint",
			wantOK:  true,
			want:    Header{Type: "fix", Scope: "api", Breaking: true, Description: "drop legacy endpoint"},
		},
		"breaking without scope": {
			message: "refactor!: rename public types",
			wantOK:  true,
			want:    Header{Type: "refactor", Breaking: true, Description: "rename public types"},
		},
		"empty parens mean no scope": {
			message: "feat(): tweak defaults",
			wantOK:  true,
			want:    Header{Type: "feat", Scope: "", Description: "tweak defaults"},
		},
		"type with digits and dash": {
			message: "chore-2: rotate keys",
			wantOK:  true,
			want:    Header{Type: "chore-2", Description: "rotate keys"},
		},
		"only first line is structured": {
			message: "feat: one\n\nlong body\nwith lines",
			wantOK:  true,
			want:    Header{Type: "feat", Description: "one"},
		},
		"extra leading whitespace in description": {
			message: "docs:    align readme",
			wantOK:  true,
			want:    Header{Type: "docs", Description: "align readme"},
		},
		"no colon": {
			message: "update stuff",
			wantOK:  false,
		},
		"no space after colon rejected": {
			message: "feat:compact description",
			wantOK:  false,
		},
		"bare colon at end rejected": {
			message: "feat:",
			wantOK:  false,
		},
		"uppercase type rejected": {
			message: "Feat: add thing",
			wantOK:  false,
		},
		"type with space rejected": {
			message: "random words: here",
			wantOK:  false,
		},
		"unclosed scope rejected": {
			message: "feat(parser: broken",
			wantOK:  false,
		},
		"empty type rejected": {
			message: ": just a description",
			wantOK:  false,
		},
		"empty message": {
			message: "",
			wantOK:  false,
		},
		"merge style message": {
			message: "Merge branch 'main' into dev",
			wantOK:  false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := Parse(tt.message)
			if !tt.wantOK {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIsDeterministic(t *testing.T) {
	msg := "feat(parser)!: implements html output"
	first, ok1 := Parse(msg)
	second, ok2 := Parse(msg)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestParseRecord(t *testing.T) {
	rec := Record{
		Hash:    "dd867ce19b3e0e688c413ed8e0eee5cf9bba4bdc",
		Author:  "Florentin Dubois",
		Date:    time.Date(2019, 10, 22, 0, 0, 0, 0, time.UTC),
		Message: "feat(parser): implements html output\n\ncloses #12",
	}

	p, ok := ParseRecord(rec)
	require.True(t, ok)
	assert.Equal(t, "feat", p.Type)
	assert.Equal(t, "parser", p.Scope)
	assert.Equal(t, "implements html output", p.Description)
	assert.Equal(t, "\ncloses #12", p.Body)
	assert.Equal(t, rec, p.Raw)
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "dd867ce", Record{Hash: "dd867ce19b3e0e688c413ed8e0eee5cf9bba4bdc"}.ShortHash())
	assert.Equal(t, "abc", Record{Hash: "abc"}.ShortHash())
}

func TestParseAll(t *testing.T) {
	records := []Record{
		{Hash: "a1", Message: "feat: first"},
		{Hash: "a2", Message: "not conventional"},
		{Hash: "a3", Message: "fix(core): second"},
	}

	parsed, skipped := ParseAll(records)
	require.Len(t, parsed, 2)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, "a1", parsed[0].Raw.Hash)
	assert.Equal(t, "a3", parsed[1].Raw.Hash)
}

func TestParseAllPreservesOrderWhenParallel(t *testing.T) {
	records := make([]Record, 0, 4*parallelThreshold)
	wantSkipped := 0
	for i := 0; i < 4*parallelThreshold; i++ {
		msg := fmt.Sprintf("feat: change %d", i)
		if i%5 == 0 {
			msg = fmt.Sprintf("unstructured %d", i)
			wantSkipped++
		}
		records = append(records, Record{Hash: fmt.Sprintf("h%d", i), Message: msg})
	}

	parsed, skipped := ParseAll(records)
	assert.Equal(t, wantSkipped, skipped)

	prev := -1
	for _, p := range parsed {
		var idx int
		_, err := fmt.Sscanf(p.Raw.Hash, "h%d", &idx)
		require.NoError(t, err)
		assert.Greater(t, idx, prev, "output order must equal input order")
		prev = idx
	}
}

func TestParseAllEmpty(t *testing.T) {
	parsed, skipped := ParseAll(nil)
	assert.Nil(t, parsed)
	assert.Zero(t, skipped)
}
