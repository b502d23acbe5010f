package changelog

// Kind maps one conventional-commit type token to the category it renders
// under. The table is data, not logic: adding a category is a new entry.
type Kind struct {
	Type     string
	Category Category
}

// Table is the ordered type→category lookup. Order is significant twice
// over: it decides which category renders first, and it is the single
// source of truth for which categories exist.
type Table struct {
	kinds []Kind
	index map[string]Category
}

// NewTable builds a table from an ordered kind list. Later entries for a
// duplicate type token win, matching layered configuration semantics.
func NewTable(kinds []Kind) *Table {
	t := &Table{
		kinds: make([]Kind, len(kinds)),
		index: make(map[string]Category, len(kinds)),
	}
	copy(t.kinds, kinds)
	for _, k := range kinds {
		t.index[k.Type] = k.Category
	}
	return t
}

// DefaultKinds returns the built-in type table in render order.
func DefaultKinds() []Kind {
	return []Kind{
		{Type: "feat", Category: "Features"},
		{Type: "fix", Category: "Fixes"},
		{Type: "perf", Category: "Performance improvements"},
		{Type: "refactor", Category: "Refactoring"},
		{Type: "docs", Category: "Documentation"},
		{Type: "style", Category: "Style changes"},
		{Type: "test", Category: "Tests"},
		{Type: "build", Category: "Build system"},
		{Type: "ci", Category: "Continuous integration"},
		{Type: "chore", Category: "Chore tasks"},
		{Type: "deps", Category: "Dependency updates"},
	}
}

// DefaultTable returns a table over DefaultKinds.
func DefaultTable() *Table {
	return NewTable(DefaultKinds())
}

// Classify maps a type token to its category. Matching is exact and
// case-sensitive on the lowercase-normalized token; scope never affects
// classification. Unknown tokens map to Uncategorized.
func (t *Table) Classify(typ string) Category {
	if c, ok := t.index[typ]; ok {
		return c
	}
	return Uncategorized
}

// Known reports whether the type token has a table entry.
func (t *Table) Known(typ string) bool {
	_, ok := t.index[typ]
	return ok
}

// Kinds returns the table entries in render order.
func (t *Table) Kinds() []Kind {
	out := make([]Kind, len(t.kinds))
	copy(out, t.kinds)
	return out
}

// Categories returns the distinct categories in render order, with
// Uncategorized appended last.
func (t *Table) Categories() []Category {
	seen := make(map[Category]bool, len(t.kinds))
	out := make([]Category, 0, len(t.kinds)+1)
	for _, k := range t.kinds {
		if !seen[k.Category] {
			seen[k.Category] = true
			out = append(out, k.Category)
		}
	}
	return append(out, Uncategorized)
}
