package config

import (
	"strings"

	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"

	"github.com/mkchangelog/mkchangelog/internal/changelog"
)

// GetDefaults returns the default configuration values as koanf keys.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"project":           "",
		"repository":        ".",
		"range":             "",
		"link":              "",
		"format":            "markdown",
		"output":            "",
		"strict_kinds":      false,
		"strict_boundaries": false,
		"keep_merges":       false,
	}
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// GetDefaultConfigTemplate returns a commented starter config written by
// `mkchangelog init`. The kinds table is marshaled from the built-in
// defaults, so the starter file always matches the active table.
func GetDefaultConfigTemplate() string {
	var b strings.Builder
	b.WriteString(`# mkchangelog configuration
# Values can be overridden with MKCHANGELOG_* environment variables.

project: ""                  # Project name shown in the document header
repository: "."              # Path to the git repository
range: ""                    # Optional revision range, e.g. "v1.0.0..HEAD"
link: ""                     # Commit URL layout, e.g. "https://github.com/acme/widget/commit/{hash}"
format: markdown             # Output format: markdown | html
output: ""                   # Output file (empty = stdout)

strict_kinds: false          # Drop commits with unknown types instead of "Uncategorized"
strict_boundaries: false     # Fail on tags pointing at unknown commits
keep_merges: false           # Keep merge commits in the history walk

# scopes:                    # Keep only commits with these scopes
#   - parser
#   - renderer

# Ordered type -> category table. Entries replace the built-in table
# wholesale, and their order decides the render order.
`)

	defaults := changelog.DefaultKinds()
	kinds := make([]KindMapping, 0, len(defaults))
	for _, k := range defaults {
		kinds = append(kinds, KindMapping{Type: k.Type, Category: string(k.Category)})
	}
	data, err := yaml.Marshal(map[string][]KindMapping{"kinds": kinds})
	if err != nil {
		return b.String()
	}
	b.Write(data)

	return b.String()
}
