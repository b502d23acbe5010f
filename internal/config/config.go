// Package config provides layered configuration management for mkchangelog
// using koanf. Values are loaded with priority: environment variables >
// config file > defaults. Config files may be YAML, TOML or JSON; the
// parser is chosen by file extension.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/mkchangelog/mkchangelog/internal/changelog"
	"github.com/mkchangelog/mkchangelog/internal/errors"
)

// envPrefix is the environment variable prefix for overrides,
// e.g. MKCHANGELOG_FORMAT=html.
const envPrefix = "MKCHANGELOG_"

// defaultConfigNames are the project config files probed, in order, when
// no explicit path is given.
var defaultConfigNames = []string{
	".changelog.yml",
	".changelog.yaml",
	".changelog.toml",
	".changelog.json",
	"changelog.toml",
}

// KindMapping is one ordered type→category entry of the kinds table.
type KindMapping struct {
	Type     string `koanf:"type"`
	Category string `koanf:"category"`
}

// Configuration describes one generation run.
type Configuration struct {
	// Project is the display name used in the document header.
	Project string `koanf:"project"`

	// Repository is the path to the git repository (default: ".").
	Repository string `koanf:"repository"`

	// Range restricts the walk to a "from..to" revision range.
	Range string `koanf:"range"`

	// Link is a commit URL layout with a {hash} placeholder,
	// e.g. "https://github.com/acme/widget/commit/{hash}".
	Link string `koanf:"link"`

	// Scopes, when non-empty, keeps only commits whose scope is listed.
	// Scope never affects classification, only this filter.
	Scopes []string `koanf:"scopes"`

	// Kinds is the ordered type→category table. Empty means the built-in
	// table; entries replace it wholesale, they do not merge.
	Kinds []KindMapping `koanf:"kinds"`

	// Format selects the output document type: markdown or html.
	Format string `koanf:"format"`

	// Output is the file the rendered document is written to.
	// Empty means stdout.
	Output string `koanf:"output"`

	// StrictKinds drops commits with unknown type tokens instead of
	// pooling them under Uncategorized.
	StrictKinds bool `koanf:"strict_kinds"`

	// StrictBoundaries turns a version boundary referencing an unknown
	// commit into an error instead of degrading gracefully.
	StrictBoundaries bool `koanf:"strict_boundaries"`

	// KeepMerges retains merge commits in the walk.
	KeepMerges bool `koanf:"keep_merges"`
}

// Load reads configuration from the given file path (or the first default
// config file found when path is empty) and applies environment overrides.
// A missing config file is not an error; defaults apply.
func Load(path string) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	resolved, explicit := resolveConfigPath(path)
	if resolved != "" {
		if err := loadFile(k, resolved); err != nil {
			return nil, err
		}
	} else if explicit {
		return nil, errors.ConfigNotFound(path)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath returns the config file to load and whether the path
// was explicitly requested. An explicit path that does not exist is the
// caller's error; a missing default file just means defaults.
func resolveConfigPath(path string) (resolved string, explicit bool) {
	if path != "" {
		if fileExists(path) {
			return path, true
		}
		return "", true
	}

	for _, name := range defaultConfigNames {
		if fileExists(name) {
			return name, false
		}
	}
	return "", false
}

// loadFile loads a config file, choosing the parser by extension.
func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		parser = yaml.Parser()
	case ".toml":
		parser = toml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config format %q (expected .yml, .toml or .json)", path)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}
	return nil
}

// envTransform converts environment variable names to config keys.
// Example: MKCHANGELOG_STRICT_KINDS -> strict_kinds.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Table builds the classification table from the configured kinds, falling
// back to the built-in table when none are configured.
func (c *Configuration) Table() *changelog.Table {
	if len(c.Kinds) == 0 {
		return changelog.DefaultTable()
	}

	kinds := make([]changelog.Kind, len(c.Kinds))
	for i, k := range c.Kinds {
		kinds[i] = changelog.Kind{Type: k.Type, Category: changelog.Category(k.Category)}
	}
	return changelog.NewTable(kinds)
}

// GroupOptions translates config policy switches into grouping options.
func (c *Configuration) GroupOptions() changelog.GroupOptions {
	return changelog.GroupOptions{
		StrictKinds:      c.StrictKinds,
		StrictBoundaries: c.StrictBoundaries,
	}
}
