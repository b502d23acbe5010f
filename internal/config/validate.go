package config

import (
	"fmt"
	"strings"
)

// Validate checks a loaded configuration for values that cannot work at
// generation time. It returns the first problem found.
func Validate(cfg *Configuration) error {
	switch strings.ToLower(cfg.Format) {
	case "markdown", "md", "html", "htm":
	default:
		return fmt.Errorf("invalid format %q (supported: markdown, html)", cfg.Format)
	}

	if cfg.Range != "" && !strings.Contains(cfg.Range, "..") {
		return fmt.Errorf("invalid range %q (expected: from..to)", cfg.Range)
	}

	if cfg.Link != "" && !strings.Contains(cfg.Link, "{hash}") {
		return fmt.Errorf("link layout %q is missing the {hash} placeholder", cfg.Link)
	}

	for i, k := range cfg.Kinds {
		if strings.TrimSpace(k.Type) == "" {
			return fmt.Errorf("kinds[%d]: type is empty", i)
		}
		if strings.TrimSpace(k.Category) == "" {
			return fmt.Errorf("kinds[%d] (%s): category is empty", i, k.Type)
		}
	}

	return nil
}
