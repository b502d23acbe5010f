package errors

import "fmt"

// Common error constructors for the mkchangelog CLI.
// These templates keep messages consistent and actionable.

// RepositoryNotFound creates an error for a path that is not a git repository.
func RepositoryNotFound(path string) *CLIError {
	return NewRepositoryError(
		fmt.Sprintf("no git repository found at %s", path),
		"Run mkchangelog from inside a git repository",
		"Or point --repo (or the 'repository' config key) at one",
	)
}

// ConfigNotFound creates an error for an explicitly requested config file
// that does not exist.
func ConfigNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Run 'mkchangelog init' to create a starter config",
		"Or drop the --config flag to use defaults",
	)
}

// UnknownFormat creates an error for an unsupported output format.
func UnknownFormat(format string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("unknown output format %q", format),
		"mkchangelog generate --format markdown|html",
		"Use 'markdown' (default) or 'html'",
	)
}
