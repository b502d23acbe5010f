// Package cli wires the mkchangelog command tree. Commands stay thin:
// they load configuration, call into the pipeline packages, and format
// errors for the terminal.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkchangelog/mkchangelog/internal/errors"
	"github.com/mkchangelog/mkchangelog/internal/history"
)

var rootCmd = &cobra.Command{
	Use:   "mkchangelog",
	Short: "Generate changelogs from conventional commit history",
	Long: `mkchangelog reads a git repository's commit history, classifies each
commit against the conventional-commit grammar (type(scope)!: description),
groups commits by release tag and category, and renders the result as
Markdown or HTML.

Commits that do not follow the grammar are excluded from the output; the
skipped count is reported on stderr.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			history.SetDebugLogger(func(format string, args ...any) {
				fmt.Fprintf(os.Stderr, format+"\n", args...)
			})
		}
	}
}

// Execute runs the root command. Structured CLI errors are printed with
// category and remediation steps; anything else prints as a plain error.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.PrintError(cliErr)
	} else {
		fmt.Fprint(os.Stderr, errors.FormatSimpleError(err, errors.Runtime))
	}
	return err
}
