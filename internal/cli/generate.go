package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mkchangelog/mkchangelog/internal/changelog"
	"github.com/mkchangelog/mkchangelog/internal/commit"
	"github.com/mkchangelog/mkchangelog/internal/config"
	"github.com/mkchangelog/mkchangelog/internal/errors"
	"github.com/mkchangelog/mkchangelog/internal/history"
	"github.com/mkchangelog/mkchangelog/internal/render"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a changelog from the repository's commit history",
	Long: `Generate a changelog from the repository's commit history.

The history is walked newest-first from HEAD (or the configured revision
range). Each commit message is parsed against the conventional-commit
grammar; parsed commits are grouped by release tag, then by category, and
rendered in the requested format.

Examples:
  mkchangelog generate                          # Markdown to stdout
  mkchangelog generate --format html            # HTML instead
  mkchangelog generate --output CHANGELOG.md    # Write to a file
  mkchangelog generate --range v1.0.0..HEAD     # Restrict the walk
  mkchangelog generate --preview                # Colored terminal preview`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("config", "c", "", "Config file path (default: .changelog.yml)")
	generateCmd.Flags().StringP("repo", "C", "", "Path to the git repository (default: config or \".\")")
	generateCmd.Flags().StringP("format", "f", "", "Output format: markdown | html")
	generateCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	generateCmd.Flags().String("range", "", "Revision range, e.g. v1.0.0..HEAD")
	generateCmd.Flags().Bool("preview", false, "Render a colored preview to the terminal instead of a document")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		if cliErr := errors.AsCLIError(err); cliErr != nil {
			return cliErr
		}
		return errors.Wrap(err, errors.Configuration,
			"Run 'mkchangelog init' to create a starter config",
			"Check the config file syntax and keys")
	}

	// Flags override config.
	if repo, _ := cmd.Flags().GetString("repo"); repo != "" {
		cfg.Repository = repo
	}
	if format, _ := cmd.Flags().GetString("format"); format != "" {
		cfg.Format = format
	}
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		cfg.Output = output
	}
	if rng, _ := cmd.Flags().GetString("range"); rng != "" {
		cfg.Range = rng
	}

	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return errors.UnknownFormat(cfg.Format)
	}

	log, skipped, err := buildChangelog(cmd, cfg)
	if err != nil {
		return err
	}

	if skipped > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Skipped %d commits without conventional-commit structure\n", skipped)
	}

	if preview, _ := cmd.Flags().GetBool("preview"); preview {
		return render.FormatTerminal(log, cmd.OutOrStdout(), render.TerminalOptions{})
	}

	return writeDocument(cmd, cfg, log, format)
}

// buildChangelog runs the pipeline: read history, parse, filter, group.
// The returned count is the number of commits excluded by the parser.
func buildChangelog(cmd *cobra.Command, cfg *config.Configuration) (*changelog.Changelog, int, error) {
	stop := startSpinner("Reading commit history...")

	repo, err := history.Open(cfg.Repository)
	if err != nil {
		stop()
		return nil, 0, errors.RepositoryNotFound(cfg.Repository)
	}

	records, err := repo.Commits(cmd.Context(), history.WalkOptions{
		Range:      cfg.Range,
		KeepMerges: cfg.KeepMerges,
	})
	if err != nil {
		stop()
		return nil, 0, errors.WrapWithMessage(err, errors.Repository, "reading commit history")
	}

	boundaries, err := repo.Boundaries()
	if err != nil {
		stop()
		return nil, 0, errors.WrapWithMessage(err, errors.Repository, "resolving version tags")
	}
	stop()

	parsed, skipped := commit.ParseAll(records)
	parsed = filterScopes(parsed, cfg.Scopes)

	log, err := changelog.Group(parsed, boundaries, cfg.Table(), cfg.GroupOptions())
	if err != nil {
		return nil, 0, errors.WrapWithMessage(err, errors.Runtime, "grouping commits",
			"Unset strict_boundaries to degrade dangling tags instead of failing")
	}
	log.Project = cfg.Project

	return log, skipped, nil
}

// filterScopes keeps only commits whose scope is in the allow list.
// An empty list keeps everything. Scope filtering is caller policy; the
// parser and classifier never look at authors or scopes.
func filterScopes(commits []commit.Parsed, scopes []string) []commit.Parsed {
	if len(scopes) == 0 {
		return commits
	}

	allowed := make(map[string]bool, len(scopes))
	for _, s := range scopes {
		allowed[s] = true
	}

	kept := commits[:0]
	for _, c := range commits {
		if c.Scope == "" || allowed[c.Scope] {
			kept = append(kept, c)
		}
	}
	return kept
}

// writeDocument renders the changelog and writes it to the configured
// destination (stdout when no output file is set).
func writeDocument(cmd *cobra.Command, cfg *config.Configuration, log *changelog.Changelog, format render.Format) error {
	opts := render.Options{LinkLayout: cfg.Link}

	if cfg.Output == "" {
		return render.Render(log, format, cmd.OutOrStdout(), opts)
	}

	doc, err := render.RenderString(log, format, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.Output, []byte(doc), 0644); err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "writing output file")
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%d commits)\n", cfg.Output, log.Count())
	return nil
}

// startSpinner shows a progress spinner while the history walk runs.
// It is a no-op when stdout is not a terminal, so piped output stays clean.
func startSpinner(message string) (stop func()) {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + message
	s.Start()
	return s.Stop
}
