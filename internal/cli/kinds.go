package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mkchangelog/mkchangelog/internal/changelog"
	"github.com/mkchangelog/mkchangelog/internal/config"
	"github.com/mkchangelog/mkchangelog/internal/errors"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "Show the active type → category table in render order",
	Long: `Show the active type → category table in render order.

The table decides both which commit types are recognized and the order in
which categories appear in the rendered changelog. Types outside the table
fall into "Uncategorized", rendered last.`,
	RunE: runKinds,
}

func init() {
	rootCmd.AddCommand(kindsCmd)
	kindsCmd.Flags().StringP("config", "c", "", "Config file path (default: .changelog.yml)")
}

func runKinds(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		if cliErr := errors.AsCLIError(err); cliErr != nil {
			return cliErr
		}
		return errors.Wrap(err, errors.Configuration)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tCATEGORY")
	for _, k := range cfg.Table().Kinds() {
		fmt.Fprintf(w, "%s\t%s\n", k.Type, k.Category)
	}
	fmt.Fprintf(w, "(other)\t%s\n", changelog.Uncategorized)
	return w.Flush()
}
