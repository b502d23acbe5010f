package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkchangelog/mkchangelog/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter .changelog.yml in the current directory",
	Long: `Create a starter .changelog.yml with commented defaults.

The file documents every option: project name, repository path, commit link
layout, the ordered type table, and the strictness switches.

Examples:
  mkchangelog init              # Create .changelog.yml
  mkchangelog init --force      # Overwrite an existing config`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolP("force", "f", false, "Overwrite existing config without prompting")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path := ".changelog.yml"

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created %s\n", path)
	return nil
}
