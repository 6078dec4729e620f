package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const configFileName = ".schemaguard.yaml"

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .schemaguard.yaml policy file",
		Long:  "Create a .schemaguard.yaml with a starter governance policy.",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, configFileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", configFileName)
				}
			}

			if err := os.WriteFile(dest, []byte(starterPolicy), 0644); err != nil {
				return fmt.Errorf("writing policy: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", configFileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .schemaguard.yaml")

	return cmd
}

const starterPolicy = `# SchemaGuard policy

environment_url: https://yourorg.crm.dynamics.com
publisher_prefix: new_

# solution: your_solution_unique_name

# Only check columns created within this many days (0 disables).
recent_days: 0

# Also validate tables following the <prefix>ref_ naming convention.
include_ref_data: false

# Cap on tables validated per run (0 = unlimited).
max_entities: 0

# Columns every non-reference table must carry. {prefix} is substituted
# with publisher_prefix.
required_columns:
  - "{prefix}updatedbyprocess"

# rules:
#   - publisher-prefix
#   - lowercase-schema-name
#   - lookup-naming
#   - global-optionset
#   - required-column
#   - entity-icon
`
