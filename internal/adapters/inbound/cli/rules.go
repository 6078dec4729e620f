package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schemaguard/schemaguard/internal/domain/rules"
)

func newRulesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rule catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalogue := rules.Catalogue()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(catalogue)
			}

			for _, def := range catalogue {
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s %-6s %s\n", def.ID, def.Severity, def.Description)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the catalogue as JSON")
	return cmd
}
