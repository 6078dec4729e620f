package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/schemaguard/schemaguard/internal/adapters/outbound/audit"
	configAdapter "github.com/schemaguard/schemaguard/internal/adapters/outbound/config"
	"github.com/schemaguard/schemaguard/internal/adapters/outbound/dataverse"
	"github.com/schemaguard/schemaguard/internal/adapters/outbound/gitinfo"
	"github.com/schemaguard/schemaguard/internal/adapters/outbound/tui"
	"github.com/schemaguard/schemaguard/internal/application"
	"github.com/schemaguard/schemaguard/internal/domain"
)

// tokenEnvVar holds the bearer token for the metadata service, typically
// minted by the CI pipeline.
const tokenEnvVar = "SCHEMAGUARD_TOKEN"

func newValidateCmd() *cobra.Command {
	var (
		solution       string
		entities       string
		prefix         string
		recentDays     int
		includeRefData bool
		ruleList       string
		maxEntities    int
		envURL         string
		asJSON         bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate custom tables against the naming/structure policy",
		Long:  "Run the rule catalogue against a solution's tables or an explicit table list and report violations. Exits non-zero when MUST violations are found, for CI enforcement.",
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := configAdapter.New().Load(".")
			if err != nil {
				return fmt.Errorf("loading policy: %w", err)
			}

			// Flags override the policy file.
			if solution == "" {
				solution = policy.Solution
			}
			var entityNames []string
			if entities != "" {
				entityNames = splitList(entities)
				solution = ""
			}
			req := policy.Request(solution, entityNames)
			if prefix != "" {
				req.PublisherPrefix = prefix
			}
			if cmd.Flags().Changed("recent-days") {
				req.RecentDays = recentDays
			}
			if cmd.Flags().Changed("include-ref-data") {
				req.IncludeRefData = includeRefData
			}
			if ruleList != "" {
				req.SelectedRules = nil
				for _, id := range splitList(ruleList) {
					req.SelectedRules = append(req.SelectedRules, domain.RuleID(id))
				}
			}
			if cmd.Flags().Changed("max-entities") {
				req.MaxEntities = maxEntities
			}
			if envURL == "" {
				envURL = policy.EnvironmentURL
			}
			if envURL == "" {
				return fmt.Errorf("no environment URL (set --env-url or environment_url in .schemaguard.yaml)")
			}

			token := os.Getenv(tokenEnvVar)
			if token == "" {
				return fmt.Errorf("%s is not set", tokenEnvVar)
			}

			logger, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			repo := dataverse.NewClient(envURL, dataverse.StaticToken(token), logger)
			svc := application.NewValidateService(repo, audit.New(logger), gitinfo.New(), logger)

			result, err := svc.Validate(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("validate failed: %w", err)
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), tui.RenderReport(result))
			}

			// Exit code drives CI enforcement: MUST violations fail the run.
			if result.Summary.CriticalViolations > 0 {
				return fmt.Errorf("%d critical violation(s) found", result.Summary.CriticalViolations)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&solution, "solution", "", "Solution unique name to validate")
	cmd.Flags().StringVar(&entities, "entities", "", "Comma-separated table logical names to validate")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Publisher prefix (overrides policy)")
	cmd.Flags().IntVar(&recentDays, "recent-days", 0, "Only check columns created within this many days (0 disables)")
	cmd.Flags().BoolVar(&includeRefData, "include-ref-data", false, "Also validate reference-data tables")
	cmd.Flags().StringVar(&ruleList, "rules", "", "Comma-separated rule ids to run (defaults to all)")
	cmd.Flags().IntVar(&maxEntities, "max-entities", 0, "Cap on tables validated (0 = unlimited)")
	cmd.Flags().StringVar(&envURL, "env-url", "", "Environment URL, e.g. https://org.crm.dynamics.com")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the report as JSON instead of the terminal view")

	return cmd
}

func splitList(s string) []string {
	var result []string
	for _, p := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
