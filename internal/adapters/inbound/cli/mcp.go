package cli

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpadapter "github.com/schemaguard/schemaguard/internal/adapters/inbound/mcp"
	"github.com/schemaguard/schemaguard/internal/adapters/outbound/audit"
	configAdapter "github.com/schemaguard/schemaguard/internal/adapters/outbound/config"
	"github.com/schemaguard/schemaguard/internal/adapters/outbound/dataverse"
	"github.com/schemaguard/schemaguard/internal/adapters/outbound/gitinfo"
	"github.com/schemaguard/schemaguard/internal/application"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the SchemaGuard MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var envURL string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start SchemaGuard MCP server (stdio)",
		Long:  "Start the SchemaGuard MCP server using stdio transport. This lets AI coding assistants validate schema changes and inspect the governance policy.",
		RunE: func(cmd *cobra.Command, args []string) error {
			policy, err := configAdapter.New().Load(".")
			if err != nil {
				return fmt.Errorf("loading policy: %w", err)
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

			// stdout carries the MCP stream; logs go to stderr only.
			logger, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			repo := dataverse.NewClient(envURL, dataverse.StaticToken(token), logger)
			svc := application.NewValidateService(repo, audit.New(logger), gitinfo.New(), logger)

			s := mcpadapter.NewSchemaGuardMCPServer(svc, policy)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&envURL, "env-url", "", "Environment URL, e.g. https://org.crm.dynamics.com")

	return cmd
}
