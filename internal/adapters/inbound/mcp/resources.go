package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/schemaguard/schemaguard/internal/domain"
	"github.com/schemaguard/schemaguard/internal/domain/rules"
)

// registerResources registers all SchemaGuard MCP resources on the given
// server.
func registerResources(s *server.MCPServer, policy domain.Policy) {
	// 1. schemaguard://rules - the rule catalogue
	s.AddResource(
		mcplib.NewResource(
			"schemaguard://rules",
			"Rule Catalogue",
			mcplib.WithResourceDescription("The naming/structure checks with severities and actions"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(),
	)

	// 2. schemaguard://policy - the effective policy
	s.AddResource(
		mcplib.NewResource(
			"schemaguard://policy",
			"Policy",
			mcplib.WithResourceDescription("The effective governance policy for this project"),
			mcplib.WithMIMEType("application/json"),
		),
		handlePolicyResource(policy),
	)
}

func handleRulesResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(rules.Catalogue(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling catalogue: %w", err)
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "schemaguard://rules",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handlePolicyResource(policy domain.Policy) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(policy, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling policy: %w", err)
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "schemaguard://policy",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
