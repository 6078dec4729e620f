package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"

	"github.com/schemaguard/schemaguard/internal/application"
	"github.com/schemaguard/schemaguard/internal/domain"
	"github.com/schemaguard/schemaguard/internal/domain/rules"
)

// registerTools registers all SchemaGuard MCP tools on the given server.
func registerTools(s *server.MCPServer, svc *application.ValidateService, policy domain.Policy) {
	// 1. schemaguard_validate
	s.AddTool(
		mcplib.NewTool("schemaguard_validate",
			mcplib.WithDescription("Validate custom tables against the naming/structure policy and return the compliance report as JSON"),
			mcplib.WithString("solution",
				mcplib.Description("Solution unique name to validate (mutually exclusive with entities)"),
			),
			mcplib.WithString("entities",
				mcplib.Description("Comma-separated logical names of tables to validate (mutually exclusive with solution)"),
			),
			mcplib.WithString("prefix",
				mcplib.Description("Publisher prefix, e.g. sic_ (defaults to the policy file)"),
			),
			mcplib.WithNumber("recent_days",
				mcplib.Description("Only check columns created within this many days (0 disables)"),
			),
			mcplib.WithBoolean("include_ref_data",
				mcplib.Description("Also validate reference-data tables"),
			),
			mcplib.WithString("rules",
				mcplib.Description("Comma-separated rule ids to run (defaults to all six)"),
			),
			mcplib.WithNumber("max_entities",
				mcplib.Description("Cap on the number of tables validated (0 = unlimited)"),
			),
		),
		handleValidate(svc, policy),
	)

	// 2. schemaguard_list_rules
	s.AddTool(
		mcplib.NewTool("schemaguard_list_rules",
			mcplib.WithDescription("Returns the rule catalogue with severities, actions, and recommendations"),
		),
		handleListRules(),
	)
}

func handleValidate(svc *application.ValidateService, policy domain.Policy) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		req, err := buildRequest(request.GetArguments(), policy)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result, err := svc.Validate(ctx, req)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleListRules() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(rules.Catalogue())
	}
}

// buildRequest merges tool arguments over policy defaults. Tool arguments
// arrive as JSON any, so coercion goes through cast.
func buildRequest(args map[string]any, policy domain.Policy) (domain.ValidationRequest, error) {
	req := policy.Request(policy.Solution, nil)

	if v, ok := args["solution"]; ok {
		req.SolutionName = cast.ToString(v)
	}
	if v, ok := args["entities"]; ok {
		req.EntityNames = splitAndTrim(cast.ToString(v))
		if len(req.EntityNames) > 0 {
			req.SolutionName = ""
		}
	}
	if v, ok := args["prefix"]; ok {
		req.PublisherPrefix = cast.ToString(v)
	}
	if v, ok := args["recent_days"]; ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return domain.ValidationRequest{}, fmt.Errorf("recent_days: %w", err)
		}
		req.RecentDays = n
	}
	if v, ok := args["include_ref_data"]; ok {
		req.IncludeRefData = cast.ToBool(v)
	}
	if v, ok := args["rules"]; ok {
		req.SelectedRules = nil
		for _, id := range splitAndTrim(cast.ToString(v)) {
			req.SelectedRules = append(req.SelectedRules, domain.RuleID(id))
		}
	}
	if v, ok := args["max_entities"]; ok {
		n, err := cast.ToIntE(v)
		if err != nil {
			return domain.ValidationRequest{}, fmt.Errorf("max_entities: %w", err)
		}
		req.MaxEntities = n
	}

	return req, nil
}

func splitAndTrim(s string) []string {
	var result []string
	for _, p := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
