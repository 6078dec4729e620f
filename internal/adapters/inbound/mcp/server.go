package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/schemaguard/schemaguard/internal/application"
	"github.com/schemaguard/schemaguard/internal/domain"
)

// NewSchemaGuardMCPServer creates an MCP server exposing validation tools and
// policy resources. The policy supplies defaults for tool arguments the
// caller leaves out.
func NewSchemaGuardMCPServer(svc *application.ValidateService, policy domain.Policy) *server.MCPServer {
	s := server.NewMCPServer(
		"schemaguard",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, svc, policy)
	registerResources(s, policy)

	return s
}
