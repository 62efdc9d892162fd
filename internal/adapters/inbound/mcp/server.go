package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/locaudit/locaudit/internal/domain"
)

// NewServer creates an MCP server with every locaudit tool and resource
// registered. projectPath is the directory holding .locaudit.yaml; browser
// is used by the audit tool and may be nil when audits are not offered.
func NewServer(projectPath, version string, browser domain.Browser) *server.MCPServer {
	s := server.NewMCPServer(
		"locaudit",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	h := &handlers{projectPath: projectPath, browser: browser}
	registerTools(s, h)
	registerResources(s, h)

	return s
}
