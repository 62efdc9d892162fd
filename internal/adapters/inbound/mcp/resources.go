package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/locaudit/locaudit/internal/adapters/outbound/history"
	"github.com/locaudit/locaudit/internal/adapters/outbound/localefs"
	"github.com/locaudit/locaudit/internal/adapters/outbound/provider"
	"github.com/locaudit/locaudit/internal/application"
	"github.com/locaudit/locaudit/internal/domain"
)

// registerResources registers all locaudit MCP resources on the given server.
func registerResources(s *server.MCPServer, h *handlers) {
	// 1. locaudit://config - effective configuration
	s.AddResource(
		mcplib.NewResource(
			"locaudit://config",
			"Configuration",
			mcplib.WithResourceDescription("Effective locaudit configuration with defaults applied"),
			mcplib.WithMIMEType("application/json"),
		),
		h.handleConfigResource,
	)

	// 2. locaudit://history - recorded audit runs
	s.AddResource(
		mcplib.NewResource(
			"locaudit://history",
			"Audit History",
			mcplib.WithResourceDescription("Summaries of previous audit runs, oldest first"),
			mcplib.WithMIMEType("application/json"),
		),
		h.handleHistoryResource,
	)

	// 3. locaudit://locales/{locale} - flattened translations (resource template)
	s.AddResourceTemplate(
		mcplib.NewResourceTemplate(
			"locaudit://locales/{locale}",
			"Locale Strings",
			mcplib.WithTemplateDescription("Flattened key to text map loaded from a locale file"),
			mcplib.WithTemplateMIMEType("application/json"),
		),
		h.handleLocaleResource,
	)
}

func (h *handlers) handleConfigResource(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	cfg, err := h.config()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return jsonContents(request.Params.URI, cfg)
}

func (h *handlers) handleHistoryResource(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	runs, err := history.New().Load(h.projectPath)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	if runs == nil {
		runs = []domain.AuditRun{}
	}
	return jsonContents(request.Params.URI, runs)
}

func (h *handlers) handleLocaleResource(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	uri := request.Params.URI
	loc := strings.TrimPrefix(uri, "locaudit://locales/")
	if loc == "" || loc == uri {
		return nil, fmt.Errorf("locale name is required in URI: %s", uri)
	}

	cfg, err := h.config()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	set, err := application.NewTranslateService(provider.New(), localefs.New()).LoadLocales(h.projectPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("loading locales: %w", err)
	}

	strs := set.Others[loc]
	if strings.EqualFold(loc, cfg.SourceLocale) {
		strs = set.English
	}
	if strs == nil {
		return nil, fmt.Errorf("no locale file for %q", loc)
	}
	return jsonContents(uri, strs)
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource: %w", err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
