package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	cacheAdapter "github.com/locaudit/locaudit/internal/adapters/outbound/cache"
	"github.com/locaudit/locaudit/internal/adapters/outbound/config"
	"github.com/locaudit/locaudit/internal/adapters/outbound/localefs"
	"github.com/locaudit/locaudit/internal/adapters/outbound/provider"
	"github.com/locaudit/locaudit/internal/adapters/outbound/scanner"
	"github.com/locaudit/locaudit/internal/adapters/outbound/sourcefile"
	"github.com/locaudit/locaudit/internal/application"
	"github.com/locaudit/locaudit/internal/domain"
	"github.com/locaudit/locaudit/internal/domain/locale"
	"github.com/locaudit/locaudit/internal/domain/translation"
)

// handlers holds what every tool and resource needs. Configuration is read
// on each call so edits to .locaudit.yaml apply without a restart.
type handlers struct {
	projectPath string
	browser     domain.Browser
}

// registerTools registers all locaudit MCP tools on the given server.
func registerTools(s *server.MCPServer, h *handlers) {
	// 1. locaudit_audit
	s.AddTool(
		mcplib.NewTool("locaudit_audit",
			mcplib.WithDescription("Audit a page under each locale and return every overflowing element as JSON, with source location and English text where known"),
			mcplib.WithString("url", mcplib.Description("Page to audit (defaults to url in .locaudit.yaml)")),
			mcplib.WithString("locales", mcplib.Description("Comma-separated locales (defaults to the configured locales)")),
			mcplib.WithBoolean("dedupe", mcplib.Description("Collapse issues sharing a source line (default: report.dedupe)")),
		),
		h.handleAudit,
	)

	// 2. locaudit_lookup_source
	s.AddTool(
		mcplib.NewTool("locaudit_lookup_source",
			mcplib.WithDescription("Find the source files and lines that render a string, best match per confidence tier (i18n, jsx, string)"),
			mcplib.WithString("text", mcplib.Required(), mcplib.Description("Rendered text or translation key")),
		),
		h.handleLookupSource,
	)

	// 3. locaudit_find_english
	s.AddTool(
		mcplib.NewTool("locaudit_find_english",
			mcplib.WithDescription("Map translated or pseudo-localized text back to its translation key and English original"),
			mcplib.WithString("text", mcplib.Required(), mcplib.Description("Text as rendered on the page")),
			mcplib.WithString("locale", mcplib.Description("Locale to search first")),
		),
		h.handleFindEnglish,
	)

	// 4. locaudit_list_locales
	s.AddTool(
		mcplib.NewTool("locaudit_list_locales",
			mcplib.WithDescription("List configured locales, locale files on disk and how each locale would be audited"),
		),
		h.handleListLocales,
	)

	// 5. locaudit_pseudolocalize
	s.AddTool(
		mcplib.NewTool("locaudit_pseudolocalize",
			mcplib.WithDescription("Pseudo-localize text with the expansion factor configured for a locale"),
			mcplib.WithString("text", mcplib.Required(), mcplib.Description("Source text")),
			mcplib.WithString("locale", mcplib.Description("Locale whose expansion factor to use (default: the default factor)")),
		),
		h.handlePseudolocalize,
	)
}

func (h *handlers) config() (domain.ProjectConfig, error) {
	return config.New().Load(h.projectPath)
}

func (h *handlers) mapper(cfg domain.ProjectConfig) *translation.ReverseMapper {
	svc := application.NewTranslateService(provider.New(), localefs.New())
	set, err := svc.LoadLocales(h.projectPath, cfg)
	if err != nil {
		return translation.NewReverseMapper(nil, nil)
	}
	return translation.FromLocaleSet(set)
}

func newIndexService() *application.IndexService {
	return application.NewIndexService(scanner.New(), sourcefile.New(0), cacheAdapter.New())
}

func (h *handlers) handleAudit(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if h.browser == nil {
		return errorResult("audits are not available: no browser configured"), nil
	}
	cfg, err := h.config()
	if err != nil {
		return errorResult(fmt.Sprintf("loading config: %v", err)), nil
	}

	url := request.GetString("url", cfg.URL)
	if url == "" {
		return errorResult("no url given and none configured"), nil
	}
	var locales []string
	for _, l := range strings.Split(request.GetString("locales", ""), ",") {
		if l = strings.TrimSpace(l); l != "" {
			locales = append(locales, l)
		}
	}

	ix, _, err := newIndexService().Build(ctx, h.projectPath, cfg)
	if err != nil {
		ix = nil
	}
	svc := application.NewAuditService(h.browser, cfg, ix, h.mapper(cfg))
	report, err := svc.Audit(ctx, application.AuditRequest{
		URL:     url,
		Locales: locales,
		Dedupe:  request.GetBool("dedupe", cfg.Report.Dedupe),
	})
	if err != nil {
		return errorResult(fmt.Sprintf("audit failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *handlers) handleLookupSource(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	cfg, err := h.config()
	if err != nil {
		return errorResult(fmt.Sprintf("loading config: %v", err)), nil
	}
	ix, _, err := newIndexService().Build(ctx, h.projectPath, cfg)
	if err != nil {
		return errorResult(fmt.Sprintf("building index: %v", err)), nil
	}

	hits := []domain.SourceLocation{}
	for _, tier := range domain.Priorities {
		if loc, ok := ix.LookupTier(tier, text); ok {
			hits = append(hits, *loc)
		}
	}
	return jsonResult(hits)
}

func (h *handlers) handleFindEnglish(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	cfg, err := h.config()
	if err != nil {
		return errorResult(fmt.Sprintf("loading config: %v", err)), nil
	}

	if e, ok := application.ReverseLookup(h.mapper(cfg), text, request.GetString("locale", "")); ok {
		return jsonResult(e)
	}
	return jsonResult(map[string]any{"found": false})
}

type localeInfo struct {
	Locale    string               `json:"locale"`
	Transform domain.TransformKind `json:"transform"`
	Factor    float64              `json:"factor,omitempty"`
	HasFile   bool                 `json:"hasFile"`
}

func (h *handlers) handleListLocales(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	cfg, err := h.config()
	if err != nil {
		return errorResult(fmt.Sprintf("loading config: %v", err)), nil
	}
	m := h.mapper(cfg)

	out := make([]localeInfo, 0, len(cfg.Locales))
	for _, l := range cfg.Locales {
		plan := locale.PlanFor(l, locale.PlanOptions{
			SourceLocale:    cfg.SourceLocale,
			ServerRendered:  cfg.IsServerRendered(l),
			HasTranslations: m.HasLocale(l),
			Factor:          cfg.FactorFor(l),
		})
		info := localeInfo{Locale: l, Transform: plan.Kind, HasFile: m.HasLocale(l)}
		if plan.Kind == domain.TransformPseudo {
			info.Factor = plan.Factor
		}
		out = append(out, info)
	}
	return jsonResult(map[string]any{
		"sourceLocale": cfg.SourceLocale,
		"locales":      out,
		"files":        m.Locales(),
	})
}

func (h *handlers) handlePseudolocalize(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	text, err := request.RequireString("text")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	cfg, err := h.config()
	if err != nil {
		return errorResult(fmt.Sprintf("loading config: %v", err)), nil
	}
	factor := cfg.Pseudo.DefaultFactor
	if l := request.GetString("locale", ""); l != "" {
		factor = cfg.FactorFor(l)
	}
	return textResult(locale.Pseudolocalize(text, factor)), nil
}

// jsonResult marshals v to indented JSON and returns it as text content.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
