package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"dsaudit/internal/adapters/report"
	"dsaudit/internal/application"
	"dsaudit/internal/application/commands"
	"dsaudit/internal/ports"
)

// RegisterReadTools adds the read-only tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, session *Session) {
	s.AddTool(recomputeTool(), recomputeHandler(session))
	s.AddTool(listIgnoresTool(), listIgnoresHandler(session))
	s.AddTool(librariesTool(), librariesHandler(session))
}

// --- recompute ---

func recomputeTool() mcp.Tool {
	return mcp.NewTool("recompute",
		mcp.WithDescription("Recompute the scores of the last analysis of a document under its current ignores, without re-walking the document."),
		documentParam(),
		mcp.WithString("format",
			mcp.Description("Result format"),
			mcp.Enum("text", "json"),
		),
	)
}

func recomputeHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		docKey := session.resolveKey(req.GetString("document", ""))
		metrics, ok := session.lastAnalysis(docKey)
		if !ok {
			return toolError(fmt.Errorf("%w %s: run analyze first", application.ErrNoAnalysis, docKey))
		}

		filtered, err := commands.NewRecomputeCommand(session.store, metrics).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if req.GetString("format", "text") == "json" {
			return jsonResult(filtered)
		}

		text := report.Headline(filtered.Summary)
		if filtered.IgnoredKeyCount > 0 {
			text += fmt.Sprintf("Ignored: %d key(s), %d instance row(s), %d hardcoded value(s)\n",
				filtered.IgnoredKeyCount, filtered.IgnoredRows, filtered.IgnoredOrphans)
		}
		return mcp.NewToolResultText(text), nil
	}
}

// --- list_ignores ---

func listIgnoresTool() mcp.Tool {
	return mcp.NewTool("list_ignores",
		mcp.WithDescription("List the ignored components, instances and orphan keys of a document."),
		documentParam(),
	)
}

func listIgnoresHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		docKey := session.resolveKey(req.GetString("document", ""))
		sets, err := commands.NewListIgnoresCommand(session.store, docKey).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if sets.Len() == 0 {
			return mcp.NewToolResultText("No ignores."), nil
		}
		return mcp.NewToolResultText(FormatIgnores(sets)), nil
	}
}

// FormatIgnores lists ignore sets one "kind key" per line, sorted
func FormatIgnores(sets application.IgnoreSets) string {
	var sb strings.Builder
	for _, kind := range []application.IgnoreKind{application.IgnoreComponent, application.IgnoreInstance, application.IgnoreOrphan} {
		for _, k := range sets.Keys(kind) {
			fmt.Fprintf(&sb, "%-9s  %s\n", kind, k)
		}
	}
	return sb.String()
}

// --- libraries ---

func librariesTool() mcp.Tool {
	return mcp.NewTool("libraries",
		mcp.WithDescription("List the configured design-system libraries and whether they are enabled."),
	)
}

func librariesHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		libs, err := commands.NewListLibrariesCommand(session.catalog).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(libs, formatLibrary)
	}
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatLibrary(l ports.Library) string {
	state := "disabled"
	if l.Enabled {
		state = "enabled"
	}
	return fmt.Sprintf("%s  %s  (%d components, %d collections)", l.Name, state, l.ComponentKeys, l.CollectionKeys)
}
