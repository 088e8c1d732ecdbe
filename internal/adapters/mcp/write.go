package mcp

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"dsaudit/internal/adapters/report"
	"dsaudit/internal/application"
	"dsaudit/internal/application/commands"
)

// orphanListLimit bounds the hardcoded findings listed in text results
const orphanListLimit = 25

// RegisterWriteTools adds the tools that run analyses or change ignore sets.
func RegisterWriteTools(s *server.MCPServer, session *Session) {
	s.AddTool(analyzeTool(), analyzeHandler(session))
	s.AddTool(ignoreTool(), ignoreHandler(session))
	s.AddTool(unignoreTool(), unignoreHandler(session))
}

// --- analyze ---

func analyzeTool() mcp.Tool {
	return mcp.NewTool("analyze",
		mcp.WithDescription("Audit a design document snapshot: component coverage, token adoption and the overall design-system score of the selection, with stored ignores applied."),
		mcp.WithString("path",
			mcp.Description("Path to the document snapshot JSON"),
			mcp.Required(),
		),
		mcp.WithString("selection",
			mcp.Description("Comma separated node IDs to analyse. Omit to use the selection stored in the snapshot."),
		),
		mcp.WithString("format",
			mcp.Description("Result format"),
			mcp.Enum("text", "json"),
		),
		mcp.WithBoolean("details",
			mcp.Description("Include the per-instance table and hardcoded findings"),
		),
	)
}

func analyzeHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		path := req.GetString("path", "")
		doc, err := loadDocument(path)
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewAnalyzeCommand(doc, doc, session.catalog, splitIDs(req.GetString("selection", ""))).
			WithLogger(session.logger)
		cmd.Weights = session.weights
		cmd.BatchSize = session.batchSize

		metrics, err := cmd.Execute(ctx)
		if application.IsCancelled(err) {
			return mcp.NewToolResultText("Analysis cancelled."), nil
		}
		if err != nil {
			return toolError(err)
		}
		session.remember(path, metrics)

		filtered, err := commands.NewRecomputeCommand(session.store, metrics).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		result := report.Result{Metrics: metrics, Filtered: *filtered}
		if req.GetString("format", "text") == "json" {
			return jsonResult(result)
		}

		opts := report.Options{}
		if req.GetBool("details", false) {
			opts = report.Options{Rows: true, Orphans: orphanListLimit}
		}
		var buf bytes.Buffer
		if err := report.WriteText(&buf, result, opts); err != nil {
			return toolError(err)
		}
		fmt.Fprintf(&buf, "\nDocument key: %s\n", metrics.DocumentKey)
		return mcp.NewToolResultText(buf.String()), nil
	}
}

// --- ignore ---

func ignoreTool() mcp.Tool {
	return mcp.NewTool("ignore",
		mcp.WithDescription("Exclude a component, an instance or a single hardcoded finding from the document's score. Orphan keys have the form node_id|component_id."),
		documentParam(),
		kindParam(),
		mcp.WithString("key",
			mcp.Description("Component ID, instance ID or orphan key"),
			mcp.Required(),
		),
	)
}

func ignoreHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		docKey := session.resolveKey(req.GetString("document", ""))
		cmd := commands.NewIgnoreCommand(session.store, docKey, req.GetString("kind", ""), req.GetString("key", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return changedResult(ctx, session, docKey, result.Message)
	}
}

// --- unignore ---

func unignoreTool() mcp.Tool {
	return mcp.NewTool("unignore",
		mcp.WithDescription("Remove a previously ignored component, instance or orphan key."),
		documentParam(),
		kindParam(),
		mcp.WithString("key",
			mcp.Description("Component ID, instance ID or orphan key"),
			mcp.Required(),
		),
	)
}

func unignoreHandler(session *Session) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		docKey := session.resolveKey(req.GetString("document", ""))
		cmd := commands.NewUnignoreCommand(session.store, docKey, req.GetString("kind", ""), req.GetString("key", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return changedResult(ctx, session, docKey, result.Message)
	}
}

// changedResult reports an ignore change, followed by the recomputed
// headline when the document was analysed in this session.
func changedResult(ctx context.Context, session *Session, docKey, message string) (*mcp.CallToolResult, error) {
	metrics, ok := session.lastAnalysis(docKey)
	if !ok {
		return mcp.NewToolResultText(message), nil
	}
	filtered, err := commands.NewRecomputeCommand(session.store, metrics).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(message + "\n\n" + report.Headline(filtered.Summary)), nil
}

func documentParam() mcp.ToolOption {
	return mcp.WithString("document",
		mcp.Description("Document key, or the path of a snapshot analysed in this session"),
		mcp.Required(),
	)
}

func kindParam() mcp.ToolOption {
	return mcp.WithString("kind",
		mcp.Description("What to ignore"),
		mcp.Enum(string(application.IgnoreComponent), string(application.IgnoreInstance), string(application.IgnoreOrphan)),
		mcp.Required(),
	)
}

func splitIDs(s string) []string {
	var ids []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	if err := report.WriteJSON(&buf, v); err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(buf.String()), nil
}
