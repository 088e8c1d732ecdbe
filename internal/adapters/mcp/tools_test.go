package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsaudit/internal/adapters/catalog"
	"dsaudit/internal/adapters/sqlite"
	"dsaudit/internal/config"
	"dsaudit/internal/domain"
)

const snapshot = `{
  "name": "Checkout", "key": "doc-1", "selection": ["1:1"],
  "variableCollections": {"C:1": {"key": "colors", "name": "Colors", "remote": true, "modes": [{"modeId": "m:1"}]}},
  "variables": {"V:1": {"name": "primary", "variableCollectionId": "C:1", "valuesByMode": {"m:1": {"r": 0, "g": 0, "b": 1}}}},
  "document": {"id": "0:0", "type": "DOCUMENT", "children": [{"id": "0:1", "type": "PAGE", "children": [
    {"id": "1:1", "name": "Screen", "type": "FRAME", "children": [
      {"id": "2:1", "name": "Buy", "type": "INSTANCE",
       "mainComponent": {"id": "c:1", "key": "btn", "name": "Button", "remote": true},
       "fills": [{"type": "SOLID", "color": {"r": 0, "g": 0, "b": 1}}],
       "boundVariables": {"fills": [{"type": "VARIABLE_ALIAS", "id": "V:1"}]}},
      {"id": "2:2", "name": "Summary", "type": "INSTANCE",
       "mainComponent": {"id": "c:2", "name": "Card"},
       "fills": [{"type": "SOLID", "color": {"r": 1, "g": 1, "b": 1}}],
       "cornerRadius": 8}
    ]}
  ]}]}
}`

func newTestSession(t *testing.T) (*Session, string) {
	t.Helper()
	dir := t.TempDir()

	store := sqlite.NewIgnoreStore()
	require.NoError(t, store.Open(filepath.Join(dir, "ignores.db")))
	t.Cleanup(func() { store.Close() })

	cat := catalog.New(&config.Config{Libraries: []config.Library{
		{Name: "DS", Enabled: true, ComponentKeys: []string{"btn"}, CollectionKeys: []string{"colors"}},
	}})

	path := filepath.Join(dir, "checkout.json")
	require.NoError(t, os.WriteFile(path, []byte(snapshot), 0o644))

	return NewSession(cat, store, domain.DefaultWeights, 0, nil), path
}

func callTool(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestAnalyzeAndIgnore(t *testing.T) {
	session, path := newTestSession(t)

	out, isErr := callTool(t, analyzeHandler(session), map[string]any{"path": path, "details": true})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Component coverage   50.0%  (1 library / 1 local)")
	assert.Contains(t, out, "Token adoption       33.3%  (1 bound / 2 hardcoded)")
	assert.Contains(t, out, "Document key: doc-1")
	assert.Contains(t, out, "[2:2|c:2]")

	out, isErr = callTool(t, ignoreHandler(session), map[string]any{"document": path, "kind": "instance", "key": "2:2"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Ignoring instance 2:2")
	assert.Contains(t, out, "Component coverage  100.0%")
	assert.Contains(t, out, "Overall score       100.0%")

	out, isErr = callTool(t, listIgnoresHandler(session), map[string]any{"document": "doc-1"})
	require.False(t, isErr)
	assert.Contains(t, out, "instance   2:2")

	out, isErr = callTool(t, unignoreHandler(session), map[string]any{"document": "doc-1", "kind": "instance", "key": "2:2"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Component coverage   50.0%")

	out, isErr = callTool(t, recomputeHandler(session), map[string]any{"document": "doc-1"})
	require.False(t, isErr, out)
	assert.Contains(t, out, "Token adoption       33.3%")
}

func TestToolErrors(t *testing.T) {
	session, _ := newTestSession(t)

	out, isErr := callTool(t, recomputeHandler(session), map[string]any{"document": "unknown"})
	assert.True(t, isErr)
	assert.Contains(t, out, "no analysis for document")

	out, isErr = callTool(t, ignoreHandler(session), map[string]any{"document": "doc-1", "kind": "orphan", "key": "no-separator"})
	assert.True(t, isErr)
	assert.Contains(t, out, "invalid ignore key")

	_, isErr = callTool(t, analyzeHandler(session), map[string]any{"path": "/does/not/exist.json"})
	assert.True(t, isErr)

	out, isErr = callTool(t, analyzeHandler(session), map[string]any{"path": "", "selection": "1:1"})
	assert.True(t, isErr)
	assert.Contains(t, out, "path is required")
}

func TestLibrariesTool(t *testing.T) {
	session, _ := newTestSession(t)

	out, isErr := callTool(t, librariesHandler(session), nil)
	require.False(t, isErr)
	assert.Equal(t, "DS  enabled  (1 components, 1 collections)\n", out)
}

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"1:1", "2:2"}, splitIDs(" 1:1, ,2:2 "))
	assert.Nil(t, splitIDs(""))
}
