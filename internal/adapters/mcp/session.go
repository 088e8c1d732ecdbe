// Package mcp exposes the audit as MCP tools.
package mcp

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"dsaudit/internal/adapters/document"
	"dsaudit/internal/application"
	"dsaudit/internal/domain"
	"dsaudit/internal/ports"
)

// Session holds what the tools share between calls: the catalog, the
// ignore store and the last analysis of every document, so recompute and
// ignore toggles never re-walk a document.
type Session struct {
	catalog   ports.LibraryCatalog
	store     ports.IgnoreStore
	weights   domain.Weights
	batchSize int
	logger    *slog.Logger

	mu   sync.Mutex
	last map[string]*application.CoverageMetrics // by document key
	keys map[string]string                       // document path -> key
}

// NewSession creates a session
func NewSession(catalog ports.LibraryCatalog, store ports.IgnoreStore, weights domain.Weights, batchSize int, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		catalog:   catalog,
		store:     store,
		weights:   weights,
		batchSize: batchSize,
		logger:    logger,
		last:      make(map[string]*application.CoverageMetrics),
		keys:      make(map[string]string),
	}
}

// RegisterTools adds every audit tool to the MCP server.
func RegisterTools(s *server.MCPServer, session *Session) {
	RegisterReadTools(s, session)
	RegisterWriteTools(s, session)
}

func (s *Session) remember(path string, m *application.CoverageMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last[m.DocumentKey] = m
	if path != "" {
		s.keys[path] = m.DocumentKey
	}
}

// resolveKey accepts a document key or a path that was analysed before
func (s *Session) resolveKey(ref string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key, ok := s.keys[ref]; ok {
		return key
	}
	return ref
}

func (s *Session) lastAnalysis(key string) (*application.CoverageMetrics, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.last[key]
	return m, ok
}

func loadDocument(path string) (*document.Snapshot, error) {
	if path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return document.Load(path)
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
