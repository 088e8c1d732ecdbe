package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"dsaudit/internal/adapters/catalog"
	mcpadapter "dsaudit/internal/adapters/mcp"
	"dsaudit/internal/adapters/sqlite"
	"dsaudit/internal/config"
)

func main() {
	configFlag := flag.String("config", config.ConfigPath(), "path to the library mapping")
	dbFlag := flag.String("db", config.DatabasePath(), "path to the ignore store")
	verboseFlag := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	// stdout carries the protocol; logs go to stderr
	logger := config.NewLogger(os.Stderr, *verboseFlag)

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("dsaudit-mcp: %v", err)
	}

	store := sqlite.NewIgnoreStore()
	if err := store.Open(*dbFlag); err != nil {
		log.Fatalf("dsaudit-mcp: %v", err)
	}
	defer store.Close()

	session := mcpadapter.NewSession(catalog.New(cfg), store, cfg.Weights, cfg.BatchSize, logger)

	mcpServer := server.NewMCPServer(
		"dsaudit-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterTools(mcpServer, session)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("dsaudit-mcp: %v", err)
	}
}
