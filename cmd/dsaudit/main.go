package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dsaudit/internal/adapters/catalog"
	"dsaudit/internal/adapters/document"
	"dsaudit/internal/adapters/editor"
	"dsaudit/internal/adapters/sqlite"
	"dsaudit/internal/adapters/tui"
	"dsaudit/internal/config"
	"dsaudit/internal/ports"
)

var (
	configFlag string
	dbFlag     string
	selectFlag string
	watchFlag  bool
	logFlag    string
)

var rootCmd = &cobra.Command{
	Use:          "dsaudit <document.json>",
	Short:        "Interactive design-system adoption audit",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&configFlag, "config", config.ConfigPath(), "path to the library mapping")
	rootCmd.Flags().StringVar(&dbFlag, "db", config.DatabasePath(), "path to the ignore store")
	rootCmd.Flags().StringVar(&selectFlag, "select", "", "comma separated node IDs to analyse")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "re-analyse when the document changes")
	rootCmd.Flags().StringVar(&logFlag, "log", "", "write debug logs to this file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	path := args[0]

	// The terminal belongs to the UI; logs only go to an explicit file
	var logOut io.Writer = io.Discard
	if logFlag != "" {
		f, err := os.OpenFile(logFlag, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, logFlag != "")
	slog.SetDefault(logger)

	configPath, err := config.ExpandHome(configFlag)
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Initialize adapters
	store := sqlite.NewIgnoreStore()
	if err := store.Open(dbFlag); err != nil {
		return fmt.Errorf("failed to open ignore store: %w", err)
	}
	defer store.Close()

	opts := tui.Options{
		Source:     path,
		Selection:  splitIDs(selectFlag),
		Weights:    cfg.Weights,
		BatchSize:  cfg.BatchSize,
		Logger:     logger,
		ConfigPath: configPath,
		Editor:     editor.NewOpener(),
		ReloadCatalog: func() (ports.LibraryCatalog, error) {
			cfg, err := config.Load(configPath)
			if err != nil {
				return nil, err
			}
			return catalog.New(cfg), nil
		},
	}
	if watchFlag {
		opts.WatchPath = path
	}

	load := func() (tui.Document, error) {
		return document.Load(path)
	}

	// Create and run TUI app
	app := tui.NewApp(load, catalog.New(cfg), store, opts)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err = p.Run()
	return err
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
