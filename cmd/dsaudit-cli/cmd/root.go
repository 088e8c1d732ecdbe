package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"dsaudit/internal/adapters/catalog"
	"dsaudit/internal/adapters/sqlite"
	"dsaudit/internal/config"
	"dsaudit/internal/ports"
)

var (
	configPath string
	dbPath     string
	verbose    bool

	cfg    *config.Config
	cat    ports.LibraryCatalog
	store  ports.IgnoreStore
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "dsaudit-cli",
	Short: "Audit design-system adoption in design documents",
	Long: `dsaudit-cli measures how much of a design document is built from an
approved component library and from shared design tokens.

It analyses a JSON snapshot of the document and reports component
coverage, token adoption and an overall score. Findings can be ignored
per document; ignores persist between runs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		logger = config.NewLogger(os.Stderr, verbose)
		slog.SetDefault(logger)

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		cat = catalog.New(cfg)

		s := sqlite.NewIgnoreStore()
		if err := s.Open(dbPath); err != nil {
			return fmt.Errorf("failed to open ignore store: %w", err)
		}
		store = s

		logger.Debug("initialized",
			slog.String("config", configPath),
			slog.String("db", dbPath),
			slog.Int("libraries", len(cfg.Libraries)))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.ConfigPath(), "path to the library mapping")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DatabasePath(), "path to the ignore store")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// GetCatalog returns the initialized library catalog
func GetCatalog() ports.LibraryCatalog {
	return cat
}

// GetStore returns the initialized ignore store
func GetStore() ports.IgnoreStore {
	return store
}
