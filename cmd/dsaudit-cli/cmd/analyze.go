package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"dsaudit/internal/adapters/document"
	"dsaudit/internal/adapters/report"
	"dsaudit/internal/application"
	"dsaudit/internal/application/commands"
	"dsaudit/internal/domain"
	"dsaudit/internal/ports"
)

var (
	analyzeSelection []string
	analyzeJSON      bool
	analyzeNoIgnores bool
	analyzeDetails   bool
	analyzeOrphans   int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <document.json>",
	Short: "Analyse the selection of a document snapshot",
	Long: `Analyse the instances under the selection of a document snapshot and
report component coverage, token adoption and the overall score.

The selection stored in the snapshot is used unless --select is given.
Stored ignores for the document are applied unless --no-ignores is set.

Examples:
  dsaudit-cli analyze checkout.json
  dsaudit-cli analyze checkout.json --select 12:4,12:9 --details
  dsaudit-cli analyze checkout.json --json > report.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		doc, err := document.Load(args[0])
		if err != nil {
			return err
		}

		analyze := commands.NewAnalyzeCommand(doc, doc, GetCatalog(), analyzeSelection).
			WithLogger(logger).
			WithProgress(stderrProgress(cmd))
		analyze.Weights = cfg.Weights
		analyze.BatchSize = cfg.BatchSize

		metrics, err := analyze.Execute(ctx)
		if application.IsCancelled(err) {
			return nil
		}
		if err != nil {
			return err
		}

		recompute := commands.NewRecomputeCommand(GetStore(), metrics)
		if analyzeNoIgnores {
			recompute.WithIgnores(domain.NewIgnoreSets())
		}
		filtered, err := recompute.Execute(ctx)
		if err != nil {
			return err
		}

		result := report.Result{Metrics: metrics, Filtered: *filtered}
		if analyzeJSON {
			return report.WriteJSON(cmd.OutOrStdout(), result)
		}
		opts := report.Options{}
		if analyzeDetails {
			opts = report.Options{Rows: true, Orphans: analyzeOrphans}
		}
		return report.WriteText(cmd.OutOrStdout(), result, opts)
	},
}

// stderrProgress prints checkpoints when verbose logging is on
func stderrProgress(cmd *cobra.Command) ports.ProgressFunc {
	return func(p domain.Progress) {
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %d/%d\n", p.Phase, p.Processed, p.Total)
		}
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringSliceVarP(&analyzeSelection, "select", "s", nil, "node IDs to analyse (comma separated)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "write the full result as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeNoIgnores, "no-ignores", false, "do not apply stored ignores")
	analyzeCmd.Flags().BoolVarP(&analyzeDetails, "details", "d", false, "include instances and hardcoded findings")
	analyzeCmd.Flags().IntVar(&analyzeOrphans, "orphans", 50, "maximum hardcoded findings listed with --details")
}
