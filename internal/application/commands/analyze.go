package commands

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"

	"dsaudit/internal/application"
	"dsaudit/internal/domain"
	"dsaudit/internal/ports"
)

const (
	// minBatchSize is the smallest number of instances between checkpoints
	minBatchSize = 20
	// batchFraction splits a run into roughly this many checkpoints
	batchFraction = 5
)

// Progress phases
const (
	PhaseInstances = "instances"
	PhaseVariables = "variables"
	PhaseDone      = "done"
)

// BatchInterval returns how many instances are processed between progress
// checkpoints: max(20, ceil(total/5)), unless override is positive.
func BatchInterval(total, override int) int {
	if override > 0 {
		return override
	}
	return max(minBatchSize, (total+batchFraction-1)/batchFraction)
}

// AnalyzeCommand audits the instances under a selection
type AnalyzeCommand struct {
	scene     ports.SceneGraph
	variables ports.VariableStore
	catalog   ports.LibraryCatalog
	progress  ports.ProgressReporter
	logger    *slog.Logger

	SelectionIDs []string // empty means the document's current selection
	Weights      domain.Weights
	BatchSize    int // 0 picks BatchInterval's default
}

// NewAnalyzeCommand creates a new AnalyzeCommand
func NewAnalyzeCommand(
	scene ports.SceneGraph,
	variables ports.VariableStore,
	catalog ports.LibraryCatalog,
	selectionIDs []string,
) *AnalyzeCommand {
	return &AnalyzeCommand{
		scene:        scene,
		variables:    variables,
		catalog:      catalog,
		logger:       slog.Default(),
		SelectionIDs: selectionIDs,
		Weights:      domain.DefaultWeights,
	}
}

// WithProgress sets the progress reporter
func (c *AnalyzeCommand) WithProgress(p ports.ProgressReporter) *AnalyzeCommand {
	c.progress = p
	return c
}

// WithLogger sets the logger
func (c *AnalyzeCommand) WithLogger(logger *slog.Logger) *AnalyzeCommand {
	if logger != nil {
		c.logger = logger
	}
	return c
}

func (c *AnalyzeCommand) selection() []string {
	if len(c.SelectionIDs) > 0 {
		return c.SelectionIDs
	}
	if c.scene == nil {
		return nil
	}
	return c.scene.Selection()
}

// Validate checks that there is something to analyse
func (c *AnalyzeCommand) Validate() error {
	if c.scene == nil {
		return &application.ValidationError{Field: "document", Message: "no document loaded"}
	}
	if c.variables == nil {
		return &application.ValidationError{Field: "variables", Message: "no variable store"}
	}
	if len(c.selection()) == 0 {
		return fmt.Errorf("%w: select at least one node", application.ErrEmptySelection)
	}
	if c.Weights.Tokens < 0 || c.Weights.Components < 0 {
		return &application.ValidationError{Field: "weights", Message: "weights must not be negative"}
	}
	return nil
}

// Execute runs the analysis. It returns a *application.CancelledError when
// ctx is done at a progress checkpoint.
func (c *AnalyzeCommand) Execute(ctx context.Context) (*domain.CoverageMetrics, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ids := c.selection()
	roots := make([]*domain.Node, 0, len(ids))
	for _, id := range ids {
		node, ok := c.scene.NodeByID(id)
		if !ok {
			return nil, &application.SelectionError{NodeID: id}
		}
		roots = append(roots, node)
	}

	collected := domain.CollectInstances(roots)
	categorized := domain.Categorize(collected.Instances, c.componentLibrary)

	c.logger.Debug("instances collected",
		slog.Int("instances", len(collected.Instances)),
		slog.Int("hidden_skipped", collected.HiddenSkipped),
		slog.Int("wrappers", len(categorized.WrapperIDs)))

	analysed := make(map[string]bool, len(collected.Instances))
	for _, inst := range collected.Instances {
		analysed[inst.ID] = true
	}
	stop := func(n *domain.Node) bool {
		return n.IsInstance() && analysed[n.ID]
	}

	tokens := domain.NewTokenDetector()
	tokens.Stop = stop
	orphans := domain.NewOrphanDetector()
	orphans.Stop = stop

	total := len(collected.Instances)
	batch := BatchInterval(total, c.BatchSize)
	rows := categorized.Rows
	for i, inst := range collected.Instances {
		row := &rows[i]
		owner := domain.OwnerOf(inst)

		row.Tokens = tokens.CountRecursive(inst)
		row.Orphans = orphans.CountRecursive(inst)

		tokenSink := domain.NewDetailSink(domain.MaxDetailRecords)
		tokens.CollectRecursive(inst, tokenSink, owner)
		row.TokenDetails = tokenSink.Records

		orphanSink := domain.NewDetailSink(domain.MaxDetailRecords)
		orphans.CollectRecursive(inst, orphanSink, owner)
		row.OrphanDetails = orphanSink.Records

		processed := i + 1
		if processed%batch == 0 || processed == total {
			if err := c.checkpoint(ctx, PhaseInstances, processed, total); err != nil {
				return nil, err
			}
		}
	}

	resolver := domain.NewResolver(c.variables.VariableByID, c.logger)
	usage := domain.TrackUsage(ctx, collected.Instances, resolver, domain.TrackerSources{
		Variables:   c.variables.VariableByID,
		Collections: c.variables.CollectionByID,
		IsEnabled:   c.isEnabledLibrary,
		LibraryName: c.collectionLibrary,
	}, stop, c.logger)
	if err := c.checkpoint(ctx, PhaseVariables, total, total); err != nil {
		return nil, err
	}

	metrics := &domain.CoverageMetrics{
		RunID:         uuid.NewString(),
		Document:      c.scene.Name(),
		DocumentKey:   c.scene.Key(),
		AnalyzedAt:    time.Now(),
		SelectionSize: len(ids),
		InstanceCount: total,
		HiddenSkipped: collected.HiddenSkipped,
		WrapperCount:  len(categorized.WrapperIDs),
		Summary:       domain.Summarize(rows, c.Weights),
		Weights:       c.Weights,
		Variables:     usage,
		Rows:          rows,
	}

	c.report(domain.Progress{Phase: PhaseDone, Processed: total, Total: total})
	c.logger.Info("analysis complete",
		slog.String("run_id", metrics.RunID),
		slog.Int("instances", total),
		slog.Float64("component_coverage", metrics.ComponentCoverage),
		slog.Float64("token_adoption", metrics.TokenAdoption),
		slog.Float64("overall_score", metrics.OverallScore))

	return metrics, nil
}

// checkpoint is the single yield and cancellation point of a run
func (c *AnalyzeCommand) checkpoint(ctx context.Context, phase string, processed, total int) error {
	if err := ctx.Err(); err != nil {
		c.logger.Debug("analysis cancelled",
			slog.String("phase", phase),
			slog.Int("processed", processed),
			slog.Int("total", total))
		return &application.CancelledError{Processed: processed, Total: total, Cause: err}
	}
	c.report(domain.Progress{Phase: phase, Processed: processed, Total: total})
	runtime.Gosched()
	return nil
}

func (c *AnalyzeCommand) report(p domain.Progress) {
	if c.progress != nil {
		c.progress.Report(p)
	}
}

func (c *AnalyzeCommand) componentLibrary(key string) (string, bool) {
	if c.catalog == nil {
		return "", false
	}
	return c.catalog.ComponentLibrary(key)
}

func (c *AnalyzeCommand) collectionLibrary(key string) (string, bool) {
	if c.catalog == nil {
		return "", false
	}
	return c.catalog.CollectionLibrary(key)
}

func (c *AnalyzeCommand) isEnabledLibrary(ctx context.Context, key string) (bool, error) {
	if c.catalog == nil {
		return false, nil
	}
	return c.catalog.IsEnabledLibrary(ctx, key)
}
