package commands

import (
	"context"
	"fmt"

	"dsaudit/internal/application"
	"dsaudit/internal/domain"
	"dsaudit/internal/ports"
)

// RecomputeCommand re-sums a finished analysis under the document's ignore
// sets. It never touches the scene graph.
type RecomputeCommand struct {
	store   ports.IgnoreStore
	Metrics *domain.CoverageMetrics

	// Ignores overrides the stored sets when non-nil
	Ignores *domain.IgnoreSets
}

// NewRecomputeCommand creates a new RecomputeCommand
func NewRecomputeCommand(store ports.IgnoreStore, metrics *domain.CoverageMetrics) *RecomputeCommand {
	return &RecomputeCommand{
		store:   store,
		Metrics: metrics,
	}
}

// WithIgnores recomputes under the given sets instead of the stored ones
func (c *RecomputeCommand) WithIgnores(ignores domain.IgnoreSets) *RecomputeCommand {
	c.Ignores = &ignores
	return c
}

// Validate checks that there is an analysis to recompute
func (c *RecomputeCommand) Validate() error {
	if c.Metrics == nil {
		return application.ErrNoAnalysis
	}
	if c.Ignores == nil && c.store == nil {
		return &application.ValidationError{Field: "ignores", Message: "no ignore sets or store given"}
	}
	return nil
}

// Execute runs the recompute command
func (c *RecomputeCommand) Execute(ctx context.Context) (*domain.FilteredMetrics, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ignores := c.Ignores
	if ignores == nil {
		loaded, err := c.store.Load(c.Metrics.DocumentKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load ignore sets: %w", err)
		}
		ignores = &loaded
	}

	filtered := domain.RecomputeWithExclusions(c.Metrics, *ignores)
	return &filtered, nil
}
