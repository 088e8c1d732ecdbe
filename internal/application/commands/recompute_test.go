package commands

import (
	"context"
	"errors"
	"testing"

	"dsaudit/internal/application"
	"dsaudit/internal/domain"
)

func TestRecomputeCommand(t *testing.T) {
	ctx := context.Background()
	doc := newFakeDocument(hundredInstances(), "screen")
	metrics, err := NewAnalyzeCommand(doc, doc, dsCatalog(), nil).Execute(ctx)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}

	store := newMemoryStore()
	for i := 75; i < 100; i++ {
		store.Add(metrics.DocumentKey, domain.IgnoreInstance, metrics.Rows[i].InstanceID)
	}

	filtered, err := NewRecomputeCommand(store, metrics).Execute(ctx)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if filtered.ComponentCoverage != 100 || filtered.IgnoredRows != 25 {
		t.Errorf("expected local instances ignored, got coverage %.2f with %d ignored", filtered.ComponentCoverage, filtered.IgnoredRows)
	}
	if metrics.ComponentCoverage != 75 {
		t.Error("recompute must not modify the analysis")
	}

	// explicit sets win over the store
	filtered, err = NewRecomputeCommand(store, metrics).WithIgnores(domain.NewIgnoreSets()).Execute(ctx)
	if err != nil {
		t.Fatalf("recompute with sets: %v", err)
	}
	if filtered.ComponentCoverage != 75 {
		t.Errorf("expected unfiltered coverage, got %.2f", filtered.ComponentCoverage)
	}

	// a component ignore drops every instance of it
	ignores := domain.NewIgnoreSets()
	ignores.Add(domain.IgnoreComponent, "c-btn")
	filtered, _ = NewRecomputeCommand(nil, metrics).WithIgnores(ignores).Execute(ctx)
	if filtered.LibraryCount != 0 || filtered.ComponentCoverage != 0 {
		t.Errorf("expected every library instance ignored, got %d", filtered.LibraryCount)
	}
}

func TestRecomputeCommand_Errors(t *testing.T) {
	ctx := context.Background()

	if _, err := NewRecomputeCommand(newMemoryStore(), nil).Execute(ctx); !errors.Is(err, application.ErrNoAnalysis) {
		t.Errorf("expected ErrNoAnalysis, got %v", err)
	}

	var valErr *application.ValidationError
	if _, err := NewRecomputeCommand(nil, &domain.CoverageMetrics{}).Execute(ctx); !errors.As(err, &valErr) {
		t.Errorf("expected validation error without store or sets, got %v", err)
	}

	store := newMemoryStore()
	store.err = errors.New("locked")
	if _, err := NewRecomputeCommand(store, &domain.CoverageMetrics{DocumentKey: "doc"}).Execute(ctx); !errors.Is(err, store.err) {
		t.Errorf("expected store error, got %v", err)
	}
}

func TestListLibrariesCommand(t *testing.T) {
	libs, err := NewListLibrariesCommand(dsCatalog()).Execute(context.Background())
	if err != nil || len(libs) != 1 || libs[0].Name != "Design Components" {
		t.Errorf("unexpected libraries %+v, err %v", libs, err)
	}

	libs, err = NewListLibrariesCommand(nil).Execute(context.Background())
	if err != nil || libs != nil {
		t.Errorf("expected nothing without a catalog, got %+v", libs)
	}
}
