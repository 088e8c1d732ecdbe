package application

import "dsaudit/internal/domain"

// Re-export domain types for use by adapters
type (
	CoverageMetrics = domain.CoverageMetrics
	IgnoreSets      = domain.IgnoreSets
	IgnoreKind      = domain.IgnoreKind
)

// Re-export ignore kinds
const (
	IgnoreComponent = domain.IgnoreComponent
	IgnoreInstance  = domain.IgnoreInstance
	IgnoreOrphan    = domain.IgnoreOrphan
)
