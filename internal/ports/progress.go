package ports

import "dsaudit/internal/domain"

// ProgressReporter receives checkpoints from a running analysis
type ProgressReporter interface {
	Report(p domain.Progress)
}

// ProgressFunc adapts a function to ProgressReporter
type ProgressFunc func(p domain.Progress)

// Report calls f(p)
func (f ProgressFunc) Report(p domain.Progress) {
	f(p)
}
