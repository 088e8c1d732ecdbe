package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrCancelled        = errors.New("analysis cancelled")
	ErrEmptySelection   = errors.New("empty selection")
	ErrNodeNotFound     = errors.New("node not found")
	ErrInvalidIgnoreKey = errors.New("invalid ignore key")
	ErrNoAnalysis       = errors.New("no analysis for document")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CancelledError is returned from a progress checkpoint once the
// analysis context is done. Callers treat it as a silent abort.
type CancelledError struct {
	Processed int
	Total     int
	Cause     error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("analysis cancelled after %d of %d instances", e.Processed, e.Total)
}

func (e *CancelledError) Is(target error) bool {
	return target == ErrCancelled
}

func (e *CancelledError) Unwrap() error {
	return e.Cause
}

// IsCancelled reports whether err is a cancellation
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// SelectionError represents a selected node that cannot be resolved
type SelectionError struct {
	NodeID string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("selected node %s not found in document", e.NodeID)
}

func (e *SelectionError) Is(target error) bool {
	return target == ErrNodeNotFound
}
