package ports

import "dsaudit/internal/domain"

// IgnoreStore persists ignore sets per document. It is the only state
// that survives between analysis runs.
type IgnoreStore interface {
	// Lifecycle
	Open(dbPath string) error
	Close() error

	// Queries
	Load(documentKey string) (domain.IgnoreSets, error)

	// Updates
	Add(documentKey string, kind domain.IgnoreKind, key string) error
	Remove(documentKey string, kind domain.IgnoreKind, key string) error
	Clear(documentKey string) error
}
