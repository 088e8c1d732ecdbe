package ports

import "context"

// Library describes one configured design-system library
type Library struct {
	Name           string
	Enabled        bool
	ComponentKeys  int
	CollectionKeys int
}

// LibraryCatalog maps component and collection keys to library names and
// knows which libraries are enabled.
type LibraryCatalog interface {
	// ComponentLibrary returns the library a component key belongs to
	ComponentLibrary(componentKey string) (string, bool)

	// CollectionLibrary returns the library a variable collection key belongs to
	CollectionLibrary(collectionKey string) (string, bool)

	// IsEnabledLibrary reports whether the collection belongs to an enabled
	// library. Implementations backed by a remote catalog may fail.
	IsEnabledLibrary(ctx context.Context, collectionKey string) (bool, error)

	// Libraries lists the configured libraries
	Libraries() []Library
}
