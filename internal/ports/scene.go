package ports

import "dsaudit/internal/domain"

// SceneGraph is read-only access to a design document's node tree.
// Nodes returned carry parent and child links.
type SceneGraph interface {
	// Name is the document's display name
	Name() string

	// Key identifies the document across sessions (ignore sets are scoped to it)
	Key() string

	// NodeByID returns a node, or false when the id is unknown
	NodeByID(id string) (*domain.Node, bool)

	// Selection returns the ids of the currently selected nodes
	Selection() []string
}

// VariableStore is read-only access to variables and their collections
type VariableStore interface {
	VariableByID(id string) (*domain.Variable, bool)
	CollectionByID(id string) (*domain.VariableCollection, bool)
}
