package commands

import (
	"context"

	"dsaudit/internal/ports"
)

// ListLibrariesCommand lists the configured design-system libraries
type ListLibrariesCommand struct {
	catalog ports.LibraryCatalog
}

// NewListLibrariesCommand creates a new ListLibrariesCommand
func NewListLibrariesCommand(catalog ports.LibraryCatalog) *ListLibrariesCommand {
	return &ListLibrariesCommand{catalog: catalog}
}

// Execute runs the list libraries command
func (c *ListLibrariesCommand) Execute(ctx context.Context) ([]ports.Library, error) {
	if c.catalog == nil {
		return nil, nil
	}
	return c.catalog.Libraries(), nil
}
