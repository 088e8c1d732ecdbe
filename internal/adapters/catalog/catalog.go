package catalog

import (
	"context"

	"dsaudit/internal/config"
	"dsaudit/internal/ports"
)

// Catalog implements ports.LibraryCatalog from the persisted library mapping
type Catalog struct {
	libraries   []config.Library
	components  map[string]string
	collections map[string]string
	enabled     map[string]bool
}

// Ensure Catalog implements LibraryCatalog
var _ ports.LibraryCatalog = (*Catalog)(nil)

// New builds a catalog from a validated config
func New(cfg *config.Config) *Catalog {
	c := &Catalog{
		components:  make(map[string]string),
		collections: make(map[string]string),
		enabled:     make(map[string]bool),
	}
	if cfg == nil {
		return c
	}
	c.libraries = cfg.Libraries
	for _, lib := range cfg.Libraries {
		for _, key := range lib.ComponentKeys {
			c.components[key] = lib.Name
		}
		for _, key := range lib.CollectionKeys {
			c.collections[key] = lib.Name
		}
		c.enabled[lib.Name] = lib.Enabled
	}
	return c
}

// ComponentLibrary returns the library a component key belongs to
func (c *Catalog) ComponentLibrary(componentKey string) (string, bool) {
	name, ok := c.components[componentKey]
	return name, ok
}

// CollectionLibrary returns the library a collection key belongs to
func (c *Catalog) CollectionLibrary(collectionKey string) (string, bool) {
	name, ok := c.collections[collectionKey]
	return name, ok
}

// IsEnabledLibrary reports whether the collection maps to an enabled library
func (c *Catalog) IsEnabledLibrary(ctx context.Context, collectionKey string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	name, ok := c.collections[collectionKey]
	if !ok {
		return false, nil
	}
	return c.enabled[name], nil
}

// Libraries lists the configured libraries in file order
func (c *Catalog) Libraries() []ports.Library {
	out := make([]ports.Library, 0, len(c.libraries))
	for _, lib := range c.libraries {
		out = append(out, ports.Library{
			Name:           lib.Name,
			Enabled:        lib.Enabled,
			ComponentKeys:  len(lib.ComponentKeys),
			CollectionKeys: len(lib.CollectionKeys),
		})
	}
	return out
}
