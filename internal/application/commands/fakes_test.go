package commands

import (
	"context"
	"errors"

	"dsaudit/internal/domain"
	"dsaudit/internal/ports"
)

// fakeDocument is an in-memory SceneGraph and VariableStore
type fakeDocument struct {
	root        *domain.Node
	selection   []string
	nodes       map[string]*domain.Node
	variables   map[string]*domain.Variable
	collections map[string]*domain.VariableCollection
}

func newFakeDocument(root *domain.Node, selection ...string) *fakeDocument {
	d := &fakeDocument{
		root:        root,
		selection:   selection,
		nodes:       make(map[string]*domain.Node),
		variables:   make(map[string]*domain.Variable),
		collections: make(map[string]*domain.VariableCollection),
	}
	d.index(root, nil)
	return d
}

func (d *fakeDocument) index(n, parent *domain.Node) {
	n.Parent = parent
	d.nodes[n.ID] = n
	for _, child := range n.Children {
		d.index(child, n)
	}
}

func (d *fakeDocument) Name() string        { return "Fake" }
func (d *fakeDocument) Key() string         { return "fake-doc" }
func (d *fakeDocument) Selection() []string { return d.selection }

func (d *fakeDocument) NodeByID(id string) (*domain.Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

func (d *fakeDocument) VariableByID(id string) (*domain.Variable, bool) {
	v, ok := d.variables[id]
	return v, ok
}

func (d *fakeDocument) CollectionByID(id string) (*domain.VariableCollection, bool) {
	c, ok := d.collections[id]
	return c, ok
}

// fakeCatalog maps component and collection keys to libraries
type fakeCatalog struct {
	components  map[string]string
	collections map[string]string
	failing     bool
}

func (c *fakeCatalog) ComponentLibrary(key string) (string, bool) {
	name, ok := c.components[key]
	return name, ok
}

func (c *fakeCatalog) CollectionLibrary(key string) (string, bool) {
	name, ok := c.collections[key]
	return name, ok
}

func (c *fakeCatalog) IsEnabledLibrary(_ context.Context, key string) (bool, error) {
	if c.failing {
		return false, errors.New("catalog offline")
	}
	_, ok := c.collections[key]
	return ok, nil
}

func (c *fakeCatalog) Libraries() []ports.Library {
	return []ports.Library{{Name: "Design Components", Enabled: true, ComponentKeys: len(c.components)}}
}

// memoryStore is an in-memory IgnoreStore
type memoryStore struct {
	sets map[string]domain.IgnoreSets
	err  error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sets: make(map[string]domain.IgnoreSets)}
}

func (s *memoryStore) Open(string) error { return nil }
func (s *memoryStore) Close() error      { return nil }

func (s *memoryStore) Load(documentKey string) (domain.IgnoreSets, error) {
	if s.err != nil {
		return domain.IgnoreSets{}, s.err
	}
	if sets, ok := s.sets[documentKey]; ok {
		return sets.Clone(), nil
	}
	return domain.NewIgnoreSets(), nil
}

func (s *memoryStore) Add(documentKey string, kind domain.IgnoreKind, key string) error {
	if s.err != nil {
		return s.err
	}
	sets, ok := s.sets[documentKey]
	if !ok {
		sets = domain.NewIgnoreSets()
	}
	sets.Add(kind, key)
	s.sets[documentKey] = sets
	return nil
}

func (s *memoryStore) Remove(documentKey string, kind domain.IgnoreKind, key string) error {
	if s.err != nil {
		return s.err
	}
	if sets, ok := s.sets[documentKey]; ok {
		sets.Remove(kind, key)
	}
	return nil
}

func (s *memoryStore) Clear(documentKey string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.sets, documentKey)
	return nil
}
