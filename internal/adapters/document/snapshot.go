// Package document loads design document snapshots exported as JSON.
//
// A snapshot holds the node tree, the current selection and the local and
// subscribed variables:
//
//	{
//	  "name": "Checkout", "key": "f1le",
//	  "selection": ["12:4"],
//	  "document": { "id": "0:0", "type": "DOCUMENT", "children": [...] },
//	  "variables": { "VariableID:1": {...} },
//	  "variableCollections": { "VariableCollectionId:1": {...} }
//	}
//
// Multi-valued properties are exported as the string "mixed".
package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"dsaudit/internal/domain"
	"dsaudit/internal/ports"
)

// Snapshot is a loaded document. It implements both ports.SceneGraph and
// ports.VariableStore.
type Snapshot struct {
	name      string
	key       string
	root      *domain.Node
	selection []string

	nodes       map[string]*domain.Node
	variables   map[string]*domain.Variable
	collections map[string]*domain.VariableCollection
}

var (
	_ ports.SceneGraph    = (*Snapshot)(nil)
	_ ports.VariableStore = (*Snapshot)(nil)
)

// Load reads a snapshot file. A snapshot without a key is keyed by its
// absolute path so ignore sets still have a stable scope.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	snap, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if snap.key == "" {
		if abs, err := filepath.Abs(path); err == nil {
			snap.key = abs
		} else {
			snap.key = path
		}
	}
	if snap.name == "" {
		snap.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return snap, nil
}

// Decode parses a snapshot from r
func Decode(r io.Reader) (*Snapshot, error) {
	var raw snapshotJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid document JSON: %w", err)
	}
	if raw.Document == nil {
		return nil, fmt.Errorf("document has no root node")
	}

	s := &Snapshot{
		name:        raw.Name,
		key:         raw.Key,
		selection:   raw.Selection,
		nodes:       make(map[string]*domain.Node),
		variables:   make(map[string]*domain.Variable, len(raw.Variables)),
		collections: make(map[string]*domain.VariableCollection, len(raw.Collections)),
	}

	modes := make(map[string][]string, len(raw.Collections))
	for id, c := range raw.Collections {
		if c.ID == "" {
			c.ID = id
		}
		s.collections[c.ID] = &domain.VariableCollection{
			ID:     c.ID,
			Key:    c.Key,
			Name:   c.Name,
			Remote: c.Remote,
		}
		order := make([]string, 0, len(c.Modes))
		for _, m := range c.Modes {
			order = append(order, m.ModeID)
		}
		modes[c.ID] = order
	}

	for id, v := range raw.Variables {
		if v.ID == "" {
			v.ID = id
		}
		variable := &domain.Variable{
			ID:           v.ID,
			Name:         v.Name,
			CollectionID: v.CollectionID,
			ModeOrder:    modes[v.CollectionID],
			Values:       make(map[string]domain.VariableValue, len(v.ValuesByMode)),
		}
		for mode, value := range v.ValuesByMode {
			variable.Values[mode] = decodeValue(value)
		}
		s.variables[variable.ID] = variable
	}

	root, err := s.buildNode(raw.Document, nil)
	if err != nil {
		return nil, err
	}
	s.root = root
	return s, nil
}

// Name returns the document's display name
func (s *Snapshot) Name() string { return s.name }

// Key returns the document key ignore sets are scoped to
func (s *Snapshot) Key() string { return s.key }

// Root returns the document node
func (s *Snapshot) Root() *domain.Node { return s.root }

// Selection returns the exported selection
func (s *Snapshot) Selection() []string { return s.selection }

// NodeByID looks up a node anywhere in the tree
func (s *Snapshot) NodeByID(id string) (*domain.Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// VariableByID looks up a variable
func (s *Snapshot) VariableByID(id string) (*domain.Variable, bool) {
	v, ok := s.variables[id]
	return v, ok
}

// CollectionByID looks up a variable collection
func (s *Snapshot) CollectionByID(id string) (*domain.VariableCollection, bool) {
	c, ok := s.collections[id]
	return c, ok
}

func (s *Snapshot) buildNode(raw *nodeJSON, parent *domain.Node) (*domain.Node, error) {
	if raw.ID == "" {
		return nil, fmt.Errorf("node %q has no id", raw.Name)
	}
	if _, dup := s.nodes[raw.ID]; dup {
		return nil, fmt.Errorf("duplicate node id %s", raw.ID)
	}

	n := &domain.Node{
		ID:       raw.ID,
		Name:     raw.Name,
		Type:     domain.NodeType(raw.Type),
		Visible:  raw.Visible,
		Parent:   parent,
		Bindings: decodeBindings(raw.BoundVariables),
	}
	s.nodes[n.ID] = n

	var err error
	if n.Fills, err = decodePaints(raw.Fills); err != nil {
		return nil, fmt.Errorf("node %s fills: %w", n.ID, err)
	}
	if n.Strokes, err = decodePaints(raw.Strokes); err != nil {
		return nil, fmt.Errorf("node %s strokes: %w", n.ID, err)
	}
	n.CornerRadius = decodeRadius(raw)
	if n.Type == domain.NodeTypeText {
		n.Text = decodeText(raw)
	}
	if mc := raw.MainComponent; mc != nil {
		n.MainComponent = &domain.Component{
			ID:     mc.ID,
			Key:    mc.Key,
			Name:   mc.Name,
			Remote: mc.Remote,
		}
	}

	for _, child := range raw.Children {
		c, err := s.buildNode(child, n)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, c)
	}
	return n, nil
}

// isMixed reports whether a raw property holds the "mixed" marker
func isMixed(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte(`"mixed"`))
}

func present(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
