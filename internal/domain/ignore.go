package domain

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// IgnoreKind names one of the three ignore sets
type IgnoreKind string

const (
	IgnoreComponent IgnoreKind = "component"
	IgnoreInstance  IgnoreKind = "instance"
	IgnoreOrphan    IgnoreKind = "orphan"
)

// ParseIgnoreKind parses a kind name
func ParseIgnoreKind(s string) (IgnoreKind, bool) {
	switch IgnoreKind(strings.ToLower(strings.TrimSpace(s))) {
	case IgnoreComponent:
		return IgnoreComponent, true
	case IgnoreInstance:
		return IgnoreInstance, true
	case IgnoreOrphan:
		return IgnoreOrphan, true
	}
	return "", false
}

const orphanKeySeparator = "|"

// OrphanKey scopes an orphan ignore to one node within one component
type OrphanKey struct {
	NodeID      string
	ComponentID string
}

// String encodes the key as "node|component"
func (k OrphanKey) String() string {
	return k.NodeID + orphanKeySeparator + k.ComponentID
}

// ParseOrphanKey decodes a "node|component" key
func ParseOrphanKey(s string) (OrphanKey, error) {
	node, component, ok := strings.Cut(s, orphanKeySeparator)
	if !ok || node == "" {
		return OrphanKey{}, fmt.Errorf("orphan key %q: expected <node-id>%s<component-id>", s, orphanKeySeparator)
	}
	return OrphanKey{NodeID: node, ComponentID: component}, nil
}

// IgnoreSets are the user's exclusions. They never remove data; they only
// gate which rows ApplyExclusions sums.
type IgnoreSets struct {
	Components map[string]bool `json:"components"`
	Instances  map[string]bool `json:"instances"`
	Orphans    map[string]bool `json:"orphans"`
}

// NewIgnoreSets returns empty, ready-to-use sets
func NewIgnoreSets() IgnoreSets {
	return IgnoreSets{
		Components: make(map[string]bool),
		Instances:  make(map[string]bool),
		Orphans:    make(map[string]bool),
	}
}

func (s *IgnoreSets) set(kind IgnoreKind) map[string]bool {
	switch kind {
	case IgnoreComponent:
		if s.Components == nil {
			s.Components = make(map[string]bool)
		}
		return s.Components
	case IgnoreInstance:
		if s.Instances == nil {
			s.Instances = make(map[string]bool)
		}
		return s.Instances
	case IgnoreOrphan:
		if s.Orphans == nil {
			s.Orphans = make(map[string]bool)
		}
		return s.Orphans
	}
	return nil
}

// Add inserts key into the set of the given kind
func (s *IgnoreSets) Add(kind IgnoreKind, key string) {
	if set := s.set(kind); set != nil && key != "" {
		set[key] = true
	}
}

// Remove deletes key from the set of the given kind
func (s *IgnoreSets) Remove(kind IgnoreKind, key string) {
	if set := s.set(kind); set != nil {
		delete(set, key)
	}
}

// Toggle flips membership of key and reports whether it is now ignored
func (s *IgnoreSets) Toggle(kind IgnoreKind, key string) bool {
	if s.Contains(kind, key) {
		s.Remove(kind, key)
		return false
	}
	s.Add(kind, key)
	return true
}

// Contains reports whether key is in the set of the given kind
func (s IgnoreSets) Contains(kind IgnoreKind, key string) bool {
	switch kind {
	case IgnoreComponent:
		return s.Components[key]
	case IgnoreInstance:
		return s.Instances[key]
	case IgnoreOrphan:
		return s.Orphans[key]
	}
	return false
}

// Keys returns the keys of one set in sorted order
func (s IgnoreSets) Keys(kind IgnoreKind) []string {
	var set map[string]bool
	switch kind {
	case IgnoreComponent:
		set = s.Components
	case IgnoreInstance:
		set = s.Instances
	case IgnoreOrphan:
		set = s.Orphans
	}
	return slices.Sorted(maps.Keys(set))
}

// Len returns the total number of ignored keys
func (s IgnoreSets) Len() int {
	return len(s.Components) + len(s.Instances) + len(s.Orphans)
}

// Clone returns an independent copy
func (s IgnoreSets) Clone() IgnoreSets {
	out := NewIgnoreSets()
	for k := range s.Components {
		out.Components[k] = true
	}
	for k := range s.Instances {
		out.Instances[k] = true
	}
	for k := range s.Orphans {
		out.Orphans[k] = true
	}
	return out
}
