package domain

import "log/slog"

// BindableProperties is the fixed list of node properties that can carry a
// variable binding.
var BindableProperties = []string{
	// paints
	"fills", "strokes",
	// corner radius
	"cornerRadius", "topLeftRadius", "topRightRadius", "bottomLeftRadius", "bottomRightRadius",
	// sizing
	"width", "height", "minWidth", "maxWidth", "minHeight", "maxHeight",
	// spacing
	"itemSpacing", "counterAxisSpacing", "paddingLeft", "paddingRight", "paddingTop", "paddingBottom",
	// stroke weights
	"strokeWeight", "strokeTopWeight", "strokeRightWeight", "strokeBottomWeight", "strokeLeftWeight",
	// typography
	"fontFamily", "fontSize", "fontStyle", "fontWeight", "letterSpacing", "lineHeight",
	"paragraphSpacing", "paragraphIndent",
	// misc
	"opacity", "visible", "characters",
	"effects", "layoutGrids",
	"componentProperties",
}

// Resolver resolves variable bindings for one analysis run. Its caches
// live only as long as the Resolver and never change a result: only
// chains that reach a real terminal are shared between lookups.
type Resolver struct {
	lookup   VariableLookup
	resolved map[string]string
	// unresolved holds entry ids whose chain was cyclic or dangling. It
	// answers repeat calls for the same id only.
	unresolved map[string]bool
	logger     *slog.Logger
}

// NewResolver creates a run-scoped resolver over lookup
func NewResolver(lookup VariableLookup, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		lookup:     lookup,
		resolved:   make(map[string]string),
		unresolved: make(map[string]bool),
		logger:     logger,
	}
}

// ResolveAlias follows the alias chain starting at id and returns the
// canonical (non-alias) variable id. A lookup miss or a cyclic chain
// returns id unchanged.
func (r *Resolver) ResolveAlias(id string) string {
	if id == "" || r.unresolved[id] {
		return id
	}
	if canonical, ok := r.resolved[id]; ok {
		return canonical
	}

	var chain []string
	visited := map[string]bool{}
	current := id
	for {
		if canonical, ok := r.resolved[current]; ok {
			current = canonical
			break
		}
		visited[current] = true
		chain = append(chain, current)

		v, ok := r.lookup(current)
		if !ok {
			if current != id {
				r.logger.Debug("alias target missing",
					slog.String("variable_id", id),
					slog.String("missing_id", current))
			}
			r.unresolved[id] = true
			return id
		}
		val, ok := v.FirstModeValue()
		if !ok || !val.IsAlias() {
			break
		}
		next := val.Alias.ID
		if visited[next] {
			r.logger.Debug("cyclic alias chain",
				slog.String("variable_id", id),
				slog.String("revisited_id", next))
			r.unresolved[id] = true
			return id
		}
		current = next
	}

	// every member of a terminated chain resolves to the same terminal
	for _, member := range chain {
		r.resolved[member] = current
	}
	return current
}

// CollectBoundVariableIDs returns the canonical ids of every variable bound
// on n itself.
func (r *Resolver) CollectBoundVariableIDs(n *Node) map[string]struct{} {
	ids := make(map[string]struct{})
	r.collectInto(n, ids)
	return ids
}

// CollectBoundVariableIDsRecursive merges bound ids over n and its
// descendants. Descent stops at nodes for which stop returns true (the
// stop node itself is not scanned); stop may be nil.
func (r *Resolver) CollectBoundVariableIDsRecursive(n *Node, stop func(*Node) bool) map[string]struct{} {
	ids := make(map[string]struct{})
	root := n
	n.Walk(func(current *Node) bool {
		if current != root && stop != nil && stop(current) {
			return false
		}
		r.collectInto(current, ids)
		return true
	})
	return ids
}

func (r *Resolver) collectInto(n *Node, ids map[string]struct{}) {
	if n == nil {
		return
	}
	for _, prop := range BindableProperties {
		for _, alias := range n.Bindings[prop] {
			if alias.ID == "" {
				continue
			}
			ids[r.ResolveAlias(alias.ID)] = struct{}{}
		}
	}
	for _, paints := range []*Paints{n.Fills, n.Strokes} {
		if paints == nil {
			continue
		}
		for _, p := range paints.Items {
			for _, alias := range p.Bindings["color"] {
				if alias.ID == "" {
					continue
				}
				ids[r.ResolveAlias(alias.ID)] = struct{}{}
			}
		}
	}
}

// HasAnyBoundVariable reports whether n carries any binding at all. No
// alias resolution is needed to answer that.
func HasAnyBoundVariable(n *Node) bool {
	if n == nil {
		return false
	}
	for _, prop := range BindableProperties {
		if n.Bindings.Bound(prop) {
			return true
		}
	}
	for _, paints := range []*Paints{n.Fills, n.Strokes} {
		if paints == nil {
			continue
		}
		for _, p := range paints.Items {
			if p.Bindings.Bound("color") {
				return true
			}
		}
	}
	return false
}

// HasAnyBoundVariableRecursive reports whether n or any descendant carries
// a binding.
func HasAnyBoundVariableRecursive(n *Node) bool {
	found := false
	n.Walk(func(current *Node) bool {
		if found {
			return false
		}
		if HasAnyBoundVariable(current) {
			found = true
			return false
		}
		return true
	})
	return found
}
