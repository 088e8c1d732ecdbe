package domain

// Library source labels for instances that do not map to a named library
const (
	SourceUnmappedLibrary = "Other Library (not mapped)"
	SourceNoKeyLibrary    = "Other Library (no key)"
	SourceWrapper         = "Local (built with DS) – wrapper"
	SourceLocal           = "Local (standalone)"
)

// InstanceKind is the headline classification of an instance
type InstanceKind int

const (
	KindLocal InstanceKind = iota
	KindLibrary
	KindWrapper
)

func (k InstanceKind) String() string {
	switch k {
	case KindLibrary:
		return "library"
	case KindWrapper:
		return "wrapper"
	default:
		return "local"
	}
}

// MarshalText encodes the kind by name
func (k InstanceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name; unknown names decode as local
func (k *InstanceKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "library":
		*k = KindLibrary
	case "wrapper":
		*k = KindWrapper
	default:
		*k = KindLocal
	}
	return nil
}

// CollectResult is the outcome of CollectInstances
type CollectResult struct {
	Instances     []*Node
	HiddenSkipped int
}

// CollectInstances gathers every visible instance in the selection, the
// selected nodes themselves included, in traversal order. Hidden instances
// (self or ancestor) are counted and left out. Selected roots are assumed
// not to overlap.
func CollectInstances(selection []*Node) CollectResult {
	var result CollectResult
	for _, root := range selection {
		if root == nil {
			continue
		}
		root.Walk(func(n *Node) bool {
			if !n.IsInstance() {
				return true
			}
			if IsHiddenOrAncestorHidden(n) {
				result.HiddenSkipped++
			} else {
				result.Instances = append(result.Instances, n)
			}
			return true
		})
	}
	return result
}

// LibraryNameResolver maps a component key to a configured library name
type LibraryNameResolver func(componentKey string) (string, bool)

// InstanceRow is the per-instance detail row shown to the user and summed
// by ApplyExclusions.
type InstanceRow struct {
	InstanceID    string `json:"instanceId"`
	InstanceName  string `json:"instanceName"`
	ComponentID   string `json:"componentId"`
	ComponentName string `json:"componentName"`
	ComponentKey  string `json:"componentKey,omitempty"`
	Remote        bool   `json:"remote"`

	Kind          InstanceKind `json:"kind"`
	LibrarySource string       `json:"librarySource"`

	Tokens  PropertyCounts `json:"tokens"`
	Orphans PropertyCounts `json:"orphans"`

	TokenDetails  []Detail `json:"tokenDetails,omitempty"`
	OrphanDetails []Detail `json:"orphanDetails,omitempty"`
}

// Counted reports whether the row takes part in headline counts
func (r *InstanceRow) Counted() bool {
	return r.Kind != KindWrapper
}

// Categorization is the outcome of Categorize
type Categorization struct {
	LibraryCount    int
	LocalCount      int
	PerSourceCounts []Breakdown
	WrapperIDs      map[string]bool
	Rows            []InstanceRow
}

// Categorize classifies each instance as library, local or wrapper. A
// local instance is a wrapper when its subtree holds a remote instance
// whose key maps to a known library; wrappers get a row but are left out
// of every count so their nested atoms are not counted twice.
func Categorize(instances []*Node, resolveLibrary LibraryNameResolver) Categorization {
	result := Categorization{WrapperIDs: make(map[string]bool)}

	for _, inst := range instances {
		if isLocal(inst) && containsMappedLibraryInstance(inst, resolveLibrary) {
			result.WrapperIDs[inst.ID] = true
		}
	}

	sources := newBreakdownCounter()
	for _, inst := range instances {
		row := newInstanceRow(inst)
		row.Kind, row.LibrarySource = classify(inst, result.WrapperIDs[inst.ID], resolveLibrary)

		switch row.Kind {
		case KindLibrary:
			result.LibraryCount++
			sources.add(row.LibrarySource, 1)
		case KindLocal:
			result.LocalCount++
			sources.add(row.LibrarySource, 1)
		}
		result.Rows = append(result.Rows, row)
	}

	result.PerSourceCounts = sources.sorted()
	return result
}

func classify(inst *Node, wrapper bool, resolveLibrary LibraryNameResolver) (InstanceKind, string) {
	mc := inst.MainComponent
	if mc == nil || !mc.Remote {
		if wrapper {
			return KindWrapper, SourceWrapper
		}
		return KindLocal, SourceLocal
	}
	if mc.Key == "" {
		return KindLocal, SourceNoKeyLibrary
	}
	if name, ok := lookupLibrary(resolveLibrary, mc.Key); ok {
		return KindLibrary, name
	}
	return KindLocal, SourceUnmappedLibrary
}

func isLocal(inst *Node) bool {
	return inst.MainComponent == nil || !inst.MainComponent.Remote
}

// containsMappedLibraryInstance looks for a visible nested instance of a
// mapped library component. Hidden subtrees are pruned: their instances
// are never collected, so they cannot stand in for the wrapper's count.
func containsMappedLibraryInstance(inst *Node, resolveLibrary LibraryNameResolver) bool {
	found := false
	for _, child := range inst.Children {
		child.Walk(func(n *Node) bool {
			if found || !n.IsVisible() {
				return false
			}
			if n.IsInstance() && n.MainComponent != nil && n.MainComponent.Remote {
				if _, ok := lookupLibrary(resolveLibrary, n.MainComponent.Key); ok {
					found = true
					return false
				}
			}
			return true
		})
		if found {
			break
		}
	}
	return found
}

func lookupLibrary(resolveLibrary LibraryNameResolver, key string) (string, bool) {
	if resolveLibrary == nil || key == "" {
		return "", false
	}
	name, ok := resolveLibrary(key)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

func newInstanceRow(inst *Node) InstanceRow {
	row := InstanceRow{
		InstanceID:   inst.ID,
		InstanceName: inst.Name,
	}
	if mc := inst.MainComponent; mc != nil {
		row.ComponentID = mc.ID
		row.ComponentName = mc.Name
		row.ComponentKey = mc.Key
		row.Remote = mc.Remote
	}
	return row
}
