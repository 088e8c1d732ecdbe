package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
)

// EnabledLibraryFunc reports whether a collection key belongs to an enabled
// library. It may consult a remote catalog and fail.
type EnabledLibraryFunc func(ctx context.Context, collectionKey string) (bool, error)

// TrackerSources are the lookups VariableTracker consults
type TrackerSources struct {
	Variables   VariableLookup
	Collections CollectionLookup
	IsEnabled   EnabledLibraryFunc
	// LibraryName names the library of an enabled collection; the
	// collection's own name is used when it returns false.
	LibraryName func(collectionKey string) (string, bool)
}

// VariableUsage aggregates variable usage across instances
type VariableUsage struct {
	PerLibrary          []Breakdown `json:"perLibrary"`
	TotalUsages         int         `json:"totalUsages"`
	AllIDs              []string    `json:"allIds"`
	UnmappedIDs         []string    `json:"unmappedIds"`
	UnmappedCollections []string    `json:"unmappedCollections"`
}

// TrackUsage counts, per enabled library, the variables bound across the
// instances. Each instance counts a variable once; stop prunes nested
// subtrees that are tracked as instances of their own. Unresolvable
// variables or collections are recorded as unmapped. A failing catalog
// lookup is logged and treated as "not enabled".
func TrackUsage(ctx context.Context, instances []*Node, r *Resolver, src TrackerSources, stop func(*Node) bool, logger *slog.Logger) VariableUsage {
	if logger == nil {
		logger = slog.Default()
	}

	perLibrary := newBreakdownCounter()
	all := make(map[string]struct{})
	unmapped := make(map[string]struct{})
	var notes []string
	noted := make(map[string]bool)
	enabledCache := make(map[string]bool)
	usages := 0

	isEnabled := func(key string) bool {
		if v, ok := enabledCache[key]; ok {
			return v
		}
		enabled := false
		if src.IsEnabled != nil {
			var err error
			enabled, err = src.IsEnabled(ctx, key)
			if err != nil {
				logger.Warn("library lookup failed",
					slog.String("collection_key", key),
					slog.String("error", err.Error()))
				enabled = false
			}
		}
		enabledCache[key] = enabled
		return enabled
	}

	for _, inst := range instances {
		ids := sortedIDs(r.CollectBoundVariableIDsRecursive(inst, stop))
		for _, id := range ids {
			all[id] = struct{}{}
			usages++

			collection, ok := owningCollection(id, src)
			if !ok {
				unmapped[id] = struct{}{}
				continue
			}
			if !isEnabled(collection.Key) {
				unmapped[id] = struct{}{}
				if collection.Remote && !noted[collection.ID] {
					noted[collection.ID] = true
					notes = append(notes, fmt.Sprintf("%s (library collection not enabled)", collectionLabel(collection)))
				}
				continue
			}
			perLibrary.add(libraryLabel(collection, src), 1)
		}
	}

	rows := perLibrary.sorted()
	for i := range rows {
		rows[i].Percent = Percent(rows[i].Count, usages)
	}

	return VariableUsage{
		PerLibrary:          rows,
		TotalUsages:         usages,
		AllIDs:              sortedIDs(all),
		UnmappedIDs:         sortedIDs(unmapped),
		UnmappedCollections: notes,
	}
}

func owningCollection(id string, src TrackerSources) (*VariableCollection, bool) {
	if src.Variables == nil || src.Collections == nil {
		return nil, false
	}
	v, ok := src.Variables(id)
	if !ok || v.CollectionID == "" {
		return nil, false
	}
	c, ok := src.Collections(v.CollectionID)
	if !ok || c == nil {
		return nil, false
	}
	return c, true
}

func libraryLabel(c *VariableCollection, src TrackerSources) string {
	if src.LibraryName != nil {
		if name, ok := src.LibraryName(c.Key); ok && name != "" {
			return name
		}
	}
	return collectionLabel(c)
}

func collectionLabel(c *VariableCollection) string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

func sortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
