package domain

const unknownComponent = "(unknown component)"

// ApplyExclusions re-sums already collected instance rows, skipping rows
// whose instance or component is ignored and subtracting ignored orphan
// records from the rows that remain. It never walks the scene tree, so it
// is cheap to call on every ignore toggle. The result depends only on set
// membership: it is idempotent and independent of insertion order.
func ApplyExclusions(rows []InstanceRow, ignores IgnoreSets, weights Weights) FilteredMetrics {
	var out FilteredMetrics
	out.IgnoredKeyCount = ignores.Len()

	sources := newBreakdownCounter()
	components := newBreakdownCounter()

	for i := range rows {
		row := &rows[i]
		if ignores.Instances[row.InstanceID] || (row.ComponentID != "" && ignores.Components[row.ComponentID]) {
			out.IgnoredRows++
			continue
		}

		if row.Counted() {
			switch row.Kind {
			case KindLibrary:
				out.LibraryCount++
			default:
				out.LocalCount++
			}
			sources.add(row.LibrarySource, 1)
			components.add(componentLabel(row), 1)
		}

		out.TokenBound = out.TokenBound.Add(row.Tokens)

		orphans := row.Orphans
		for _, d := range row.OrphanDetails {
			if !ignores.Orphans[d.OrphanKey().String()] {
				continue
			}
			removed := min(d.Count, orphans.Get(d.Category))
			orphans.add(d.Category, -removed)
			out.IgnoredOrphans += removed
		}
		out.Hardcoded = out.Hardcoded.Add(orphans)
	}

	out.PerSourceCounts = sources.sorted()
	out.PerComponent = components.sorted()
	out.TokenBoundTotal = out.TokenBound.Total()
	out.HardcodedTotal = out.Hardcoded.Total()
	out.ComponentCoverage = Coverage(out.LibraryCount, out.LocalCount)
	out.TokenAdoption = TokenAdoption(out.TokenBoundTotal, out.HardcodedTotal)
	out.OverallScore = weights.Score(out.TokenAdoption, out.ComponentCoverage)
	return out
}

// Summarize computes the unfiltered summary of rows
func Summarize(rows []InstanceRow, weights Weights) Summary {
	return ApplyExclusions(rows, NewIgnoreSets(), weights).Summary
}

func componentLabel(row *InstanceRow) string {
	if row.ComponentName != "" {
		return row.ComponentName
	}
	return unknownComponent
}

// RecomputeWithExclusions applies ignore sets to a finished analysis using
// the weights it was scored with.
func RecomputeWithExclusions(m *CoverageMetrics, ignores IgnoreSets) FilteredMetrics {
	if m == nil {
		return FilteredMetrics{}
	}
	weights := m.Weights
	if weights == (Weights{}) {
		weights = DefaultWeights
	}
	return ApplyExclusions(m.Rows, ignores, weights)
}
