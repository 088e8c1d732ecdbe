// Package report renders analysis results as plain text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"dsaudit/internal/domain"
)

// Result pairs a finished analysis with the numbers recomputed under the
// document's ignore sets.
type Result struct {
	Metrics  *domain.CoverageMetrics `json:"metrics"`
	Filtered domain.FilteredMetrics  `json:"filtered"`
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Options controls the text report
type Options struct {
	// Rows includes the per-instance table
	Rows bool
	// Orphans lists up to this many hardcoded findings (0 = none)
	Orphans int
}

// WriteText writes a human readable report
func WriteText(w io.Writer, r Result, opts Options) error {
	var sb strings.Builder
	m := r.Metrics
	f := r.Filtered

	fmt.Fprintf(&sb, "%s  (run %s)\n", m.Document, shortID(m.RunID))
	fmt.Fprintf(&sb, "Selection: %d node(s), %d instance(s), %d hidden skipped, %d wrapper(s)\n\n",
		m.SelectionSize, m.InstanceCount, m.HiddenSkipped, m.WrapperCount)

	sb.WriteString(Headline(f.Summary))
	if f.IgnoredKeyCount > 0 {
		fmt.Fprintf(&sb, "Ignored: %d key(s), %d instance row(s), %d hardcoded value(s)\n",
			f.IgnoredKeyCount, f.IgnoredRows, f.IgnoredOrphans)
	}

	writeBreakdown(&sb, "Components by source", f.PerSourceCounts)
	writeBreakdown(&sb, "Components", f.PerComponent)

	sb.WriteString("\nProperties        tokens  hardcoded\n")
	for _, cat := range domain.Categories {
		fmt.Fprintf(&sb, "  %-14s %7d  %9d\n", cat, f.TokenBound.Get(cat), f.Hardcoded.Get(cat))
	}

	writeBreakdown(&sb, "Variables by library", m.Variables.PerLibrary)
	if len(m.Variables.UnmappedCollections) > 0 {
		sb.WriteString("\nUnmapped collections\n")
		for _, c := range m.Variables.UnmappedCollections {
			fmt.Fprintf(&sb, "  %s\n", c)
		}
	}
	if n := len(m.Variables.UnmappedIDs); n > 0 {
		fmt.Fprintf(&sb, "Unmapped variables: %d\n", n)
	}

	if opts.Rows {
		writeRows(&sb, m.Rows)
	}
	if opts.Orphans > 0 {
		writeOrphans(&sb, m.Rows, opts.Orphans)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Headline formats the three scores and the counts behind them
func Headline(s domain.Summary) string {
	return fmt.Sprintf("Component coverage  %5.1f%%  (%d library / %d local)\n"+
		"Token adoption      %5.1f%%  (%d bound / %d hardcoded)\n"+
		"Overall score       %5.1f%%\n",
		s.ComponentCoverage, s.LibraryCount, s.LocalCount,
		s.TokenAdoption, s.TokenBoundTotal, s.HardcodedTotal,
		s.OverallScore)
}

func writeBreakdown(sb *strings.Builder, title string, rows []domain.Breakdown) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s\n", title)
	for _, b := range rows {
		fmt.Fprintf(sb, "  %-40s %5d  %5.1f%%\n", b.Label, b.Count, b.Percent)
	}
}

func writeRows(sb *strings.Builder, rows []domain.InstanceRow) {
	if len(rows) == 0 {
		return
	}
	sb.WriteString("\nInstances\n")
	for _, row := range rows {
		fmt.Fprintf(sb, "  %-12s %-28s %-28s %3d/%-3d  %s\n",
			row.InstanceID, truncate(row.InstanceName, 28), truncate(row.ComponentName, 28),
			row.Tokens.Total(), row.Orphans.Total(), row.LibrarySource)
	}
}

func writeOrphans(sb *strings.Builder, rows []domain.InstanceRow, limit int) {
	var written int
	for _, row := range rows {
		for _, d := range row.OrphanDetails {
			if written == 0 {
				sb.WriteString("\nHardcoded values\n")
			}
			if written == limit {
				sb.WriteString("  ...\n")
				return
			}
			fmt.Fprintf(sb, "  %-30s %-10s %s  [%s]\n",
				truncate(d.NodeName, 30), d.Category, FormatValues(d), d.OrphanKey())
			written++
		}
	}
}

// FormatValues joins a finding's properties with their literal values
func FormatValues(d domain.Detail) string {
	parts := make([]string, len(d.Properties))
	for i, p := range d.Properties {
		if i < len(d.Values) && d.Values[i] != "" {
			parts[i] = p + "=" + d.Values[i]
		} else {
			parts[i] = p
		}
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
