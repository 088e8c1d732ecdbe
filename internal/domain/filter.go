package domain

import "strings"

// skipPatterns are structural-noise layer names excluded from analysis.
// Matching is a case-insensitive substring test.
var skipPatterns = []string{
	"spacer",
	"handle",
	"status bar",
	"statusbar",
	"home indicator",
	"homeindicator",
	"keyboard",
	"notch",
	"[wip]",
	"(wip)",
	"wip/",
	"🚧",
	"do not use",
}

// IsSkipped reports whether the node's name marks it as structural noise
func IsSkipped(n *Node) bool {
	if n == nil {
		return false
	}
	name := strings.ToLower(n.Name)
	if name == "" {
		return false
	}
	for _, pattern := range skipPatterns {
		if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}

// IsHiddenOrAncestorHidden reports whether the node or any ancestor up to
// the page boundary is explicitly not visible.
func IsHiddenOrAncestorHidden(n *Node) bool {
	for current := n; current != nil; current = current.Parent {
		if current.IsContainerBoundary() {
			return false
		}
		if !current.IsVisible() {
			return true
		}
	}
	return false
}

// IsExcluded combines both filters: excluded nodes contribute nothing and
// their subtrees are pruned.
func IsExcluded(n *Node) bool {
	return IsSkipped(n) || IsHiddenOrAncestorHidden(n)
}
