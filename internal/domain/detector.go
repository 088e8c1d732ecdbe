package domain

import (
	"fmt"
	"math"
	"strconv"
)

const (
	// MaxWalkDepth bounds recursion on pathological nesting
	MaxWalkDepth = 50
	// MaxDetailRecords bounds the detail records emitted per collect call
	MaxDetailRecords = 100
)

// Category groups scored properties
type Category string

const (
	CategoryColors     Category = "colors"
	CategoryTypography Category = "typography"
	CategorySpacing    Category = "spacing"
	CategoryRadius     Category = "radius"
)

// Categories lists every category in display order
var Categories = []Category{CategoryColors, CategoryTypography, CategorySpacing, CategoryRadius}

// PropertyCounts holds per-category property counts. Spacing is carried
// for shape compatibility and is never scored, so it stays 0.
type PropertyCounts struct {
	Colors     int `json:"colors"`
	Typography int `json:"typography"`
	Spacing    int `json:"spacing"`
	Radius     int `json:"radius"`
}

// Total sums the scored categories
func (c PropertyCounts) Total() int {
	return c.Colors + c.Typography + c.Radius
}

// Get returns the count for one category
func (c PropertyCounts) Get(cat Category) int {
	switch cat {
	case CategoryColors:
		return c.Colors
	case CategoryTypography:
		return c.Typography
	case CategorySpacing:
		return c.Spacing
	case CategoryRadius:
		return c.Radius
	}
	return 0
}

// Add returns the category-wise sum of c and o
func (c PropertyCounts) Add(o PropertyCounts) PropertyCounts {
	return PropertyCounts{
		Colors:     c.Colors + o.Colors,
		Typography: c.Typography + o.Typography,
		Spacing:    c.Spacing + o.Spacing,
		Radius:     c.Radius + o.Radius,
	}
}

func (c *PropertyCounts) add(cat Category, n int) {
	switch cat {
	case CategoryColors:
		c.Colors += n
	case CategoryTypography:
		c.Typography += n
	case CategoryRadius:
		c.Radius += n
	}
}

// DetailKind tells token-bound and orphan records apart
type DetailKind string

const (
	DetailToken  DetailKind = "token"
	DetailOrphan DetailKind = "orphan"
)

// Detail is one drill-down record: the properties of one category on one
// node that were counted by a detector.
type Detail struct {
	Kind       DetailKind `json:"kind"`
	NodeID     string     `json:"nodeId"`
	NodeName   string     `json:"nodeName"`
	NodeType   NodeType   `json:"nodeType"`
	Category   Category   `json:"category"`
	Properties []string   `json:"properties"`
	Values     []string   `json:"values,omitempty"`
	Count      int        `json:"count"`

	ComponentID   string `json:"componentId,omitempty"`
	ComponentName string `json:"componentName,omitempty"`
	InstanceID    string `json:"instanceId,omitempty"`
	InstanceName  string `json:"instanceName,omitempty"`
}

// OrphanKey returns the composite ignore key of the record
func (d Detail) OrphanKey() OrphanKey {
	return OrphanKey{NodeID: d.NodeID, ComponentID: d.ComponentID}
}

// Owner identifies the instance and component a record belongs to
type Owner struct {
	ComponentID   string
	ComponentName string
	InstanceID    string
	InstanceName  string
}

// OwnerOf builds the owner of records found under instance inst
func OwnerOf(inst *Node) Owner {
	o := Owner{InstanceID: inst.ID, InstanceName: inst.Name}
	if mc := inst.MainComponent; mc != nil {
		o.ComponentID = mc.ID
		o.ComponentName = mc.Name
	}
	return o
}

// DetailSink accumulates detail records up to a fixed budget
type DetailSink struct {
	limit   int
	Records []Detail
}

// NewDetailSink creates a sink holding at most limit records
func NewDetailSink(limit int) *DetailSink {
	return &DetailSink{limit: limit}
}

// Full reports whether the budget is exhausted
func (s *DetailSink) Full() bool {
	return len(s.Records) >= s.limit
}

func (s *DetailSink) add(d Detail) bool {
	if s.Full() {
		return false
	}
	s.Records = append(s.Records, d)
	return true
}

// Side selects which half of a property split a detector counts
type Side int

const (
	SideToken Side = iota
	SideOrphan
)

// Detector walks a subtree and counts (or collects) the properties on its
// side: token-bound for the token detector, hardcoded for the orphan
// detector. Both sides share the same filtering and limits, so every
// effective property lands on exactly one side.
type Detector struct {
	side     Side
	maxDepth int

	// Stop, when set, prunes descendants for which it returns true. The
	// root passed to a walk is never stopped.
	Stop func(*Node) bool
}

// NewTokenDetector counts properties bound to variables
func NewTokenDetector() *Detector {
	return &Detector{side: SideToken, maxDepth: MaxWalkDepth}
}

// NewOrphanDetector counts hardcoded properties
func NewOrphanDetector() *Detector {
	return &Detector{side: SideOrphan, maxDepth: MaxWalkDepth}
}

func (d *Detector) kind() DetailKind {
	if d.side == SideToken {
		return DetailToken
	}
	return DetailOrphan
}

// CountRecursive counts the detector's properties over n's subtree
func (d *Detector) CountRecursive(n *Node) PropertyCounts {
	var counts PropertyCounts
	if n == nil || IsExcluded(n) {
		return counts
	}
	d.count(n, 0, &counts)
	return counts
}

func (d *Detector) count(n *Node, depth int, counts *PropertyCounts) {
	for _, f := range evaluate(n, d.side) {
		counts.add(f.category, f.count)
	}
	if depth >= d.maxDepth {
		return
	}
	for _, child := range n.Children {
		if d.pruned(child) {
			continue
		}
		d.count(child, depth+1, counts)
	}
}

// CollectRecursive appends one record per node and category to sink,
// stopping once the sink is full.
func (d *Detector) CollectRecursive(n *Node, sink *DetailSink, owner Owner) {
	if n == nil || sink == nil || sink.Full() || IsExcluded(n) {
		return
	}
	d.collect(n, 0, sink, owner)
}

func (d *Detector) collect(n *Node, depth int, sink *DetailSink, owner Owner) {
	for _, f := range evaluate(n, d.side) {
		record := Detail{
			Kind:          d.kind(),
			NodeID:        n.ID,
			NodeName:      n.Name,
			NodeType:      n.Type,
			Category:      f.category,
			Properties:    f.properties,
			Values:        f.values,
			Count:         f.count,
			ComponentID:   owner.ComponentID,
			ComponentName: owner.ComponentName,
			InstanceID:    owner.InstanceID,
			InstanceName:  owner.InstanceName,
		}
		if !sink.add(record) {
			return
		}
	}
	if depth >= d.maxDepth {
		return
	}
	for _, child := range n.Children {
		if sink.Full() {
			return
		}
		if d.pruned(child) {
			continue
		}
		d.collect(child, depth+1, sink, owner)
	}
}

// pruned checks a child before descending. Ancestors were already checked
// on the way down, so the child's own flags suffice.
func (d *Detector) pruned(child *Node) bool {
	if child == nil || !child.IsVisible() || IsSkipped(child) {
		return true
	}
	return d.Stop != nil && d.Stop(child)
}

// finding is what one node contributes to one category on one side
type finding struct {
	category   Category
	properties []string
	values     []string
	count      int
}

func (f *finding) record(prop, value string) {
	f.properties = append(f.properties, prop)
	f.values = append(f.values, value)
	f.count++
}

// evaluate classifies every effective property on n and keeps the ones on
// the requested side.
func evaluate(n *Node, side Side) []finding {
	wantBound := side == SideToken
	var out []finding

	colors := finding{category: CategoryColors}
	evaluatePaints(&colors, "fill", "fills", n.Fills, n.Bindings, wantBound)
	evaluatePaints(&colors, "stroke", "strokes", n.Strokes, n.Bindings, wantBound)
	if colors.count > 0 {
		out = append(out, colors)
	}

	if n.Has(IsText) && !n.Text.UsesTextStyle() {
		typo := finding{category: CategoryTypography}
		evaluateText(&typo, n.Text, n.Bindings, wantBound)
		if typo.count > 0 {
			out = append(out, typo)
		}
	}

	if n.Has(HasCornerRadius) && n.CornerRadius.Present() {
		bound := false
		for _, prop := range radiusBindings {
			if n.Bindings.Bound(prop) {
				bound = true
				break
			}
		}
		if bound == wantBound {
			radius := finding{category: CategoryRadius}
			radius.record("cornerRadius", formatNumber(n.CornerRadius.Value))
			out = append(out, radius)
		}
	}

	return out
}

var radiusBindings = []string{
	"cornerRadius", "topLeftRadius", "topRightRadius", "bottomLeftRadius", "bottomRightRadius",
}

func evaluatePaints(f *finding, label, prop string, paints *Paints, nodeBindings Bindings, wantBound bool) {
	if paints == nil || paints.Mixed {
		return
	}
	for i, p := range paints.Items {
		if !p.IsEffective() {
			continue
		}
		bound := p.Bindings.Bound("color") || nodeBindings.BoundAt(prop, i)
		if bound != wantBound {
			continue
		}
		if bound {
			f.record(label, boundPaintID(p, nodeBindings[prop], i))
		} else {
			f.record(label, paintValue(p))
		}
	}
}

func boundPaintID(p Paint, nodeAliases []VariableAlias, i int) string {
	if aliases := p.Bindings["color"]; len(aliases) > 0 && aliases[0].ID != "" {
		return aliases[0].ID
	}
	if i < len(nodeAliases) {
		return nodeAliases[i].ID
	}
	return ""
}

type textProperty struct {
	name     string
	value    func(*TextProps) TextValue
	bindings []string
}

var textProperties = []textProperty{
	{"fontSize", func(t *TextProps) TextValue { return t.FontSize }, []string{"fontSize"}},
	{"lineHeight", func(t *TextProps) TextValue { return t.LineHeight }, []string{"lineHeight"}},
	{"letterSpacing", func(t *TextProps) TextValue { return t.LetterSpacing }, []string{"letterSpacing"}},
	{"fontFamily", func(t *TextProps) TextValue { return t.FontFamily }, []string{"fontFamily"}},
	{"fontWeight", func(t *TextProps) TextValue { return t.FontWeight }, []string{"fontWeight", "fontStyle"}},
}

func evaluateText(f *finding, text *TextProps, b Bindings, wantBound bool) {
	for _, tp := range textProperties {
		v := tp.value(text)
		if !v.Present() {
			continue
		}
		bound := false
		for _, prop := range tp.bindings {
			if b.Bound(prop) {
				bound = true
				break
			}
		}
		if bound == wantBound {
			f.record(tp.name, v.Value)
		}
	}
}

func paintValue(p Paint) string {
	if p.IsSolid() && p.Color != nil {
		return p.Color.Hex()
	}
	return p.Type
}

// Hex formats the color as #RRGGBB, or #RRGGBBAA when translucent
func (c Color) Hex() string {
	channel := func(v float64) int {
		return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
	}
	if c.A > 0 && c.A < 1 {
		return fmt.Sprintf("#%02X%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B), channel(c.A))
	}
	return fmt.Sprintf("#%02X%02X%02X", channel(c.R), channel(c.G), channel(c.B))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
