package domain

// NodeType is the host tool's node type tag (FRAME, INSTANCE, TEXT, ...)
type NodeType string

const (
	NodeTypeDocument  NodeType = "DOCUMENT"
	NodeTypePage      NodeType = "PAGE"
	NodeTypeFrame     NodeType = "FRAME"
	NodeTypeGroup     NodeType = "GROUP"
	NodeTypeSection   NodeType = "SECTION"
	NodeTypeComponent NodeType = "COMPONENT"
	NodeTypeInstance  NodeType = "INSTANCE"
	NodeTypeText      NodeType = "TEXT"
	NodeTypeRectangle NodeType = "RECTANGLE"
	NodeTypeVector    NodeType = "VECTOR"
)

// Capability is a bitmask of the property families a node carries
type Capability uint8

const (
	HasFills Capability = 1 << iota
	HasStrokes
	HasCornerRadius
	IsText
	HasChildren
)

// Node is a read-only view of one node in the host scene graph.
// Optional capability fields are nil when the node does not carry them.
type Node struct {
	ID      string
	Name    string
	Type    NodeType
	Visible *bool // nil means visible

	Parent   *Node
	Children []*Node

	Fills        *Paints
	Strokes      *Paints
	CornerRadius *CornerRadius
	Text         *TextProps

	// Bindings maps a bindable property name to its variable references.
	// Array-valued properties (fills, strokes, effects) keep paint order.
	Bindings Bindings

	// MainComponent is set for instances only
	MainComponent *Component
}

// Capabilities derives the capability set from field presence
func (n *Node) Capabilities() Capability {
	var c Capability
	if n.Fills != nil {
		c |= HasFills
	}
	if n.Strokes != nil {
		c |= HasStrokes
	}
	if n.CornerRadius != nil {
		c |= HasCornerRadius
	}
	if n.Text != nil {
		c |= IsText
	}
	if len(n.Children) > 0 {
		c |= HasChildren
	}
	return c
}

// Has reports whether the node carries every capability in c
func (n *Node) Has(c Capability) bool {
	return n.Capabilities()&c == c
}

// IsVisible reports the node's own visibility flag
func (n *Node) IsVisible() bool {
	return n.Visible == nil || *n.Visible
}

// IsInstance reports whether the node is a component instance
func (n *Node) IsInstance() bool {
	return n.Type == NodeTypeInstance
}

// IsContainerBoundary reports whether parent walks stop at this node
func (n *Node) IsContainerBoundary() bool {
	return n.Type == NodeTypePage || n.Type == NodeTypeDocument
}

// Walk visits n and its descendants depth-first. Returning false from fn
// prunes that node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Component is the main component definition behind an instance
type Component struct {
	ID     string
	Key    string // stable across documents, empty for unpublished components
	Name   string
	Remote bool // true when the component comes from a library
}

// Color is an RGBA color with channels in [0,1]
type Color struct {
	R, G, B float64
	A       float64
}

// Paint is one fill or stroke entry
type Paint struct {
	Type     string // SOLID, GRADIENT_LINEAR, IMAGE, ...
	Visible  *bool
	Opacity  *float64
	Color    *Color
	Bindings Bindings // paint-level bindings, e.g. "color"
}

// IsSolid reports whether the paint is a solid color
func (p Paint) IsSolid() bool {
	return p.Type == "SOLID"
}

// IsEffective reports whether the paint actually renders: visible, with a
// positive opacity, and for solid paints a color value present.
func (p Paint) IsEffective() bool {
	if p.Visible != nil && !*p.Visible {
		return false
	}
	if p.Opacity != nil && *p.Opacity <= 0 {
		return false
	}
	if p.IsSolid() && p.Color == nil {
		return false
	}
	return true
}

// Paints is an ordered paint list. Mixed marks a multi-valued list
// (e.g. text with per-range fills), which analysis treats as absent.
type Paints struct {
	Mixed bool
	Items []Paint
}

// CornerRadius holds a node's corner radius. Mixed is set when the
// corners differ and no uniform value exists.
type CornerRadius struct {
	Value       float64
	Mixed       bool
	TopLeft     float64
	TopRight    float64
	BottomRight float64
	BottomLeft  float64
}

// Present reports whether a non-zero, non-mixed radius exists
func (r *CornerRadius) Present() bool {
	return r != nil && !r.Mixed && r.Value > 0
}

// TextValue is one text styling sub-property rendered as a literal
type TextValue struct {
	Value string
	Mixed bool
}

// Present reports whether the value is set and single-valued
func (v TextValue) Present() bool {
	return !v.Mixed && v.Value != ""
}

// TextProps holds the text styling of a text node
type TextProps struct {
	StyleID       string // named text style; suppresses property counting
	FontSize      TextValue
	LineHeight    TextValue
	LetterSpacing TextValue
	FontFamily    TextValue
	FontWeight    TextValue
}

// UsesTextStyle reports whether a named text style is applied
func (t *TextProps) UsesTextStyle() bool {
	return t != nil && t.StyleID != ""
}
