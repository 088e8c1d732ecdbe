package domain

import (
	"io"
	"log/slog"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func alias(id string) VariableValue {
	return VariableValue{Alias: &VariableAlias{ID: id}}
}

func literal(v any) VariableValue {
	return VariableValue{Literal: v}
}

type variableTable map[string]*Variable

func (vt variableTable) lookup(id string) (*Variable, bool) {
	v, ok := vt[id]
	return v, ok
}

func newVariable(id string, value VariableValue) *Variable {
	return &Variable{ID: id, CollectionID: "col", Values: map[string]VariableValue{"m1": value}}
}

func TestResolver_ResolveAlias(t *testing.T) {
	vars := variableTable{
		"V:1":    newVariable("V:1", alias("V:2")),
		"V:2":    newVariable("V:2", alias("V:3")),
		"V:3":    newVariable("V:3", literal("#FFFFFF")),
		"V:a":    newVariable("V:a", alias("V:b")),
		"V:b":    newVariable("V:b", alias("V:a")),
		"V:self": newVariable("V:self", alias("V:self")),
		"V:gone": newVariable("V:gone", alias("V:missing")),
	}

	tests := []struct {
		name string
		id   string
		want string
	}{
		{"chain resolves to terminal", "V:1", "V:3"},
		{"terminal resolves to itself", "V:3", "V:3"},
		{"two-step cycle returns original", "V:a", "V:a"},
		{"self alias returns original", "V:self", "V:self"},
		{"dangling alias returns original", "V:gone", "V:gone"},
		{"unknown id returns itself", "V:unknown", "V:unknown"},
		{"empty id", "", ""},
	}

	r := NewResolver(vars.lookup, discardLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.ResolveAlias(tt.id); got != tt.want {
				t.Errorf("ResolveAlias(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestResolver_CachesPerRun(t *testing.T) {
	vars := variableTable{
		"V:1": newVariable("V:1", alias("V:2")),
		"V:2": newVariable("V:2", literal(4.0)),
	}
	lookups := 0
	lookup := func(id string) (*Variable, bool) {
		lookups++
		return vars.lookup(id)
	}

	r := NewResolver(lookup, discardLogger())
	r.ResolveAlias("V:1")
	r.ResolveAlias("V:1")
	if lookups != 2 {
		t.Errorf("expected 2 lookups, got %d", lookups)
	}

	// a fresh resolver sees changed data
	vars["V:2"] = newVariable("V:2", alias("V:3"))
	vars["V:3"] = newVariable("V:3", literal(8.0))
	if got := NewResolver(vars.lookup, nil).ResolveAlias("V:1"); got != "V:3" {
		t.Errorf("expected new run to resolve V:3, got %s", got)
	}
}

func TestResolver_FallbacksDoNotLeak(t *testing.T) {
	vars := variableTable{
		"V:a": newVariable("V:a", alias("V:b")),
		"V:b": newVariable("V:b", alias("V:a")),
		"V:c": newVariable("V:c", alias("V:d")),
		"V:d": newVariable("V:d", alias("V:missing")),
		"V:e": newVariable("V:e", alias("V:f")),
		"V:f": newVariable("V:f", literal(2.0)),
	}
	ids := []string{"V:a", "V:b", "V:c", "V:d", "V:e", "V:f"}

	want := make(map[string]string)
	for _, id := range ids {
		want[id] = NewResolver(vars.lookup, discardLogger()).ResolveAlias(id)
	}

	orders := [][]string{
		{"V:a", "V:b", "V:c", "V:d", "V:e", "V:f"},
		{"V:f", "V:e", "V:d", "V:c", "V:b", "V:a"},
		{"V:b", "V:d", "V:a", "V:c", "V:f", "V:e"},
	}
	for _, order := range orders {
		r := NewResolver(vars.lookup, discardLogger())
		for _, id := range order {
			if got := r.ResolveAlias(id); got != want[id] {
				t.Errorf("order %v: ResolveAlias(%q) = %q, want %q", order, id, got, want[id])
			}
		}
	}

	if want["V:b"] != "V:b" || want["V:c"] != "V:c" || want["V:e"] != "V:f" {
		t.Errorf("unexpected fresh results %v", want)
	}
}

func TestVariable_FirstModeValue(t *testing.T) {
	v := &Variable{
		ModeOrder: []string{"dark", "light"},
		Values:    map[string]VariableValue{"light": literal("#FFF"), "dark": alias("V:dark")},
	}
	val, ok := v.FirstModeValue()
	if !ok || !val.IsAlias() || val.Alias.ID != "V:dark" {
		t.Errorf("expected first mode in collection order, got %+v", val)
	}

	v.ModeOrder = nil
	val, _ = v.FirstModeValue()
	if val.IsAlias() {
		t.Error("expected lexically smallest mode without an order")
	}

	var empty *Variable
	if _, ok := empty.FirstModeValue(); ok {
		t.Error("expected no value on nil variable")
	}
}

func TestResolver_CollectBoundVariableIDs(t *testing.T) {
	vars := variableTable{
		"V:alias": newVariable("V:alias", alias("V:base")),
		"V:base":  newVariable("V:base", literal("#000")),
	}
	r := NewResolver(vars.lookup, discardLogger())

	paint := solid(0, 0, 0)
	paint.Bindings = Bindings{"color": {{ID: "V:paint"}}}
	nested := instance("nested", remote("btn"))
	nested.Bindings = Bindings{"opacity": {{ID: "V:nested"}}}
	child := &Node{ID: "child", Type: NodeTypeRectangle, Fills: fills(paint)}
	root := tree(instance("root", local("card"), child, nested))
	root.Bindings = Bindings{
		"fills":        {{ID: "V:alias"}, {}},
		"itemSpacing":  {{ID: "V:base"}},
		"unknownField": {{ID: "V:ignored"}},
	}

	own := r.CollectBoundVariableIDs(root)
	if len(own) != 1 {
		t.Errorf("expected alias and base to collapse to one id, got %v", own)
	}
	if _, ok := own["V:base"]; !ok {
		t.Errorf("expected canonical id V:base, got %v", own)
	}

	stop := func(n *Node) bool { return n.IsInstance() }
	all := r.CollectBoundVariableIDsRecursive(root, stop)
	if _, ok := all["V:paint"]; !ok {
		t.Error("expected paint-level binding collected")
	}
	if _, ok := all["V:nested"]; ok {
		t.Error("expected nested instance pruned")
	}
	if len(all) != 2 {
		t.Errorf("expected 2 ids, got %v", all)
	}
}

func TestHasAnyBoundVariable(t *testing.T) {
	paint := solid(0, 0, 0)
	paint.Bindings = Bindings{"color": {{ID: "V:c"}}}
	bound := &Node{ID: "b", Type: NodeTypeRectangle, Fills: fills(paint)}
	plain := &Node{ID: "p", Type: NodeTypeRectangle, Fills: fills(solid(1, 1, 1))}
	root := tree(frame("root", plain, frame("inner", bound)))

	if HasAnyBoundVariable(plain) || HasAnyBoundVariable(root) {
		t.Error("expected no bindings on plain nodes")
	}
	if !HasAnyBoundVariable(bound) {
		t.Error("expected paint binding detected")
	}
	if !HasAnyBoundVariableRecursive(root) {
		t.Error("expected nested binding detected")
	}
	if HasAnyBoundVariableRecursive(plain) {
		t.Error("expected no nested binding under plain node")
	}
	if HasAnyBoundVariable(nil) {
		t.Error("nil node has no bindings")
	}
}
