package domain

import "sort"

// VariableAlias is a reference to a variable by id
type VariableAlias struct {
	ID string
}

// Bindings maps a property name to the variables bound to it
type Bindings map[string][]VariableAlias

// Bound reports whether prop carries at least one binding
func (b Bindings) Bound(prop string) bool {
	for _, a := range b[prop] {
		if a.ID != "" {
			return true
		}
	}
	return false
}

// BoundAt reports whether element i of an array-valued property is bound
func (b Bindings) BoundAt(prop string, i int) bool {
	list := b[prop]
	return i >= 0 && i < len(list) && list[i].ID != ""
}

// VariableValue is a variable's value in one mode: either an alias to
// another variable or a literal.
type VariableValue struct {
	Alias   *VariableAlias
	Literal any
}

// IsAlias reports whether the value references another variable
func (v VariableValue) IsAlias() bool {
	return v.Alias != nil && v.Alias.ID != ""
}

// Variable is a design token
type Variable struct {
	ID           string
	Name         string
	CollectionID string
	ModeOrder    []string // collection mode order; first entry is the default mode
	Values       map[string]VariableValue
}

// FirstModeValue returns the value of the first mode. Without a known
// mode order the lexically smallest mode id is used.
func (v *Variable) FirstModeValue() (VariableValue, bool) {
	if v == nil || len(v.Values) == 0 {
		return VariableValue{}, false
	}
	for _, mode := range v.ModeOrder {
		if val, ok := v.Values[mode]; ok {
			return val, true
		}
	}
	modes := make([]string, 0, len(v.Values))
	for mode := range v.Values {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	return v.Values[modes[0]], true
}

// VariableCollection groups variables and identifies their library
type VariableCollection struct {
	ID     string
	Key    string
	Name   string
	Remote bool
}

// VariableLookup resolves a variable id; ok is false on a miss
type VariableLookup func(id string) (*Variable, bool)

// CollectionLookup resolves a collection id; ok is false on a miss
type CollectionLookup func(id string) (*VariableCollection, bool)
