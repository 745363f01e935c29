// Package variables models the design-variable data exported from the host:
// collections with named modes, and color variables whose per-mode values are
// either raw colors or aliases to other variables.
package variables

import (
	"fmt"
	"slices"
	"strings"
)

// TypeColor is the only ResolvedType the exporter processes
const TypeColor = "COLOR"

// RGBA is a normalized color: channels in 0..1 with an optional alpha
type RGBA struct {
	R float64  `json:"r" yaml:"r" validate:"gte=0,lte=1"`
	G float64  `json:"g" yaml:"g" validate:"gte=0,lte=1"`
	B float64  `json:"b" yaml:"b" validate:"gte=0,lte=1"`
	A *float64 `json:"a,omitempty" yaml:"a,omitempty" validate:"omitempty,gte=0,lte=1"`
}

// Alpha returns the alpha channel, treating a missing value as opaque
func (c RGBA) Alpha() float64 {
	if c.A == nil {
		return 1
	}
	return *c.A
}

// ValueKind tags the variant held by a Value
type ValueKind int

const (
	// KindNone is the zero Value: no data for the mode
	KindNone ValueKind = iota
	// KindColor holds a raw color
	KindColor
	// KindAlias references another variable by id
	KindAlias
)

func (k ValueKind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindAlias:
		return "alias"
	default:
		return "none"
	}
}

// Value is a mode value: either a raw color or an alias reference
type Value struct {
	Kind    ValueKind
	Color   RGBA
	AliasID string
}

// ColorValue returns a raw color Value
func ColorValue(c RGBA) Value {
	return Value{Kind: KindColor, Color: c}
}

// AliasValue returns a Value referencing the variable with the given id
func AliasValue(id string) Value {
	return Value{Kind: KindAlias, AliasID: id}
}

// IsColor reports whether v holds a raw color
func (v Value) IsColor() bool { return v.Kind == KindColor }

// IsAlias reports whether v references another variable
func (v Value) IsAlias() bool { return v.Kind == KindAlias }

func (v Value) String() string {
	switch v.Kind {
	case KindColor:
		return fmt.Sprintf("rgba(%g, %g, %g, %g)", v.Color.R, v.Color.G, v.Color.B, v.Color.Alpha())
	case KindAlias:
		return "alias:" + v.AliasID
	default:
		return "<none>"
	}
}

// Variable is a design property identified by a /-delimited path
type Variable struct {
	ID           string
	Name         string
	ResolvedType string
	CollectionID string
	ValuesByMode map[string]Value
}

// IsColor reports whether the variable is COLOR-typed
func (v *Variable) IsColor() bool {
	return v.ResolvedType == TypeColor
}

// Value returns the value stored for modeID
func (v *Variable) Value(modeID string) (Value, bool) {
	val, ok := v.ValuesByMode[modeID]
	if !ok || val.Kind == KindNone {
		return Value{}, false
	}
	return val, true
}

// ModeIDs lists the modes that hold a value, following the order of modes
// (normally the owning collection's) and then any remaining ids sorted.
func (v *Variable) ModeIDs(modes []Mode) []string {
	ids := make([]string, 0, len(v.ValuesByMode))
	seen := make(map[string]bool, len(v.ValuesByMode))
	for _, m := range modes {
		if _, ok := v.Value(m.ModeID); ok && !seen[m.ModeID] {
			ids = append(ids, m.ModeID)
			seen[m.ModeID] = true
		}
	}
	var rest []string
	for id, val := range v.ValuesByMode {
		if !seen[id] && val.Kind != KindNone {
			rest = append(rest, id)
		}
	}
	slices.Sort(rest)
	return append(ids, rest...)
}

// Mode is a named variant axis of a collection
type Mode struct {
	ModeID string
	Name   string
}

// Collection groups variables under a set of named modes
type Collection struct {
	ID    string
	Name  string
	Modes []Mode
}

// ModeName returns the display name of modeID
func (c *Collection) ModeName(modeID string) (string, bool) {
	for _, m := range c.Modes {
		if m.ModeID == modeID {
			return m.Name, true
		}
	}
	return "", false
}

// HasMode reports whether modeID belongs to the collection
func (c *Collection) HasMode(modeID string) bool {
	_, ok := c.ModeName(modeID)
	return ok
}

// ModeContaining returns the first mode, in enumeration order, whose name
// contains substr ignoring case.
func (c *Collection) ModeContaining(substr string) (Mode, bool) {
	needle := strings.ToLower(substr)
	for _, m := range c.Modes {
		if strings.Contains(strings.ToLower(m.Name), needle) {
			return m, true
		}
	}
	return Mode{}, false
}

// Snapshot is a complete, read-only copy of the host's variable data
type Snapshot struct {
	Collections []*Collection
	Variables   []*Variable
}
