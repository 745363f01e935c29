// Package resolver resolves color variables, following alias chains into
// primitive collections and falling back across modes when a brand's mode
// mapping does not lead to a raw color.
package resolver

import (
	"context"
	"fmt"

	"bennypowers.dev/dtexport/internal/collections"
	"bennypowers.dev/dtexport/internal/color"
	"bennypowers.dev/dtexport/internal/log"
	"bennypowers.dev/dtexport/internal/variables"
)

// BrandMode steers the fallback search toward a light or dark primitive mode
type BrandMode string

const (
	// NoBrandMode disables the light/dark mode search
	NoBrandMode BrandMode = ""
	// Light matches modes whose name contains "light"
	Light BrandMode = "light"
	// Dark matches modes whose name contains "dark"
	Dark BrandMode = "dark"
)

// Provenance values for results that did not come from a primitive
const (
	ProvenanceRaw        = "Raw"
	ProvenanceUnresolved = "Unresolved"
)

// ColorResult is a resolved color and a human-readable trace of where it came from
type ColorResult struct {
	Hex           string `json:"hex"`
	PrimitiveName string `json:"primitiveName"`

	// Unresolved is set when resolution gave up and Hex is the fallback color,
	// including when it gave up further down a nested alias.
	Unresolved bool `json:"-"`
}

func unresolved(provenance string) ColorResult {
	return ColorResult{Hex: color.Fallback, PrimitiveName: provenance, Unresolved: true}
}

// Resolver resolves token variables against a Source
type Resolver struct {
	source variables.Source
}

// New creates a resolver reading from source
func New(source variables.Source) *Resolver {
	return &Resolver{source: source}
}

// ResolveColor resolves variable at modeID, reading aliased primitives at primitiveModeID.
//
// Missing references and mode mismatches never fail: they produce the fallback color
// with a provenance describing what was missing. Errors are returned only when the
// source fails or the alias chain loops back on itself (*variables.CircularAliasError).
func (r *Resolver) ResolveColor(ctx context.Context, variable *variables.Variable, modeID, primitiveModeID string, brandMode BrandMode) (ColorResult, error) {
	return r.resolve(ctx, variable, modeID, primitiveModeID, brandMode, newTrail(variable))
}

func (r *Resolver) resolve(ctx context.Context, variable *variables.Variable, modeID, primitiveModeID string, brandMode BrandMode, tr *trail) (ColorResult, error) {
	value, ok := variable.Value(modeID)
	if !ok {
		log.Debug("%s has no value for mode %s", variable.Name, modeID)
		return unresolved(ProvenanceUnresolved), nil
	}
	if value.IsColor() {
		return ColorResult{Hex: color.ToHex(value.Color), PrimitiveName: ProvenanceRaw}, nil
	}

	primitive, err := r.source.VariableByID(ctx, value.AliasID)
	if err != nil {
		return ColorResult{}, fmt.Errorf("failed to look up alias target %s of %s: %w", value.AliasID, variable.Name, err)
	}
	if primitive == nil {
		log.Debug("%s aliases unknown variable %s", variable.Name, value.AliasID)
		return unresolved(ProvenanceUnresolved), nil
	}

	tr, err = tr.enter(primitive)
	if err != nil {
		return ColorResult{}, err
	}

	if result, ok := rawAt(primitive, primitiveModeID, ""); ok {
		return result, nil
	}

	collection, err := r.source.CollectionByID(ctx, primitive.CollectionID)
	if err != nil {
		return ColorResult{}, fmt.Errorf("failed to look up collection %s of %s: %w", primitive.CollectionID, primitive.Name, err)
	}

	if brandMode != NoBrandMode && collection != nil {
		if mode, found := collection.ModeContaining(string(brandMode)); found {
			if result, ok := rawAt(primitive, mode.ModeID, mode.Name); ok {
				return result, nil
			}
			if nestedValue, ok := primitive.Value(mode.ModeID); ok && nestedValue.IsAlias() {
				log.Debug("%s is an alias in mode %s, following it", primitive.Name, mode.Name)
				nested, err := r.resolve(ctx, primitive, mode.ModeID, mode.ModeID, brandMode, tr)
				if err != nil {
					return ColorResult{}, err
				}
				return ColorResult{
					Hex:           nested.Hex,
					PrimitiveName: primitive.Name + " → " + nested.PrimitiveName,
					Unresolved:    nested.Unresolved,
				}, nil
			}
		}
	}

	var modes []variables.Mode
	if collection != nil {
		modes = collection.Modes
	}
	if ids := primitive.ModeIDs(modes); len(ids) > 0 {
		if result, ok := rawAt(primitive, ids[0], "fallback"); ok {
			log.Debug("%s resolved through fallback mode %s", primitive.Name, ids[0])
			return result, nil
		}
	}

	return unresolved(ProvenanceUnresolved + ": " + primitive.Name), nil
}

// rawAt returns the primitive's raw color at modeID, annotating the provenance
// with suffix in parentheses when one is given.
func rawAt(primitive *variables.Variable, modeID, suffix string) (ColorResult, bool) {
	value, ok := primitive.Value(modeID)
	if !ok || !value.IsColor() {
		return ColorResult{}, false
	}
	provenance := primitive.Name
	if suffix != "" {
		provenance += " (" + suffix + ")"
	}
	return ColorResult{Hex: color.ToHex(value.Color), PrimitiveName: provenance}, true
}

// trail records the variables visited along one resolution chain
type trail struct {
	ids   *collections.Path[string]
	names []string
}

func newTrail(start *variables.Variable) *trail {
	return &trail{
		ids:   collections.NewPath(start.ID),
		names: []string{start.Name},
	}
}

// enter returns a copy of the trail extended with v, or a CircularAliasError
// when v was already visited.
func (t *trail) enter(v *variables.Variable) (*trail, error) {
	names := append(append([]string(nil), t.names...), v.Name)
	if t.ids.Has(v.ID) {
		return nil, variables.NewCircularAliasError(v.ID, names)
	}
	next := &trail{ids: t.ids.Clone(), names: names}
	next.ids.Push(v.ID)
	return next, nil
}
