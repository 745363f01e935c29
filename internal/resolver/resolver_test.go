package resolver_test

import (
	"context"
	"errors"
	"testing"

	"bennypowers.dev/dtexport/internal/resolver"
	"bennypowers.dev/dtexport/internal/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgb(r, g, b float64) variables.Value {
	return variables.ColorValue(variables.RGBA{R: r, G: g, B: b})
}

func alias(id string) variables.Value {
	return variables.AliasValue(id)
}

// fixture builds three collections:
//
//	Primitives (Default, Dark)      raw colors
//	Brand      (Acme Light, Acme Dark) aliases into Primitives
//	Tokens     (Light, Dark)        aliases into Primitives or Brand
func fixture() *variables.Store {
	return variables.NewStore(&variables.Snapshot{
		Collections: []*variables.Collection{
			{ID: "prims", Name: "Primitives", Modes: []variables.Mode{
				{ModeID: "p:default", Name: "Default"},
				{ModeID: "p:dark", Name: "Dark"},
			}},
			{ID: "brand", Name: "Brand", Modes: []variables.Mode{
				{ModeID: "b:light", Name: "Acme Light"},
				{ModeID: "b:dark", Name: "Acme Dark"},
			}},
			{ID: "toks", Name: "Tokens", Modes: []variables.Mode{
				{ModeID: "t:light", Name: "Light"},
				{ModeID: "t:dark", Name: "Dark"},
			}},
		},
		Variables: []*variables.Variable{
			{ID: "gray50", Name: "Gray/50", ResolvedType: variables.TypeColor, CollectionID: "prims",
				ValuesByMode: map[string]variables.Value{"p:default": rgb(1, 1, 1), "p:dark": rgb(0, 0, 0)}},
			{ID: "gray900", Name: "Gray/900", ResolvedType: variables.TypeColor, CollectionID: "prims",
				ValuesByMode: map[string]variables.Value{"p:default": rgb(0.2, 0.2, 0.2)}},
			{ID: "darkonly", Name: "Red/500", ResolvedType: variables.TypeColor, CollectionID: "prims",
				ValuesByMode: map[string]variables.Value{"p:dark": rgb(1, 0, 0)}},
			{ID: "brandPrimary", Name: "Brand/Primary", ResolvedType: variables.TypeColor, CollectionID: "brand",
				ValuesByMode: map[string]variables.Value{"b:light": alias("gray50"), "b:dark": alias("gray900")}},
			{ID: "aliasOnly", Name: "Alias/Only", ResolvedType: variables.TypeColor, CollectionID: "brand",
				ValuesByMode: map[string]variables.Value{"b:light": alias("gray50")}},
			{ID: "brandBroken", Name: "Brand/Broken", ResolvedType: variables.TypeColor, CollectionID: "brand",
				ValuesByMode: map[string]variables.Value{"b:dark": alias("missing")}},
			{ID: "loopA", Name: "Loop/A", ResolvedType: variables.TypeColor, CollectionID: "brand",
				ValuesByMode: map[string]variables.Value{"b:dark": alias("loopB")}},
			{ID: "loopB", Name: "Loop/B", ResolvedType: variables.TypeColor, CollectionID: "brand",
				ValuesByMode: map[string]variables.Value{"b:dark": alias("loopA")}},

			{ID: "rawToken", Name: "Colors/Raw", ResolvedType: variables.TypeColor, CollectionID: "toks",
				ValuesByMode: map[string]variables.Value{"t:light": rgb(1, 0, 0)}},
			{ID: "brokenToken", Name: "Colors/Broken", ResolvedType: variables.TypeColor, CollectionID: "toks",
				ValuesByMode: map[string]variables.Value{"t:light": alias("nope")}},
			{ID: "bgToken", Name: "Colors/Background", ResolvedType: variables.TypeColor, CollectionID: "toks",
				ValuesByMode: map[string]variables.Value{"t:light": alias("gray50"), "t:dark": alias("darkonly")}},
			{ID: "brandToken", Name: "Colors/Brand", ResolvedType: variables.TypeColor, CollectionID: "toks",
				ValuesByMode: map[string]variables.Value{"t:dark": alias("brandPrimary")}},
			{ID: "aliasOnlyToken", Name: "Colors/AliasOnly", ResolvedType: variables.TypeColor, CollectionID: "toks",
				ValuesByMode: map[string]variables.Value{"t:light": alias("aliasOnly")}},
			{ID: "brokenBrandToken", Name: "Colors/BrokenBrand", ResolvedType: variables.TypeColor, CollectionID: "toks",
				ValuesByMode: map[string]variables.Value{"t:dark": alias("brandBroken")}},
			{ID: "loopToken", Name: "Colors/Loop", ResolvedType: variables.TypeColor, CollectionID: "toks",
				ValuesByMode: map[string]variables.Value{"t:dark": alias("loopA")}},
		},
	})
}

func resolve(t *testing.T, store *variables.Store, id, modeID, primitiveModeID string, brandMode resolver.BrandMode) (resolver.ColorResult, error) {
	t.Helper()
	ctx := context.Background()
	v, err := store.VariableByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, v, "fixture variable %s", id)
	return resolver.New(store).ResolveColor(ctx, v, modeID, primitiveModeID, brandMode)
}

func TestResolveColor(t *testing.T) {
	store := fixture()

	t.Run("raw value is returned with Raw provenance", func(t *testing.T) {
		result, err := resolve(t, store, "rawToken", "t:light", "p:default", resolver.Light)
		require.NoError(t, err)
		assert.Equal(t, resolver.ColorResult{Hex: "#FF0000", PrimitiveName: "Raw"}, result)
		assert.False(t, result.Unresolved)
	})

	t.Run("unknown alias target is unresolved", func(t *testing.T) {
		result, err := resolve(t, store, "brokenToken", "t:light", "p:default", resolver.Light)
		require.NoError(t, err)
		assert.Equal(t, resolver.ColorResult{Hex: "#FF00FF", PrimitiveName: "Unresolved", Unresolved: true}, result)
		assert.True(t, result.Unresolved)
	})

	t.Run("missing mode value is unresolved", func(t *testing.T) {
		result, err := resolve(t, store, "rawToken", "t:dark", "p:default", resolver.Dark)
		require.NoError(t, err)
		assert.Equal(t, "Unresolved", result.PrimitiveName)
		assert.Equal(t, "#FF00FF", result.Hex)
	})

	t.Run("primitive resolved at the primitive mode", func(t *testing.T) {
		result, err := resolve(t, store, "bgToken", "t:light", "p:default", resolver.Light)
		require.NoError(t, err)
		assert.Equal(t, resolver.ColorResult{Hex: "#FFFFFF", PrimitiveName: "Gray/50"}, result)

		result, err = resolve(t, store, "bgToken", "t:light", "p:dark", resolver.Light)
		require.NoError(t, err)
		assert.Equal(t, resolver.ColorResult{Hex: "#000000", PrimitiveName: "Gray/50"}, result)
	})

	t.Run("brand mode search finds the Dark mode", func(t *testing.T) {
		result, err := resolve(t, store, "bgToken", "t:dark", "p:default", resolver.Dark)
		require.NoError(t, err)
		assert.Equal(t, resolver.ColorResult{Hex: "#FF0000", PrimitiveName: "Red/500 (Dark)"}, result)
	})

	t.Run("brand mode search recurses through alias-bearing tokens", func(t *testing.T) {
		// Brand/Primary has no value at p:default; its "Acme Dark" mode aliases
		// Gray/900, which only has a Default mode.
		result, err := resolve(t, store, "brandToken", "t:dark", "p:default", resolver.Dark)
		require.NoError(t, err)
		assert.Equal(t, "#333333", result.Hex)
		assert.Equal(t, "Brand/Primary → Gray/900 (fallback)", result.PrimitiveName)
	})

	t.Run("light brand mode follows the Acme Light alias", func(t *testing.T) {
		result, err := resolve(t, store, "brandToken", "t:dark", "p:default", resolver.Light)
		require.NoError(t, err)
		// Acme Light aliases Gray/50, which has no b:light mode: Gray/50's first mode is used
		assert.Equal(t, "#FFFFFF", result.Hex)
		assert.Equal(t, "Brand/Primary → Gray/50 (fallback)", result.PrimitiveName)
	})

	t.Run("nested alias that gives up stays unresolved", func(t *testing.T) {
		result, err := resolve(t, store, "brokenBrandToken", "t:dark", "p:default", resolver.Dark)
		require.NoError(t, err)
		assert.Equal(t, resolver.ColorResult{
			Hex:           "#FF00FF",
			PrimitiveName: "Brand/Broken → Unresolved",
			Unresolved:    true,
		}, result)
	})

	t.Run("nested alias that resolves is not unresolved", func(t *testing.T) {
		result, err := resolve(t, store, "brandToken", "t:dark", "p:default", resolver.Dark)
		require.NoError(t, err)
		assert.False(t, result.Unresolved)
	})

	t.Run("first mode fallback without brand mode", func(t *testing.T) {
		result, err := resolve(t, store, "bgToken", "t:dark", "p:default", resolver.NoBrandMode)
		require.NoError(t, err)
		assert.Equal(t, resolver.ColorResult{Hex: "#FF0000", PrimitiveName: "Red/500 (fallback)"}, result)
	})

	t.Run("exhausted fallbacks are unresolved with the primitive path", func(t *testing.T) {
		result, err := resolve(t, store, "aliasOnlyToken", "t:light", "p:default", resolver.NoBrandMode)
		require.NoError(t, err)
		assert.Equal(t, resolver.ColorResult{Hex: "#FF00FF", PrimitiveName: "Unresolved: Alias/Only", Unresolved: true}, result)
	})

	t.Run("circular alias fails fast", func(t *testing.T) {
		_, err := resolve(t, store, "loopToken", "t:dark", "p:default", resolver.Dark)
		require.Error(t, err)
		assert.ErrorIs(t, err, variables.ErrCircularAlias)

		var circ *variables.CircularAliasError
		require.ErrorAs(t, err, &circ)
		assert.Equal(t, []string{"Colors/Loop", "Loop/A", "Loop/B", "Loop/A"}, circ.Chain)
	})
}

type failingSource struct {
	variables.Source
	err error
}

func (f failingSource) VariableByID(context.Context, string) (*variables.Variable, error) {
	return nil, f.err
}

func TestResolveColorSourceError(t *testing.T) {
	boom := errors.New("host went away")
	store := fixture()
	v, err := store.VariableByID(context.Background(), "bgToken")
	require.NoError(t, err)

	_, err = resolver.New(failingSource{Source: store, err: boom}).
		ResolveColor(context.Background(), v, "t:light", "p:default", resolver.Light)
	assert.ErrorIs(t, err, boom)
}
