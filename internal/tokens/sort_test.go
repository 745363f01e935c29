package tokens_test

import (
	"encoding/json"
	"testing"

	"bennypowers.dev/dtexport/internal/resolver"
	"bennypowers.dev/dtexport/internal/tokens"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func names(nodes []tokens.Node) []string {
	r := make([]string, len(nodes))
	for i, n := range nodes {
		r[i] = n.NodeName()
	}
	return r
}

func TestSort(t *testing.T) {
	t.Run("groups before tokens, alphabetical within tier", func(t *testing.T) {
		input := []tokens.Node{
			&tokens.Token{Name: "zeta"},
			&tokens.Group{Name: "Text"},
			&tokens.Token{Name: "alpha"},
			&tokens.Group{Name: "Border"},
		}
		sorted := tokens.Sort(input)
		assert.Equal(t, []string{"Border", "Text", "alpha", "zeta"}, names(sorted))
		assert.Equal(t, []string{"zeta", "Text", "alpha", "Border"}, names(input), "input is not modified")
	})

	t.Run("collation ignores case at the primary level", func(t *testing.T) {
		input := []tokens.Node{
			&tokens.Token{Name: "banana"},
			&tokens.Token{Name: "Apple"},
			&tokens.Token{Name: "cherry"},
		}
		assert.Equal(t, []string{"Apple", "banana", "cherry"}, names(tokens.Sort(input)))
	})

	t.Run("numbers inside names", func(t *testing.T) {
		input := []tokens.Node{
			&tokens.Token{Name: "gray-900"},
			&tokens.Token{Name: "gray-100"},
			&tokens.Token{Name: "gray-50"},
		}
		assert.Equal(t, []string{"gray-100", "gray-50", "gray-900"}, names(tokens.Sort(input)))
	})

	t.Run("sorts recursively without touching the original groups", func(t *testing.T) {
		inner := &tokens.Group{Name: "Colors", Children: []tokens.Node{
			&tokens.Token{Name: "b"},
			&tokens.Group{Name: "Z"},
			&tokens.Token{Name: "a"},
		}}
		sorted := tokens.Sort([]tokens.Node{inner})

		require.Len(t, sorted, 1)
		g := sorted[0].(*tokens.Group)
		assert.NotSame(t, inner, g)
		assert.Equal(t, []string{"Z", "a", "b"}, names(g.Children))
		assert.Equal(t, []string{"b", "Z", "a"}, names(inner.Children))
	})

	t.Run("idempotent", func(t *testing.T) {
		var root []tokens.Node
		for _, p := range [][]string{{"Colors", "Text"}, {"Colors", "Border"}, {"Accent"}, {}} {
			tokens.InsertToken(&root, p, &tokens.Token{Name: "primary"})
			tokens.InsertToken(&root, p, &tokens.Token{Name: "Muted"})
		}
		once := tokens.Sort(root)
		twice := tokens.Sort(once)

		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("sorting a sorted tree changed it (-once +twice):\n%s", diff)
		}
		assert.True(t, tokens.IsSorted(once))
		assert.False(t, tokens.IsSorted(root))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, tokens.Sort(nil))
		assert.True(t, tokens.IsSorted(nil))
	})

	t.Run("explicit collator", func(t *testing.T) {
		input := []tokens.Node{&tokens.Token{Name: "zebra"}, &tokens.Token{Name: "ähnlich"}}
		assert.Equal(t, []string{"ähnlich", "zebra"}, names(tokens.SortWithCollator(input, language.German)))
	})
}

func TestBuildAndSortTree(t *testing.T) {
	var root []tokens.Node
	tokens.InsertToken(&root, []string{"Colors", "Border"}, &tokens.Token{Name: "primary", Path: "Colors.Border.primary"})
	tokens.InsertToken(&root, []string{"Colors", "Background"}, &tokens.Token{Name: "primary", Path: "Colors.Background.primary"})

	want := []tokens.Node{
		&tokens.Group{Name: "Colors", Children: []tokens.Node{
			&tokens.Group{Name: "Background", Children: []tokens.Node{
				&tokens.Token{Name: "primary", Path: "Colors.Background.primary"},
			}},
			&tokens.Group{Name: "Border", Children: []tokens.Node{
				&tokens.Token{Name: "primary", Path: "Colors.Border.primary"},
			}},
		}},
	}

	if diff := cmp.Diff(want, tokens.Sort(root)); diff != "" {
		t.Errorf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestMarshalJSON(t *testing.T) {
	red := resolver.ColorResult{Hex: "#FF0000", PrimitiveName: "Red/500"}
	tree := []tokens.Node{
		&tokens.Group{Name: "Colors", Children: []tokens.Node{
			&tokens.Token{
				Name:  "primary",
				Path:  "Colors.primary",
				Modes: map[string]tokens.BrandModes{"Acme": {Light: &red}},
			},
		}},
		&tokens.Group{Name: "Empty"},
	}

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"name": "Colors", "type": "group", "children": [
			{"name": "primary", "type": "token", "path": "Colors.primary",
			 "modes": {"Acme": {"light": {"hex": "#FF0000", "primitiveName": "Red/500"}}}}
		]},
		{"name": "Empty", "type": "group", "children": []}
	]`, string(data))
}
