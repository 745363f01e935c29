package tokens

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort returns a sorted copy of nodes: every level lists groups before tokens,
// each alphabetically using English collation. The input is not modified.
func Sort(nodes []Node) []Node {
	return SortWithCollator(nodes, language.English)
}

// SortWithCollator is Sort with names compared under the collation rules of tag
func SortWithCollator(nodes []Node, tag language.Tag) []Node {
	// collate.Collator keeps scratch buffers and is not safe for concurrent use
	c := collate.New(tag)
	return sortLevel(nodes, c)
}

func sortLevel(nodes []Node, c *collate.Collator) []Node {
	sorted := make([]Node, 0, len(nodes))
	for _, node := range nodes {
		if g, ok := node.(*Group); ok {
			node = &Group{Name: g.Name, Children: sortLevel(g.Children, c)}
		}
		sorted = append(sorted, node)
	}

	slices.SortStableFunc(sorted, func(a, b Node) int {
		if ta, tb := tierOf(a), tierOf(b); ta != tb {
			return ta - tb
		}
		return c.CompareString(a.NodeName(), b.NodeName())
	})
	return sorted
}

func tierOf(n Node) int {
	if n.NodeType() == TypeGroup {
		return 0
	}
	return 1
}

// IsSorted reports whether every level of nodes is in Sort order
func IsSorted(nodes []Node) bool {
	return isSorted(nodes, collate.New(language.English))
}

func isSorted(nodes []Node, c *collate.Collator) bool {
	for i, node := range nodes {
		if i > 0 {
			prev := nodes[i-1]
			tp, tn := tierOf(prev), tierOf(node)
			if tp > tn || (tp == tn && c.CompareString(prev.NodeName(), node.NodeName()) > 0) {
				return false
			}
		}
		if g, ok := node.(*Group); ok && !isSorted(g.Children, c) {
			return false
		}
	}
	return true
}
