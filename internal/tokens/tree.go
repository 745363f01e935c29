package tokens

// UpsertGroup returns the group named name among children, appending a new
// empty group when there is none. Tokens with the same name are not matched.
func UpsertGroup(children *[]Node, name string) *Group {
	for _, node := range *children {
		if g, ok := node.(*Group); ok && g.Name == name {
			return g
		}
	}
	g := &Group{Name: name, Children: []Node{}}
	*children = append(*children, g)
	return g
}

// InsertToken places token under root following folderPath, creating any
// missing groups along the way.
func InsertToken(root *[]Node, folderPath []string, token *Token) {
	children := root
	for _, folder := range folderPath {
		children = &UpsertGroup(children, folder).Children
	}
	*children = append(*children, token)
}

// Walk calls fn for every token in depth-first order with the names of its
// enclosing groups. Returning false from fn stops the walk.
func Walk(nodes []Node, fn func(groups []string, token *Token) bool) {
	walk(nodes, nil, fn)
}

func walk(nodes []Node, groups []string, fn func([]string, *Token) bool) bool {
	for _, node := range nodes {
		switch n := node.(type) {
		case *Token:
			if !fn(groups, n) {
				return false
			}
		case *Group:
			if !walk(n.Children, append(groups[:len(groups):len(groups)], n.Name), fn) {
				return false
			}
		}
	}
	return true
}

// Count returns the number of tokens in the forest
func Count(nodes []Node) int {
	n := 0
	Walk(nodes, func([]string, *Token) bool {
		n++
		return true
	})
	return n
}
