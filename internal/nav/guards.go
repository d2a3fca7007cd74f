package nav

import "navedit-cli/internal/model"

// MaxDepth is the deepest nesting level a node may occupy (root-level nodes
// sit at depth 0). Storefront themes render at most this many menu levels.
const MaxDepth = 10

// SubtreeHeight returns the height of a node's subtree: 0 for a leaf,
// 1 + the tallest child otherwise.
func SubtreeHeight(n model.NavigationItem) int {
	h := 0
	for _, c := range n.SubMenu {
		if ch := SubtreeHeight(c) + 1; ch > h {
			h = ch
		}
	}
	return h
}

// CanIndent reports whether the node at path.index may become a child of its
// previous sibling: it needs a previous sibling, and indenting must not push
// its deepest descendant past maxDepth.
func CanIndent(tree []model.NavigationItem, path Path, index int, maxDepth int) bool {
	if index <= 0 {
		return false
	}
	n, ok := NodeAt(tree, path, index)
	if !ok {
		return false
	}
	return len(path)+1+SubtreeHeight(n) <= maxDepth
}

// CanOutdent reports whether the node at path.index has a parent to be
// promoted next to. Root-level nodes (empty path) cannot outdent.
func CanOutdent(path Path) bool {
	return len(path) > 0
}

// CanAddChild reports whether the node at path.index may receive a new child
// without exceeding maxDepth. The new child would sit at depth len(path)+1.
func CanAddChild(path Path, maxDepth int) bool {
	return len(path)+1 <= maxDepth
}

// CountNodes returns the total number of nodes in the tree.
func CountNodes(tree []model.NavigationItem) int {
	n := 0
	Walk(tree, func(model.NavigationItem, Path, int) bool {
		n++
		return true
	})
	return n
}
