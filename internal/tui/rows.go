package tui

import (
	"navedit-cli/internal/model"
	"navedit-cli/internal/nav"
)

// row is one visible line of the tree view. Rows carry their freshly derived
// path+index; they are rebuilt from the current tree on every change and
// never survive a mutation (stale paths would corrupt addressing).
type row struct {
	node     model.NavigationItem
	path     nav.Path
	index    int
	depth    int
	parentID string // "" for root-level rows

	hasChildren bool
	expanded    bool
}

// container returns the identity of the sibling array this row lives in.
func (r row) container() nav.ContainerID {
	if r.parentID == "" {
		return nav.RootContainer
	}
	return nav.ContainerOf(r.parentID)
}

// flattenRows derives the visible rows from the tree. collapsed is the
// ephemeral per-node UI state, keyed by node id so it survives reordering;
// nodes absent from the map render expanded.
func flattenRows(tree []model.NavigationItem, collapsed map[string]bool) []row {
	out := make([]row, 0, 16)
	appendRows(&out, tree, nav.Path{}, "", collapsed)
	return out
}

func appendRows(out *[]row, items []model.NavigationItem, path nav.Path, parentID string, collapsed map[string]bool) {
	for i, n := range items {
		r := row{
			node:        n,
			path:        path,
			index:       i,
			depth:       len(path),
			parentID:    parentID,
			hasChildren: len(n.SubMenu) > 0,
			expanded:    !collapsed[n.ID],
		}
		*out = append(*out, r)
		if r.hasChildren && r.expanded {
			appendRows(out, n.SubMenu, path.Child(i), n.ID, collapsed)
		}
	}
}

// rowIndexByID finds the visible row holding the given node, or -1.
func rowIndexByID(rows []row, id string) int {
	for i := range rows {
		if rows[i].node.ID == id {
			return i
		}
	}
	return -1
}
