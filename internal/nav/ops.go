// Package nav implements the navigation tree mutation engine: pure,
// path-addressed operations over ordered trees of model.NavigationItem.
//
// Every operation returns a new tree; the input is never modified. The
// caller must treat the returned tree as the sole source of truth from
// that point on; paths computed against the old tree are stale.
//
// Depth and adjacency constraints (MaxDepth, indent at index 0, outdent at
// root) are caller contracts enforced through the guard helpers in
// guards.go, not runtime failures here: Indent and Outdent simply return
// the tree unchanged when the guarded precondition does not hold. Invalid
// paths, by contrast, indicate the caller mutated without re-deriving
// addresses and are reported as PathError.
package nav

import (
	"fmt"

	"navedit-cli/internal/model"
)

// PathError reports an operation addressed at a position that does not exist
// in the current tree.
type PathError struct {
	Path  Path
	Index int
}

func (e PathError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("no container at path %q", e.Path.String())
	}
	return fmt.Sprintf("no node at path %q index %d", e.Path.String(), e.Index)
}

// Patch is a partial update for a single node. Nil fields are left alone.
// ClearHref removes the link target, turning the node into a label.
type Patch struct {
	Title     *string
	Href      *string
	ClearHref bool
}

// Clone deep-copies a navigation tree.
func Clone(tree []model.NavigationItem) []model.NavigationItem {
	if tree == nil {
		return nil
	}
	out := make([]model.NavigationItem, len(tree))
	for i, n := range tree {
		out[i] = cloneNode(n)
	}
	return out
}

func cloneNode(n model.NavigationItem) model.NavigationItem {
	c := n
	if n.Href != nil {
		href := *n.Href
		c.Href = &href
	}
	c.SubMenu = Clone(n.SubMenu)
	return c
}

// UpdateItem applies patch to the node at path.index. Children are untouched.
func UpdateItem(tree []model.NavigationItem, path Path, index int, patch Patch) ([]model.NavigationItem, error) {
	out := Clone(tree)
	n, ok := nodeRef(&out, path.Child(index))
	if !ok {
		return nil, PathError{Path: path, Index: index}
	}
	if patch.Title != nil {
		n.Title = *patch.Title
	}
	switch {
	case patch.ClearHref:
		n.Href = nil
	case patch.Href != nil:
		href := *patch.Href
		n.Href = &href
	}
	return out, nil
}

// RemoveItem deletes the node at path.index together with its subtree.
// Following siblings shift up; no other node is renumbered or re-identified.
func RemoveItem(tree []model.NavigationItem, path Path, index int) ([]model.NavigationItem, error) {
	out := Clone(tree)
	sibs, ok := containerAt(&out, path)
	if !ok {
		return nil, PathError{Path: path, Index: -1}
	}
	if index < 0 || index >= len(*sibs) {
		return nil, PathError{Path: path, Index: index}
	}
	*sibs = append((*sibs)[:index], (*sibs)[index+1:]...)
	return out, nil
}

// AddItems appends items as the last children of the node addressed by
// targetPath (a full node path). An empty targetPath appends at the root.
func AddItems(tree []model.NavigationItem, targetPath Path, items []model.NavigationItem) ([]model.NavigationItem, error) {
	out := Clone(tree)
	added := Clone(items)
	if len(targetPath) == 0 {
		return append(out, added...), nil
	}
	n, ok := nodeRef(&out, targetPath)
	if !ok {
		return nil, PathError{Path: targetPath, Index: -1}
	}
	n.SubMenu = append(n.SubMenu, added...)
	return out, nil
}

// Indent makes the node at path.index the last child of its previous
// sibling, creating that sibling's SubMenu if absent. Indenting the first
// sibling (index 0) has no previous sibling and is a no-op; callers are
// expected to consult CanIndent first.
func Indent(tree []model.NavigationItem, path Path, index int) ([]model.NavigationItem, error) {
	out := Clone(tree)
	sibs, ok := containerAt(&out, path)
	if !ok {
		return nil, PathError{Path: path, Index: -1}
	}
	if index >= len(*sibs) || index < 0 {
		return nil, PathError{Path: path, Index: index}
	}
	if index == 0 {
		return out, nil
	}
	node := (*sibs)[index]
	*sibs = append((*sibs)[:index], (*sibs)[index+1:]...)
	prev := &(*sibs)[index-1]
	prev.SubMenu = append(prev.SubMenu, node)
	return out, nil
}

// Outdent promotes the node at path.index to be a sibling of its current
// parent, inserted immediately after it. Outdenting a root-level node (empty
// path) is a no-op; callers are expected to consult CanOutdent first.
func Outdent(tree []model.NavigationItem, path Path, index int) ([]model.NavigationItem, error) {
	out := Clone(tree)
	if len(path) == 0 {
		return out, nil
	}
	parentPath := path[:len(path)-1]
	parentIndex := path[len(path)-1]

	parentSibs, ok := containerAt(&out, parentPath)
	if !ok || parentIndex < 0 || parentIndex >= len(*parentSibs) {
		return nil, PathError{Path: path, Index: -1}
	}
	sibs := &(*parentSibs)[parentIndex].SubMenu
	if index < 0 || index >= len(*sibs) {
		return nil, PathError{Path: path, Index: index}
	}

	node := (*sibs)[index]
	*sibs = append((*sibs)[:index], (*sibs)[index+1:]...)

	at := parentIndex + 1
	*parentSibs = append(*parentSibs, model.NavigationItem{})
	copy((*parentSibs)[at+1:], (*parentSibs)[at:])
	(*parentSibs)[at] = node
	return out, nil
}

// ReorderSiblings moves the child at sourceIndex to destinationIndex within
// the sibling array addressed by containerPath (a full node path; empty for
// the root list). destinationIndex is interpreted against the array after
// the source has been removed, matching drag-and-drop semantics.
func ReorderSiblings(tree []model.NavigationItem, containerPath Path, sourceIndex, destinationIndex int) ([]model.NavigationItem, error) {
	out := Clone(tree)
	var sibs *[]model.NavigationItem
	if len(containerPath) == 0 {
		sibs = &out
	} else {
		n, ok := nodeRef(&out, containerPath)
		if !ok {
			return nil, PathError{Path: containerPath, Index: -1}
		}
		sibs = &n.SubMenu
	}
	if sourceIndex < 0 || sourceIndex >= len(*sibs) {
		return nil, PathError{Path: containerPath, Index: sourceIndex}
	}
	if destinationIndex < 0 || destinationIndex >= len(*sibs) {
		return nil, PathError{Path: containerPath, Index: destinationIndex}
	}
	if sourceIndex == destinationIndex {
		return out, nil
	}

	node := (*sibs)[sourceIndex]
	*sibs = append((*sibs)[:sourceIndex], (*sibs)[sourceIndex+1:]...)
	*sibs = append(*sibs, model.NavigationItem{})
	copy((*sibs)[destinationIndex+1:], (*sibs)[destinationIndex:])
	(*sibs)[destinationIndex] = node
	return out, nil
}
