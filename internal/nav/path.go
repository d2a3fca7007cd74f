package nav

import (
	"fmt"
	"strconv"
	"strings"

	"navedit-cli/internal/model"
)

// Path addresses a sibling array inside the navigation tree: the sequence of
// ancestor sibling-indices from the root, excluding the node's own index.
// Root-level nodes have an empty Path.
//
// Paths are derived from the current tree shape and become stale the moment
// the tree mutates. Callers must recompute them per traversal pass, never
// cache them across mutations.
type Path []int

// ParsePath parses a dotted index path ("0.2.1"). An empty string is the
// root path.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Path{}, nil
	}
	parts := strings.Split(s, ".")
	p := make(Path, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid path segment %q", part)
		}
		p = append(p, n)
	}
	return p, nil
}

func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".")
}

// Child returns a new path extended by one sibling index. The receiver is
// not modified.
func (p Path) Child(index int) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = index
	return out
}

// containerAt resolves the sibling array addressed by p inside root.
// The returned pointer aliases root, so callers must own the tree
// (operations clone before calling this).
func containerAt(root *[]model.NavigationItem, p Path) (*[]model.NavigationItem, bool) {
	cur := root
	for _, idx := range p {
		if idx < 0 || idx >= len(*cur) {
			return nil, false
		}
		cur = &(*cur)[idx].SubMenu
	}
	return cur, true
}

// nodeRef resolves the node addressed by the full path p (container path with
// the node's own index appended). The root forest itself is not a node, so an
// empty path resolves to nothing.
func nodeRef(root *[]model.NavigationItem, p Path) (*model.NavigationItem, bool) {
	if len(p) == 0 {
		return nil, false
	}
	sibs, ok := containerAt(root, p[:len(p)-1])
	if !ok {
		return nil, false
	}
	idx := p[len(p)-1]
	if idx < 0 || idx >= len(*sibs) {
		return nil, false
	}
	return &(*sibs)[idx], true
}

// NodeAt returns a copy of the node at path.index, if it exists.
func NodeAt(tree []model.NavigationItem, path Path, index int) (model.NavigationItem, bool) {
	n, ok := nodeRef(&tree, path.Child(index))
	if !ok {
		return model.NavigationItem{}, false
	}
	return *n, true
}

// Walk visits every node depth-first in display order, passing the node's
// container path and sibling index. Returning false from fn stops the walk.
func Walk(tree []model.NavigationItem, fn func(n model.NavigationItem, path Path, index int) bool) {
	walk(tree, Path{}, fn)
}

func walk(items []model.NavigationItem, path Path, fn func(n model.NavigationItem, path Path, index int) bool) bool {
	for i, n := range items {
		if !fn(n, path, i) {
			return false
		}
		if len(n.SubMenu) > 0 {
			if !walk(n.SubMenu, path.Child(i), fn) {
				return false
			}
		}
	}
	return true
}

// FindByID locates a node by id and returns its container path and sibling
// index. Ids are assumed unique for the editing session; with duplicates the
// first match in display order wins.
func FindByID(tree []model.NavigationItem, id string) (Path, int, bool) {
	var foundPath Path
	foundIndex := -1
	Walk(tree, func(n model.NavigationItem, path Path, index int) bool {
		if n.ID == id {
			foundPath = path
			foundIndex = index
			return false
		}
		return true
	})
	if foundIndex < 0 {
		return nil, 0, false
	}
	return foundPath, foundIndex, true
}
