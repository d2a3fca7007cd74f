package nav

import "navedit-cli/internal/model"

// ContainerID names one addressable sibling array: the root list, or the
// SubMenu of the node whose id it carries. Unlike a Path, a ContainerID
// stays valid across visual nesting and re-renders, so drop targets can be
// tagged with it up front and resolved against the current tree at drop
// time.
type ContainerID string

// RootContainer identifies the top-level list.
const RootContainer ContainerID = "root"

// ContainerOf returns the container id owning the SubMenu of the node with
// the given id.
func ContainerOf(nodeID string) ContainerID { return ContainerID(nodeID) }

// ResolveContainer translates a container id into the full node path whose
// sibling array it names (empty path for the root list).
func ResolveContainer(tree []model.NavigationItem, id ContainerID) (Path, bool) {
	if id == RootContainer {
		return Path{}, true
	}
	path, index, ok := FindByID(tree, string(id))
	if !ok {
		return nil, false
	}
	return path.Child(index), true
}

// DropRef is one endpoint of a drag gesture: a container and a position
// within it.
type DropRef struct {
	Container ContainerID
	Index     int
}

type dragPhase int

const (
	phaseIdle dragPhase = iota
	phaseDragging
)

// ReorderController adapts drag gestures into sibling reorders. Only
// same-container reordering is supported: a drop without a destination or
// across container boundaries returns to idle without touching the tree.
// Level changes go through Indent/Outdent instead.
type ReorderController struct {
	phase  dragPhase
	source DropRef
}

// Dragging reports whether a gesture is in flight.
func (c *ReorderController) Dragging() bool { return c.phase == phaseDragging }

// Begin records the gesture's source and enters the dragging phase.
func (c *ReorderController) Begin(source DropRef) {
	c.phase = phaseDragging
	c.source = source
}

// Cancel abandons the gesture.
func (c *ReorderController) Cancel() {
	c.phase = phaseIdle
}

// Drop completes the gesture. It returns the new tree and true when a
// same-container reorder was performed; otherwise it returns the input tree
// unchanged and false. The controller is idle afterwards either way.
func (c *ReorderController) Drop(tree []model.NavigationItem, destination *DropRef) ([]model.NavigationItem, bool) {
	if c.phase != phaseDragging {
		return tree, false
	}
	source := c.source
	c.phase = phaseIdle

	if destination == nil {
		return tree, false
	}
	if destination.Container != source.Container {
		return tree, false
	}
	if destination.Index == source.Index {
		return tree, false
	}
	containerPath, ok := ResolveContainer(tree, source.Container)
	if !ok {
		return tree, false
	}
	out, err := ReorderSiblings(tree, containerPath, source.Index, destination.Index)
	if err != nil {
		return tree, false
	}
	return out, true
}
