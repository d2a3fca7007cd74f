package nav

import (
	"testing"

	"navedit-cli/internal/model"
)

func TestCanIndent_FirstSibling(t *testing.T) {
	tree := []model.NavigationItem{{ID: "a", Title: "Shop"}}
	if CanIndent(tree, Path{}, 0, MaxDepth) {
		t.Fatalf("canIndent must be false for index 0")
	}
}

func TestCanIndent_RespectsMaxDepth(t *testing.T) {
	// chain is a single spine of depth maxDepth; indenting the sibling next
	// to its root would push the spine one past the limit.
	deep := model.NavigationItem{ID: "d0", Title: "d0"}
	cur := &deep
	for i := 1; i <= 3; i++ {
		cur.SubMenu = []model.NavigationItem{{ID: "dx", Title: "dx"}}
		cur = &cur.SubMenu[0]
	}
	tree := []model.NavigationItem{
		{ID: "first", Title: "First"},
		deep,
	}

	// Subtree height 3, node at depth 0: indenting lands the deepest
	// descendant at depth 4.
	if !CanIndent(tree, Path{}, 1, 4) {
		t.Fatalf("expected indent allowed at maxDepth 4")
	}
	if CanIndent(tree, Path{}, 1, 3) {
		t.Fatalf("expected indent refused at maxDepth 3")
	}
}

func TestGuardedIndentsNeverExceedMaxDepth(t *testing.T) {
	// Repeatedly indent the last root node wherever the guard allows;
	// depth must stay bounded.
	tree := make([]model.NavigationItem, 0, 16)
	for i := 0; i < 16; i++ {
		tree = append(tree, model.NavigationItem{ID: string(rune('a' + i)), Title: "n"})
	}

	const maxDepth = 4
	for {
		indented := false
		var tgtPath Path
		tgtIndex := -1
		Walk(tree, func(n model.NavigationItem, path Path, index int) bool {
			if CanIndent(tree, path, index, maxDepth) {
				tgtPath = path
				tgtIndex = index
				return false
			}
			return true
		})
		if tgtIndex >= 0 {
			out, err := Indent(tree, tgtPath, tgtIndex)
			if err != nil {
				t.Fatalf("Indent error: %v", err)
			}
			tree = out
			indented = true
		}
		if !indented {
			break
		}
	}

	maxSeen := 0
	Walk(tree, func(n model.NavigationItem, path Path, index int) bool {
		if len(path) > maxSeen {
			maxSeen = len(path)
		}
		return true
	})
	if maxSeen > maxDepth {
		t.Fatalf("guarded indents reached depth %d > %d", maxSeen, maxDepth)
	}
}

func TestCanOutdent(t *testing.T) {
	if CanOutdent(Path{}) {
		t.Fatalf("root-level node must not outdent")
	}
	if !CanOutdent(Path{0}) {
		t.Fatalf("nested node must outdent")
	}
}

func TestCanAddChild(t *testing.T) {
	if !CanAddChild(Path{}, 1) {
		t.Fatalf("root node should accept a child at maxDepth 1")
	}
	if CanAddChild(Path{0}, 1) {
		t.Fatalf("depth-1 node must not accept a child at maxDepth 1")
	}
}
