package tui

import (
	"testing"

	"navedit-cli/internal/nav"

	tea "github.com/charmbracelet/bubbletea"
)

func testModel() appModel {
	m := newAppModel(Options{MaxDepth: nav.MaxDepth})
	m.width = 80
	m.height = 24
	m.loaded = true
	m.tree = sampleTree()
	m.refreshRows()
	return m
}

func press(t *testing.T, m appModel, keys ...string) appModel {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(appModel)
	}
	return m
}

func cursorID(t *testing.T, m appModel) string {
	t.Helper()
	r, ok := m.currentRow()
	if !ok {
		t.Fatalf("no current row (cursor %d of %d rows)", m.cursor, len(m.rows))
	}
	return r.node.ID
}

func TestCursorMovementAndFold(t *testing.T) {
	m := testModel()

	m = press(t, m, "j", "j")
	if got := cursorID(t, m); got != "accessories" {
		t.Fatalf("cursor = %q, want accessories", got)
	}

	// Collapse shop: its whole subtree disappears and the cursor clamps.
	m = press(t, m, "g", "h")
	if len(m.rows) != 3 {
		t.Fatalf("rows after collapse = %d, want 3", len(m.rows))
	}
	m = press(t, m, "l")
	if len(m.rows) != 6 {
		t.Fatalf("rows after expand = %d, want 6", len(m.rows))
	}

	// h on a leaf jumps to the parent.
	m = press(t, m, "j", "j", "h")
	if got := cursorID(t, m); got != "phones" {
		t.Fatalf("cursor after parent jump = %q, want phones", got)
	}
}

func TestIndentThenOutdentKeys(t *testing.T) {
	m := testModel()

	// Move to "about" (root index 1) and nest it under shop.
	m = press(t, m, "G", "k", ">")
	if !m.dirty {
		t.Fatalf("indent did not mark the tree dirty")
	}
	if len(m.tree) != 2 {
		t.Fatalf("root size after indent = %d, want 2", len(m.tree))
	}
	if n := len(m.tree[0].SubMenu); n != 3 {
		t.Fatalf("shop children after indent = %d, want 3", n)
	}
	if got := cursorID(t, m); got != "about" {
		t.Fatalf("cursor lost the moved node, on %q", got)
	}

	m = press(t, m, "<")
	if len(m.tree) != 3 {
		t.Fatalf("root size after outdent = %d, want 3", len(m.tree))
	}
	if m.tree[1].ID != "about" {
		t.Fatalf("outdent placed about at %q, want index 1", m.tree[1].ID)
	}
	if got := cursorID(t, m); got != "about" {
		t.Fatalf("cursor lost the moved node, on %q", got)
	}
}

func TestIndentFirstSiblingRefused(t *testing.T) {
	m := testModel()
	m = press(t, m, "g", ">")
	if len(m.tree) != 3 {
		t.Fatalf("first sibling was indented; root size %d", len(m.tree))
	}
	if m.dirty {
		t.Fatalf("refused indent must not mark dirty")
	}
	if m.status == "" {
		t.Fatalf("refused indent should explain itself in the status line")
	}
}

func TestGrabDropReordersSiblings(t *testing.T) {
	m := testModel()

	m = press(t, m, "space")
	if !m.drag.Dragging() {
		t.Fatalf("space did not start a grab")
	}
	m = press(t, m, "j", "enter")
	if m.drag.Dragging() {
		t.Fatalf("drop left the controller dragging")
	}
	if m.tree[0].ID != "about" || m.tree[1].ID != "shop" {
		t.Fatalf("root after drop = [%s %s %s]", m.tree[0].ID, m.tree[1].ID, m.tree[2].ID)
	}
	if got := cursorID(t, m); got != "shop" {
		t.Fatalf("cursor after drop = %q, want shop", got)
	}
}

func TestGrabCancelKeepsOrder(t *testing.T) {
	m := testModel()
	m = press(t, m, "space", "j", "j", "esc")
	if m.drag.Dragging() {
		t.Fatalf("esc did not cancel the grab")
	}
	if m.tree[0].ID != "shop" {
		t.Fatalf("cancelled grab changed the tree: first = %q", m.tree[0].ID)
	}
	if m.dirty {
		t.Fatalf("cancelled grab marked the tree dirty")
	}
}

func TestGrabStaysWithinContainer(t *testing.T) {
	m := testModel()

	// Grab "phones" inside shop: the destination is clamped to shop's two
	// children no matter how far down the user goes.
	m = press(t, m, "j", "space", "j", "j", "j", "j", "enter")
	if len(m.tree[0].SubMenu) != 2 {
		t.Fatalf("shop children = %d, want 2", len(m.tree[0].SubMenu))
	}
	if m.tree[0].SubMenu[1].ID != "phones" {
		t.Fatalf("phones not at shop index 1 after drop")
	}
	if len(m.tree) != 3 {
		t.Fatalf("root size changed during in-container grab: %d", len(m.tree))
	}
}

func TestDeleteRequiresConfirm(t *testing.T) {
	m := testModel()

	// Default focus is Keep; enter must be a no-op delete-wise.
	m = press(t, m, "d", "enter")
	if nav.CountNodes(m.tree) != 6 {
		t.Fatalf("default-focused confirm deleted the node")
	}

	m = press(t, m, "d", "tab", "enter")
	if nav.CountNodes(m.tree) != 2 {
		t.Fatalf("nodes after deleting shop subtree = %d, want 2", nav.CountNodes(m.tree))
	}
	if m.tree[0].ID != "about" {
		t.Fatalf("first root after delete = %q, want about", m.tree[0].ID)
	}
}

func TestEditTitleModal(t *testing.T) {
	m := testModel()

	m = press(t, m, "e")
	if m.mode != modeEditTitle {
		t.Fatalf("e did not open the title editor")
	}
	m = press(t, m, "!", "enter")
	if m.mode != modeTree {
		t.Fatalf("enter did not close the editor")
	}
	if m.tree[0].Title != "Shop!" {
		t.Fatalf("title = %q, want Shop!", m.tree[0].Title)
	}
}

func TestEditHrefBlankClearsLink(t *testing.T) {
	m := testModel()

	m = press(t, m, "G", "u")
	if m.mode != modeEditHref {
		t.Fatalf("u did not open the link editor")
	}
	// Wipe the prefilled value, then confirm blank.
	for range "/contact" {
		m = press(t, m, "backspace")
	}
	m = press(t, m, "enter")

	if m.tree[2].Href != nil {
		t.Fatalf("blank link did not clear href: %q", *m.tree[2].Href)
	}
}

func TestQuitWithUnsavedChangesAsksFirst(t *testing.T) {
	m := testModel()
	m = press(t, m, "G", "d", "tab", "enter") // delete contact -> dirty
	if !m.dirty {
		t.Fatalf("delete did not mark dirty")
	}
	m = press(t, m, "q")
	if m.mode != modeConfirmQuit {
		t.Fatalf("q on a dirty tree must confirm, mode = %d", m.mode)
	}
	m = press(t, m, "esc")
	if m.mode != modeTree {
		t.Fatalf("esc did not return to the tree")
	}
}

func TestAddLabelFromDialog(t *testing.T) {
	m := testModel()

	// A opens the add dialog at the root; the fifth kind is the plain label.
	m = press(t, m, "A")
	if m.mode != modeAdd {
		t.Fatalf("A did not open the add dialog")
	}
	m = press(t, m, "j", "j", "j", "j", "enter")
	m = press(t, m, "S", "a", "l", "e", "enter")

	if m.mode == modeAdd || m.add != nil {
		t.Fatalf("dialog still present after confirm")
	}
	if len(m.tree) != 4 {
		t.Fatalf("root size after add = %d, want 4", len(m.tree))
	}
	added := m.tree[3]
	if added.Title != "Sale" {
		t.Fatalf("added title = %q, want Sale", added.Title)
	}
	if added.Href != nil {
		t.Fatalf("label item must have no link, got %q", *added.Href)
	}
	if added.ID == "" {
		t.Fatalf("added item has no id")
	}
	if got := cursorID(t, m); got != added.ID {
		t.Fatalf("cursor did not follow the new item")
	}
}

func TestAddDialogEscCancels(t *testing.T) {
	m := testModel()
	m = press(t, m, "A", "esc")
	if m.mode != modeTree || m.add != nil {
		t.Fatalf("esc did not dismiss the add dialog")
	}
	if len(m.tree) != 3 {
		t.Fatalf("cancelled dialog changed the tree")
	}
}

func TestAddChildRespectsDepthGuard(t *testing.T) {
	m := testModel()

	// accessories sits at depth 2; a child would land at depth 3.
	m.opts.MaxDepth = 2
	m = press(t, m, "j", "j") // accessories
	if got := cursorID(t, m); got != "accessories" {
		t.Fatalf("setup: cursor on %q", got)
	}
	m = press(t, m, "a")
	if m.mode == modeAdd {
		t.Fatalf("add dialog opened past the depth budget")
	}
	if m.status == "" {
		t.Fatalf("depth refusal should explain itself")
	}
}
