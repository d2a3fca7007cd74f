package tui

import (
	"fmt"
	"strings"

	"navedit-cli/internal/model"
	"navedit-cli/internal/nav"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	if m.width == 0 {
		return ""
	}
	if m.loadErr != "" {
		body := styleDanger().Render("could not load the navigation menu") +
			"\n\n" + m.loadErr +
			"\n\n" + styleMuted().Render("q: quit")
		return placeCentered(m.width, m.height, renderModalBox(m.width, "navedit", body))
	}
	if !m.loaded {
		return placeCentered(m.width, m.height, styleMuted().Render("loading navigation…"))
	}

	base := m.renderMain()

	switch m.mode {
	case modeEditTitle:
		body := m.input.View() + "\n\n" + styleMuted().Render("enter: apply   esc: cancel")
		return placeCentered(m.width, m.height, renderModalBox(m.width, "Edit title", body))
	case modeEditHref:
		body := m.input.View() + "\n\n" + styleMuted().Render("enter: apply   esc: cancel   (blank link makes a label)")
		return placeCentered(m.width, m.height, renderModalBox(m.width, "Edit link", body))
	case modeConfirmDelete:
		r, _ := m.currentRow()
		body := fmt.Sprintf("Delete %q", r.node.Title)
		if n := len(r.node.SubMenu); n > 0 {
			body += fmt.Sprintf(" and everything nested under it (%d direct children)", n)
		}
		body += "?"
		modal := renderConfirmModal(m.width, "Delete item", body, "Delete", "Keep", m.confirmFocus)
		return placeCentered(m.width, m.height, modal)
	case modeConfirmQuit:
		body := "You have unsaved changes. They are kept as a local draft and restored next time."
		modal := renderConfirmModal(m.width, "Quit?", body, "Quit", "Stay", m.confirmFocus)
		return placeCentered(m.width, m.height, modal)
	case modeAdd:
		return placeCentered(m.width, m.height, m.add.view(m.width))
	}

	return base
}

func (m appModel) renderMain() string {
	rows := m.rows
	cursor := m.cursor
	grabbing := m.drag.Dragging()

	if grabbing {
		// Show the gesture's outcome live: render the tree as if the grabbed
		// row were already dropped at the chosen position.
		if preview, ok := m.previewTree(); ok {
			rows = flattenRows(preview, m.collapsed)
			if i := rowIndexByID(rows, m.grabID); i >= 0 {
				cursor = i
			}
		}
	}

	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Render("Navigation menu")
	meta := fmt.Sprintf("%d items", nav.CountNodes(m.tree))
	if m.dirty {
		meta += styleAccent().Render("  • unsaved")
	}
	b.WriteString(title + "  " + styleMuted().Render(meta) + "\n\n")

	visible := m.height - 6
	if visible < 3 {
		visible = 3
	}
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(rows) {
		end = len(rows)
	}

	if len(rows) == 0 {
		b.WriteString(styleMuted().Render("  empty menu — press a to add the first item") + "\n")
	}
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(rows[i], i == cursor, grabbing && rows[i].node.ID == m.grabID))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		st := styleSuccess()
		if m.statusErr {
			st = styleDanger()
		}
		b.WriteString(st.Render(m.status) + "\n")
	} else {
		b.WriteString(m.helpLine() + "\n")
	}

	return b.String()
}

func (m appModel) renderRow(r row, selected bool, grabbed bool) string {
	indent := strings.Repeat("  ", r.depth)

	twisty := "  "
	if r.hasChildren {
		if r.expanded {
			twisty = "▾ "
		} else {
			twisty = "▸ "
		}
	}

	label := r.node.Title
	if r.node.Href != nil {
		label += "  " + styleMuted().Render(*r.node.Href)
	} else {
		label += "  " + styleMuted().Render("(label)")
	}

	line := indent + twisty + label
	switch {
	case grabbed:
		line = styleAccent().Bold(true).Render("⇅ " + line)
	case selected:
		line = styleSelected().Render("  " + line)
	default:
		line = "  " + line
	}
	// Width-aware: the href is styled, so plain slicing would cut escapes.
	return ansi.Truncate(line, m.width-1, "…")
}

func (m appModel) helpLine() string {
	if m.drag.Dragging() {
		return styleAccent().Render("moving — ↑/↓: position   enter: drop   esc: cancel")
	}
	return styleMuted().Render(
		"↑/↓: move   ←/→: fold   e: title   u: link   a: add   A: add top-level   d: delete   >/<: nest   space: grab   s: save   q: quit")
}

// previewTree applies the in-flight grab gesture to a copy of the tree so the
// view can show the pending order without committing it.
func (m appModel) previewTree() ([]model.NavigationItem, bool) {
	containerPath, ok := nav.ResolveContainer(m.tree, m.grabContainer)
	if !ok {
		return nil, false
	}
	_, srcIndex, found := nav.FindByID(m.tree, m.grabID)
	if !found {
		return nil, false
	}
	if srcIndex == m.grabDest {
		return m.tree, true
	}
	out, err := nav.ReorderSiblings(m.tree, containerPath, srcIndex, m.grabDest)
	if err != nil {
		return nil, false
	}
	return out, true
}
