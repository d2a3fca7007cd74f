package tui

import (
	"fmt"
	"strings"

	"navedit-cli/internal/nav"

	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.add != nil {
			m.add.setWidth(modalBodyWidth(m.width))
		}
		return m, nil

	case menuLoadedMsg:
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		m.loaded = true
		m.loadErr = ""
		m.tree = msg.items
		m.refreshRows()
		if msg.fromDraft {
			m.dirty = true
			return withCmd(m.flash("restored unsaved draft", false))
		}
		return m, nil

	case catalogLoadedMsg:
		if msg.err != nil {
			return withCmd(m.flash("catalog unavailable: "+msg.err.Error(), true))
		}
		m.catalog = msg.catalog
		if m.add != nil {
			m.add.catalog = msg.catalog
		}
		return m, nil

	case attributesLoadedMsg:
		if msg.err != nil {
			return withCmd(m.flash("attributes unavailable: "+msg.err.Error(), true))
		}
		m.attrs = msg.attrs
		if m.add != nil {
			m.add.attrs = msg.attrs
		}
		return m, nil

	case valuesLoadedMsg:
		if m.add != nil {
			m.add.applyValues(msg)
		}
		return m, nil

	case previewCountMsg:
		if m.add != nil {
			m.add.applyPreview(msg)
		}
		return m, nil

	case draftSavedMsg:
		if msg.err != nil {
			return withCmd(m.flash("draft save failed: "+msg.err.Error(), true))
		}
		return m, nil

	case saveDoneMsg:
		m.saving = false
		if msg.err != nil {
			return withCmd(m.flash("save failed (draft kept): "+msg.err.Error(), true))
		}
		m.dirty = false
		return withCmd(m.flash("navigation saved", false))

	case flashDoneMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func withCmd(m appModel, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	return m, cmd
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeEditTitle, modeEditHref:
		return m.updateEdit(msg)
	case modeConfirmDelete:
		return m.updateConfirmDelete(msg)
	case modeConfirmQuit:
		return m.updateConfirmQuit(msg)
	case modeAdd:
		return m.updateAdd(msg)
	}
	if m.drag.Dragging() {
		return m.updateGrab(msg)
	}
	return m.updateTree(msg)
}

func (m appModel) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.dirty {
			m.mode = modeConfirmQuit
			m.confirmFocus = confirmFocusCancel
			return m, nil
		}
		m.fetcher.Stop()
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case "g":
		m.cursor = 0
		return m, nil

	case "G":
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		}
		return m, nil

	case "right", "l":
		if r, ok := m.currentRow(); ok && r.hasChildren && !r.expanded {
			delete(m.collapsed, r.node.ID)
			m.refreshRows()
		}
		return m, nil

	case "left", "h":
		r, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		if r.hasChildren && r.expanded {
			m.collapsed[r.node.ID] = true
			m.refreshRows()
			return m, nil
		}
		// On a leaf (or an already collapsed node), jump to the parent.
		if r.parentID != "" {
			if i := rowIndexByID(m.rows, r.parentID); i >= 0 {
				m.cursor = i
			}
		}
		return m, nil

	case "enter":
		if r, ok := m.currentRow(); ok && r.hasChildren {
			if r.expanded {
				m.collapsed[r.node.ID] = true
			} else {
				delete(m.collapsed, r.node.ID)
			}
			m.refreshRows()
		}
		return m, nil

	case "e":
		r, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		m.mode = modeEditTitle
		m.input = newTextInput("title", r.node.Title, modalBodyWidth(m.width))
		return m, nil

	case "u":
		r, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		href := ""
		if r.node.Href != nil {
			href = *r.node.Href
		}
		m.mode = modeEditHref
		m.input = newTextInput("link (blank turns the item into a label)", href, modalBodyWidth(m.width))
		return m, nil

	case "a":
		r, ok := m.currentRow()
		if !ok {
			return m.openAdd(nav.Path{}, "root")
		}
		if !nav.CanAddChild(r.path, m.opts.MaxDepth) {
			return withCmd(m.flash(fmt.Sprintf("cannot nest deeper than %d levels", m.opts.MaxDepth), true))
		}
		return m.openAdd(r.path.Child(r.index), r.node.Title)

	case "A":
		return m.openAdd(nav.Path{}, "root")

	case "d":
		if _, ok := m.currentRow(); !ok {
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.confirmFocus = confirmFocusCancel
		return m, nil

	case ">", "tab":
		return m.indentCurrent()

	case "<", "shift+tab":
		return m.outdentCurrent()

	case " ":
		r, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		container := r.container()
		if m.siblingCount(container) < 2 {
			return withCmd(m.flash("nothing to reorder here", true))
		}
		m.drag.Begin(nav.DropRef{Container: container, Index: r.index})
		m.grabID = r.node.ID
		m.grabContainer = container
		m.grabDest = r.index
		return m, nil

	case "s":
		if m.saving {
			return m, nil
		}
		m.saving = true
		var cmd tea.Cmd
		m, cmd = m.flash("saving…", false)
		return m, tea.Batch(cmd, m.saveCmd(m.tree))

	case "r":
		if m.dirty {
			return withCmd(m.flash("unsaved changes; save with s first", true))
		}
		m.loaded = false
		c := m.opts.Client
		return m, func() tea.Msg {
			ctx, cancel := loadContext()
			defer cancel()
			items, err := c.Navigation(ctx)
			return menuLoadedMsg{items: items, err: err}
		}
	}

	return m, nil
}

func (m appModel) indentCurrent() (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok {
		return m, nil
	}
	if !nav.CanIndent(m.tree, r.path, r.index, m.opts.MaxDepth) {
		if r.index == 0 {
			return withCmd(m.flash("no sibling above to nest under", true))
		}
		return withCmd(m.flash(fmt.Sprintf("indent would exceed %d levels", m.opts.MaxDepth), true))
	}
	tree, err := nav.Indent(m.tree, r.path, r.index)
	if err != nil {
		return withCmd(m.flash(err.Error(), true))
	}
	// The new parent must be expanded or the moved row would vanish.
	if above, ok := nav.NodeAt(m.tree, r.path, r.index-1); ok {
		delete(m.collapsed, above.ID)
	}
	next, cmd := m.applyMutation(tree, r.node.ID)
	return next, cmd
}

func (m appModel) outdentCurrent() (tea.Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok {
		return m, nil
	}
	if !nav.CanOutdent(r.path) {
		return withCmd(m.flash("already at the top level", true))
	}
	tree, err := nav.Outdent(m.tree, r.path, r.index)
	if err != nil {
		return withCmd(m.flash(err.Error(), true))
	}
	next, cmd := m.applyMutation(tree, r.node.ID)
	return next, cmd
}

func (m appModel) updateGrab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.grabDest > 0 {
			m.grabDest--
		}
		return m, nil

	case "down", "j":
		if max := m.siblingCount(m.grabContainer) - 1; m.grabDest < max {
			m.grabDest++
		}
		return m, nil

	case "enter", " ":
		dest := nav.DropRef{Container: m.grabContainer, Index: m.grabDest}
		tree, moved := m.drag.Drop(m.tree, &dest)
		id := m.grabID
		m.grabID = ""
		if !moved {
			return m, nil
		}
		next, cmd := m.applyMutation(tree, id)
		return next, cmd

	case "esc", "q", "ctrl+c":
		m.drag.Cancel()
		m.grabID = ""
		return m, nil
	}
	return m, nil
}

func (m appModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeTree
		return m, nil

	case "enter":
		r, ok := m.currentRow()
		if !ok {
			m.mode = modeTree
			return m, nil
		}
		value := strings.TrimSpace(m.input.Value())

		var patch nav.Patch
		if m.mode == modeEditTitle {
			if value == "" {
				return withCmd(m.flash("title cannot be empty", true))
			}
			patch.Title = &value
		} else {
			if value == "" {
				patch.ClearHref = true
			} else {
				patch.Href = &value
			}
		}
		tree, err := nav.UpdateItem(m.tree, r.path, r.index, patch)
		if err != nil {
			m.mode = modeTree
			return withCmd(m.flash(err.Error(), true))
		}
		m.mode = modeTree
		next, cmd := m.applyMutation(tree, r.node.ID)
		return next, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeTree
		return m, nil
	case "tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "enter":
		m.mode = modeTree
		if m.confirmFocus != confirmFocusConfirm {
			return m, nil
		}
		r, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		tree, err := nav.RemoveItem(m.tree, r.path, r.index)
		if err != nil {
			return withCmd(m.flash(err.Error(), true))
		}
		next, cmd := m.applyMutation(tree, "")
		return next, cmd
	}
	return m, nil
}

func (m appModel) updateConfirmQuit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeTree
		return m, nil
	case "tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "enter":
		if m.confirmFocus == confirmFocusConfirm {
			m.fetcher.Stop()
			return m, tea.Quit
		}
		m.mode = modeTree
		return m, nil
	}
	return m, nil
}

func (m appModel) openAdd(target nav.Path, targetTitle string) (tea.Model, tea.Cmd) {
	a := newAddModel(addParams{
		target:      target,
		targetTitle: targetTitle,
		catalog:     m.catalog,
		attrs:       m.attrs,
		client:      m.opts.Client,
		fetcher:     m.fetcher,
		send:        m.send,
		width:       modalBodyWidth(m.width),
	})
	m.add = &a
	m.mode = modeAdd
	return m, nil
}

func (m appModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a, cmd := m.add.update(msg)
	m.add = &a

	if a.cancelled {
		m.mode = modeTree
		m.add = nil
		return m, cmd
	}
	if !a.confirmed {
		return m, cmd
	}

	items, err := a.state.Resolve()
	target := a.target
	m.mode = modeTree
	m.add = nil
	if err != nil {
		return withCmd(m.flash(err.Error(), true))
	}
	tree, addErr := nav.AddItems(m.tree, target, items)
	if addErr != nil {
		return withCmd(m.flash(addErr.Error(), true))
	}
	// Reveal the insertion point.
	if len(target) > 0 {
		if parent, ok := nav.NodeAt(m.tree, target[:len(target)-1], target[len(target)-1]); ok {
			delete(m.collapsed, parent.ID)
		}
	}
	keep := ""
	if len(items) > 0 {
		keep = items[0].ID
	}
	next, mcmd := m.applyMutation(tree, keep)
	return next, tea.Batch(cmd, mcmd)
}
