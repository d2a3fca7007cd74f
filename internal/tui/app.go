package tui

import (
	"context"
	"time"

	"navedit-cli/internal/api"
	"navedit-cli/internal/model"
	"navedit-cli/internal/nav"
	"navedit-cli/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Options configures the interactive editor.
type Options struct {
	Client   *api.Client
	Store    store.Store
	MaxDepth int
	// PreviewDebounce is the quiet period before a dynamic-link preview
	// count is fetched.
	PreviewDebounce time.Duration
}

// Run starts the interactive navigation editor.
func Run(opts Options) error {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = nav.MaxDepth
	}
	if opts.PreviewDebounce <= 0 {
		opts.PreviewDebounce = 300 * time.Millisecond
	}

	m := newAppModel(opts)

	// The preview fetcher completes on its own goroutine; results re-enter
	// the update loop through Program.Send.
	var p *tea.Program
	m.send = func(msg tea.Msg) {
		if p != nil {
			p.Send(msg)
		}
	}
	p = tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type mode int

const (
	modeTree mode = iota
	modeEditTitle
	modeEditHref
	modeConfirmDelete
	modeConfirmQuit
	modeAdd
)

type appModel struct {
	opts    Options
	fetcher *api.PreviewFetcher
	send    func(tea.Msg)

	width  int
	height int

	loaded    bool
	loadErr   string
	tree      []model.NavigationItem
	rows      []row
	cursor    int
	collapsed map[string]bool
	dirty     bool

	// Dialog option lists; empty when their fetch failed (degraded mode).
	catalog model.Catalog
	attrs   []model.Attribute

	mode         mode
	input        textinput.Model
	confirmFocus confirmFocus

	// Keyboard "drag": space grabs a row, up/down choose the destination
	// among its siblings, enter drops it.
	drag          nav.ReorderController
	grabID        string
	grabContainer nav.ContainerID
	grabDest      int

	add *addModel

	status    string
	statusErr bool
	statusSeq int

	saving bool
}

func newAppModel(opts Options) appModel {
	return appModel{
		opts:      opts,
		fetcher:   api.NewPreviewFetcher(opts.Client, opts.PreviewDebounce),
		send:      func(tea.Msg) {},
		collapsed: map[string]bool{},
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.loadMenuCmd(), m.loadCatalogCmd(), m.loadAttributesCmd())
}

func loadContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 15*time.Second)
}

func (m appModel) loadMenuCmd() tea.Cmd {
	s := m.opts.Store
	c := m.opts.Client
	return func() tea.Msg {
		ctx, cancel := loadContext()
		defer cancel()
		if items, ok, err := s.LoadDraft(ctx); err == nil && ok {
			return menuLoadedMsg{items: items, fromDraft: true}
		}
		items, err := c.Navigation(ctx)
		return menuLoadedMsg{items: items, err: err}
	}
}

func (m appModel) loadCatalogCmd() tea.Cmd {
	c := m.opts.Client
	return func() tea.Msg {
		ctx, cancel := loadContext()
		defer cancel()
		cat, err := c.Catalog(ctx)
		return catalogLoadedMsg{catalog: cat, err: err}
	}
}

func (m appModel) loadAttributesCmd() tea.Cmd {
	c := m.opts.Client
	return func() tea.Msg {
		ctx, cancel := loadContext()
		defer cancel()
		attrs, err := c.Attributes(ctx)
		return attributesLoadedMsg{attrs: attrs, err: err}
	}
}

func (m appModel) autosaveCmd(tree []model.NavigationItem) tea.Cmd {
	s := m.opts.Store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return draftSavedMsg{err: s.SaveDraft(ctx, tree)}
	}
}

func (m appModel) saveCmd(tree []model.NavigationItem) tea.Cmd {
	s := m.opts.Store
	c := m.opts.Client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := c.SaveNavigation(ctx, tree); err != nil {
			return saveDoneMsg{err: err}
		}
		return saveDoneMsg{err: s.ClearDraft(ctx)}
	}
}

// applyMutation installs a new tree as the sole source of truth, rebuilds
// the derived rows, and schedules a local draft autosave.
func (m appModel) applyMutation(tree []model.NavigationItem, keepID string) (appModel, tea.Cmd) {
	m.tree = tree
	m.dirty = true
	m.refreshRows()
	if keepID != "" {
		if i := rowIndexByID(m.rows, keepID); i >= 0 {
			m.cursor = i
		}
	}
	return m, m.autosaveCmd(tree)
}

func (m *appModel) refreshRows() {
	m.rows = flattenRows(m.tree, m.collapsed)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m appModel) flash(text string, isErr bool) (appModel, tea.Cmd) {
	m.status = text
	m.statusErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return m, tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

func (m appModel) currentRow() (row, bool) {
	if len(m.rows) == 0 || m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// siblingCount returns the size of the sibling array identified by id in the
// current tree.
func (m appModel) siblingCount(id nav.ContainerID) int {
	path, ok := nav.ResolveContainer(m.tree, id)
	if !ok {
		return 0
	}
	if len(path) == 0 {
		return len(m.tree)
	}
	n, ok := nav.NodeAt(m.tree, path[:len(path)-1], path[len(path)-1])
	if !ok {
		return 0
	}
	return len(n.SubMenu)
}

func newTextInput(placeholder, value string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CharLimit = 512
	ti.Width = width
	ti.Focus()
	return ti
}
