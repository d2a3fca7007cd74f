package tui

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"navedit-cli/internal/api"
	"navedit-cli/internal/dialog"
	"navedit-cli/internal/model"
	"navedit-cli/internal/nav"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// The add dialog is a small wizard: pick a kind, then fill in that kind's
// inputs. All choices accumulate in a dialog.State; the tree is only touched
// after the state confirms and resolves.

type addStep int

const (
	stepKind addStep = iota
	stepCategories
	stepPages
	stepDynamicCategory
	stepDynamicHub
	stepDynamicAttribute
	stepDynamicValue
	stepDynamicLabel
	stepCustom
	stepLabel
)

type addParams struct {
	target      nav.Path
	targetTitle string
	catalog     model.Catalog
	attrs       []model.Attribute
	client      *api.Client
	fetcher     *api.PreviewFetcher
	send        func(tea.Msg)
	width       int
}

type addModel struct {
	target      nav.Path
	targetTitle string
	catalog     model.Catalog
	attrs       []model.Attribute
	client      *api.Client
	fetcher     *api.PreviewFetcher
	send        func(tea.Msg)
	width       int

	step   addStep
	cursor int

	state    dialog.State
	checked  map[int]bool // multi-select marks for the active list
	pendAttr string       // attribute picked, waiting for its values

	values        []model.AttributeValue
	valuesLoading bool
	valuesErr     string

	previewCount int
	previewKnown bool
	previewErr   string

	input       textinput.Model
	customURL   textinput.Model
	customFocus int // 0 = title, 1 = url

	confirmed bool
	cancelled bool
}

func newAddModel(p addParams) addModel {
	return addModel{
		target:      p.target,
		targetTitle: p.targetTitle,
		catalog:     p.catalog,
		attrs:       p.attrs,
		client:      p.client,
		fetcher:     p.fetcher,
		send:        p.send,
		width:       p.width,
		checked:     map[int]bool{},
	}
}

func (a *addModel) setWidth(w int) {
	a.width = w
	a.input.Width = w
	a.customURL.Width = w
}

func (a *addModel) applyValues(msg valuesLoadedMsg) {
	if msg.attribute != a.pendAttr {
		return
	}
	a.valuesLoading = false
	if msg.err != nil {
		a.valuesErr = msg.err.Error()
		return
	}
	a.valuesErr = ""
	a.values = msg.values
}

func (a *addModel) applyPreview(msg previewCountMsg) {
	if msg.err != nil {
		a.previewKnown = false
		a.previewErr = msg.err.Error()
		return
	}
	a.previewErr = ""
	a.previewKnown = true
	a.previewCount = msg.count
}

// requestPreview schedules a debounced product-count fetch for the current
// dynamic selection. The result re-enters the program as a previewCountMsg.
func (a *addModel) requestPreview() {
	if a.state.DynamicCategory == nil {
		return
	}
	a.previewKnown = false
	filters := url.Values{}
	for _, f := range a.state.Filters {
		filters.Add(f.Attribute, f.Value)
	}
	send := a.send
	a.fetcher.Request(context.Background(), a.state.DynamicCategory.Slug, filters, func(count int, err error) {
		send(previewCountMsg{count: count, err: err})
	})
}

func (a *addModel) loadValuesCmd(attributeSlug string) tea.Cmd {
	c := a.client
	return func() tea.Msg {
		ctx, cancel := loadContext()
		defer cancel()
		values, err := c.AttributeValues(ctx, attributeSlug)
		return valuesLoadedMsg{attribute: attributeSlug, values: values, err: err}
	}
}

func (a addModel) listLen() int {
	switch a.step {
	case stepKind:
		return len(dialog.Kinds())
	case stepCategories, stepDynamicCategory:
		return len(a.catalog.Categories)
	case stepPages:
		return len(a.catalog.Pages)
	case stepDynamicAttribute:
		return len(a.attrs)
	case stepDynamicValue:
		return len(a.values)
	}
	return 0
}

func (a addModel) update(msg tea.KeyMsg) (addModel, tea.Cmd) {
	key := msg.String()

	switch a.step {
	case stepDynamicLabel, stepCustom, stepLabel:
		return a.updateInputs(msg)
	}

	switch key {
	case "esc":
		if a.step == stepKind {
			a.cancelled = true
			return a, nil
		}
		// Any other step backs out to the kind picker with its inputs
		// discarded.
		return a.reset(), nil

	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "down", "j":
		if a.cursor < a.listLen()-1 {
			a.cursor++
		}
		return a, nil
	}

	switch a.step {
	case stepKind:
		if key == "enter" {
			return a.enterKind(dialog.Kinds()[a.cursor]), nil
		}

	case stepCategories:
		switch key {
		case " ":
			a.checked[a.cursor] = !a.checked[a.cursor]
			a.syncCategorySelection()
		case "enter":
			if a.state.CanConfirm() {
				a.confirmed = true
			}
		}
		return a, nil

	case stepPages:
		switch key {
		case " ":
			a.checked[a.cursor] = !a.checked[a.cursor]
			a.syncPageSelection()
		case "enter":
			if a.state.CanConfirm() {
				a.confirmed = true
			}
		}
		return a, nil

	case stepDynamicCategory:
		if key == "enter" && a.cursor < len(a.catalog.Categories) {
			c := a.catalog.Categories[a.cursor]
			a.state.DynamicCategory = &c
			a.state.DynamicLabel = c.Name
			a.step = stepDynamicHub
			a.cursor = 0
			a.requestPreview()
		}
		return a, nil

	case stepDynamicHub:
		switch key {
		case "f", "a":
			if len(a.attrs) == 0 {
				return a, nil
			}
			a.step = stepDynamicAttribute
			a.cursor = 0
		case "x", "d":
			if n := len(a.state.Filters); n > 0 {
				a.state.Filters = a.state.Filters[:n-1]
				a.requestPreview()
			}
		case "e", "l":
			a.step = stepDynamicLabel
			a.input = newTextInput("menu label", a.state.DynamicLabel, a.width)
		case "enter":
			if a.state.CanConfirm() {
				a.confirmed = true
			}
		}
		return a, nil

	case stepDynamicAttribute:
		if key == "enter" && a.cursor < len(a.attrs) {
			attr := a.attrs[a.cursor]
			a.pendAttr = attr.Slug
			a.values = nil
			a.valuesLoading = true
			a.valuesErr = ""
			a.step = stepDynamicValue
			a.cursor = 0
			return a, a.loadValuesCmd(attr.Slug)
		}
		return a, nil

	case stepDynamicValue:
		if key == "enter" && a.cursor < len(a.values) {
			a.state.Filters = append(a.state.Filters, dialog.Filter{
				Attribute: a.pendAttr,
				Value:     a.values[a.cursor].Value,
			})
			a.step = stepDynamicHub
			a.cursor = 0
			a.requestPreview()
		}
		return a, nil
	}

	return a, nil
}

func (a addModel) updateInputs(msg tea.KeyMsg) (addModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if a.step == stepDynamicLabel {
			a.step = stepDynamicHub
			return a, nil
		}
		return a.reset(), nil

	case "tab", "shift+tab":
		if a.step == stepCustom {
			if a.customFocus == 0 {
				a.customFocus = 1
				a.input.Blur()
				a.customURL.Focus()
			} else {
				a.customFocus = 0
				a.customURL.Blur()
				a.input.Focus()
			}
			return a, nil
		}

	case "enter":
		switch a.step {
		case stepDynamicLabel:
			a.state.DynamicLabel = a.input.Value()
			a.step = stepDynamicHub
			return a, nil
		case stepCustom:
			a.state.CustomTitle = a.input.Value()
			a.state.CustomURL = a.customURL.Value()
			if a.state.CanConfirm() {
				a.confirmed = true
			}
			return a, nil
		case stepLabel:
			a.state.LabelTitle = a.input.Value()
			if a.state.CanConfirm() {
				a.confirmed = true
			}
			return a, nil
		}
	}

	var cmd tea.Cmd
	if a.step == stepCustom && a.customFocus == 1 {
		a.customURL, cmd = a.customURL.Update(msg)
	} else {
		a.input, cmd = a.input.Update(msg)
	}
	return a, cmd
}

// reset returns to the kind picker, discarding the abandoned kind's inputs.
func (a addModel) reset() addModel {
	a.step = stepKind
	a.cursor = 0
	a.state = dialog.State{}
	a.checked = map[int]bool{}
	a.values = nil
	a.valuesLoading = false
	a.valuesErr = ""
	a.previewKnown = false
	a.previewErr = ""
	return a
}

func (a addModel) enterKind(k dialog.Kind) addModel {
	a.state = dialog.State{Kind: k}
	a.checked = map[int]bool{}
	a.cursor = 0
	switch k {
	case dialog.KindCategory:
		a.step = stepCategories
	case dialog.KindPage:
		a.step = stepPages
	case dialog.KindDynamic:
		a.step = stepDynamicCategory
	case dialog.KindCustom:
		a.step = stepCustom
		a.customFocus = 0
		a.input = newTextInput("title", "", a.width)
		a.customURL = newTextInput("url (optional)", "", a.width)
		a.customURL.Blur()
	case dialog.KindLabel:
		a.step = stepLabel
		a.input = newTextInput("label", "", a.width)
	}
	return a
}

func (a *addModel) syncCategorySelection() {
	a.state.Categories = a.state.Categories[:0]
	for i, c := range a.catalog.Categories {
		if a.checked[i] {
			a.state.Categories = append(a.state.Categories, c)
		}
	}
}

func (a *addModel) syncPageSelection() {
	a.state.Pages = a.state.Pages[:0]
	for i, p := range a.catalog.Pages {
		if a.checked[i] {
			a.state.Pages = append(a.state.Pages, p)
		}
	}
}

func kindLabel(k dialog.Kind) string {
	switch k {
	case dialog.KindCategory:
		return "Categories — link to site categories"
	case dialog.KindPage:
		return "Pages — link to static pages"
	case dialog.KindDynamic:
		return "Dynamic link — category plus attribute filters"
	case dialog.KindCustom:
		return "Custom link — free-form title and URL"
	case dialog.KindLabel:
		return "Label — heading without a link"
	}
	return string(k)
}

func (a addModel) view(termWidth int) string {
	title := "Add under: " + a.targetTitle
	var b strings.Builder

	switch a.step {
	case stepKind:
		for i, k := range dialog.Kinds() {
			b.WriteString(a.listLine(i, kindLabel(k), false, false))
		}
		b.WriteString("\n" + styleMuted().Render("enter: choose   esc: cancel"))

	case stepCategories:
		b.WriteString(a.multiSelectView("Categories", len(a.catalog.Categories), func(i int) string {
			return a.catalog.Categories[i].Name
		}))

	case stepPages:
		b.WriteString(a.multiSelectView("Pages", len(a.catalog.Pages), func(i int) string {
			return a.catalog.Pages[i].Name
		}))

	case stepDynamicCategory:
		b.WriteString("Pick the base category:\n\n")
		if len(a.catalog.Categories) == 0 {
			b.WriteString(styleMuted().Render("no categories available"))
		}
		for i, c := range a.catalog.Categories {
			b.WriteString(a.listLine(i, c.Name, false, false))
		}
		b.WriteString("\n" + styleMuted().Render("enter: choose   esc: back"))

	case stepDynamicHub:
		b.WriteString(a.dynamicHubView())

	case stepDynamicAttribute:
		b.WriteString("Filter by attribute:\n\n")
		for i, attr := range a.attrs {
			b.WriteString(a.listLine(i, attr.Name, false, false))
		}
		b.WriteString("\n" + styleMuted().Render("enter: choose   esc: back"))

	case stepDynamicValue:
		b.WriteString("Pick a value for " + a.pendAttr + ":\n\n")
		switch {
		case a.valuesLoading:
			b.WriteString(styleMuted().Render("loading values…"))
		case a.valuesErr != "":
			b.WriteString(styleDanger().Render("values unavailable: " + a.valuesErr))
		case len(a.values) == 0:
			b.WriteString(styleMuted().Render("no values for this attribute"))
		default:
			for i, v := range a.values {
				label := fmt.Sprintf("%s (%d products)", v.Value, v.ProductCount)
				b.WriteString(a.listLine(i, label, false, false))
			}
		}
		b.WriteString("\n" + styleMuted().Render("enter: choose   esc: back"))

	case stepDynamicLabel:
		b.WriteString("Menu label:\n\n" + a.input.View())
		b.WriteString("\n\n" + styleMuted().Render("enter: set   esc: back"))

	case stepCustom:
		b.WriteString("Title:\n" + a.input.View() + "\n\n")
		b.WriteString("URL (blank makes a plain label):\n" + a.customURL.View())
		b.WriteString("\n\n" + a.confirmHint("tab: switch field"))

	case stepLabel:
		b.WriteString("Label text:\n\n" + a.input.View())
		b.WriteString("\n\n" + a.confirmHint(""))
	}

	return renderModalBox(termWidth, title, b.String())
}

func (a addModel) multiSelectView(heading string, n int, name func(int) string) string {
	var b strings.Builder
	b.WriteString(heading + ":\n\n")
	if n == 0 {
		b.WriteString(styleMuted().Render("nothing available") + "\n")
	}
	for i := 0; i < n; i++ {
		b.WriteString(a.listLine(i, name(i), true, a.checked[i]))
	}
	b.WriteString("\n" + a.confirmHint("space: toggle"))
	return b.String()
}

func (a addModel) dynamicHubView() string {
	var b strings.Builder
	b.WriteString("Category: " + a.state.DynamicCategory.Name + "\n")
	b.WriteString("Label:    " + a.state.DynamicLabel + "\n\n")

	if len(a.state.Filters) == 0 {
		b.WriteString(styleMuted().Render("no filters yet") + "\n")
	} else {
		b.WriteString("Filters:\n")
		for _, f := range a.state.Filters {
			b.WriteString("  • " + f.Attribute + " = " + f.Value + "\n")
		}
	}

	b.WriteString("\n")
	switch {
	case a.previewErr != "":
		b.WriteString(styleDanger().Render("preview unavailable: "+a.previewErr) + "\n")
	case a.previewKnown:
		b.WriteString(styleAccent().Render(fmt.Sprintf("≈ %d matching products", a.previewCount)) + "\n")
	default:
		b.WriteString(styleMuted().Render("counting matching products…") + "\n")
	}

	b.WriteString("\n" + a.confirmHint("f: add filter   x: remove filter   e: edit label"))
	return b.String()
}

func (a addModel) confirmHint(extra string) string {
	confirm := "enter: add"
	if !a.state.CanConfirm() {
		confirm = styleMuted().Render("enter: add (incomplete)")
	}
	parts := []string{confirm}
	if extra != "" {
		parts = append(parts, extra)
	}
	parts = append(parts, "esc: back")
	return styleMuted().Render(strings.Join(parts, "   "))
}

func (a addModel) listLine(i int, label string, multi bool, checked bool) string {
	mark := ""
	if multi {
		mark = "[ ] "
		if checked {
			mark = "[x] "
		}
	}
	line := mark + label
	if i == a.cursor {
		return styleSelected().Width(lipgloss.Width(line) + 2).Render("› " + line) + "\n"
	}
	return "  " + line + "\n"
}
