// Package dialog resolves a user's "add menu item" choice into ready-to-insert
// navigation nodes. It never touches the tree itself: callers hand the
// resolved nodes to nav.AddItems at whatever target they picked.
package dialog

import (
	"errors"
	"net/url"
	"strings"

	"navedit-cli/internal/model"

	"github.com/google/uuid"
)

// Kind selects which source the new item(s) come from. Kinds are mutually
// exclusive; switching kinds discards the other kinds' inputs.
type Kind string

const (
	// KindCategory turns each selected site category into one linked node.
	KindCategory Kind = "category"
	// KindPage turns each selected static page into one linked node.
	KindPage Kind = "page"
	// KindDynamic builds one node whose href is a category URL plus encoded
	// attribute filters.
	KindDynamic Kind = "dynamic"
	// KindCustom is a free-form label with an optional free-form URL.
	KindCustom Kind = "custom"
	// KindLabel is a non-clickable label; no URL field is offered at all.
	KindLabel Kind = "label"
)

// Kinds lists the selectable kinds in presentation order.
func Kinds() []Kind {
	return []Kind{KindCategory, KindPage, KindDynamic, KindCustom, KindLabel}
}

// Filter is one attribute=value pair of a dynamic link.
type Filter struct {
	Attribute string // attribute slug
	Value     string
}

// State holds the dialog's inputs for all kinds; only the fields of the
// active Kind matter for confirmation.
type State struct {
	Kind Kind

	Categories []model.Category // KindCategory selection
	Pages      []model.Page     // KindPage selection

	DynamicCategory *model.Category // KindDynamic
	Filters         []Filter
	DynamicLabel    string

	CustomTitle string // KindCustom
	CustomURL   string

	LabelTitle string // KindLabel
}

// CanConfirm reports whether the active kind has a valid, non-empty input.
// The confirm control stays disabled until this is true; Resolve on a state
// that cannot confirm is a caller bug.
func (s State) CanConfirm() bool {
	switch s.Kind {
	case KindCategory:
		return len(s.Categories) > 0
	case KindPage:
		return len(s.Pages) > 0
	case KindDynamic:
		return s.DynamicCategory != nil && strings.TrimSpace(s.DynamicLabel) != ""
	case KindCustom:
		return strings.TrimSpace(s.CustomTitle) != ""
	case KindLabel:
		return strings.TrimSpace(s.LabelTitle) != ""
	default:
		return false
	}
}

var errNotConfirmable = errors.New("dialog selection incomplete")

// Resolve turns the active kind's inputs into new navigation nodes with
// freshly minted ids.
func (s State) Resolve() ([]model.NavigationItem, error) {
	if !s.CanConfirm() {
		return nil, errNotConfirmable
	}
	switch s.Kind {
	case KindCategory:
		out := make([]model.NavigationItem, 0, len(s.Categories))
		for _, c := range s.Categories {
			out = append(out, newNode(c.Name, &c.URL))
		}
		return out, nil

	case KindPage:
		out := make([]model.NavigationItem, 0, len(s.Pages))
		for _, p := range s.Pages {
			out = append(out, newNode(p.Name, &p.URL))
		}
		return out, nil

	case KindDynamic:
		href := BuildDynamicHref(s.DynamicCategory.URL, s.Filters)
		return []model.NavigationItem{newNode(strings.TrimSpace(s.DynamicLabel), &href)}, nil

	case KindCustom:
		title := strings.TrimSpace(s.CustomTitle)
		u := strings.TrimSpace(s.CustomURL)
		if u == "" {
			// Blank URL: the node degrades to a label.
			return []model.NavigationItem{newNode(title, nil)}, nil
		}
		return []model.NavigationItem{newNode(title, &u)}, nil

	case KindLabel:
		return []model.NavigationItem{newNode(strings.TrimSpace(s.LabelTitle), nil)}, nil
	}
	return nil, errNotConfirmable
}

func newNode(title string, href *string) model.NavigationItem {
	n := model.NavigationItem{
		ID:      uuid.NewString(),
		Title:   title,
		SubMenu: []model.NavigationItem{},
	}
	if href != nil {
		h := *href
		n.Href = &h
	}
	return n
}

// BuildDynamicHref appends encoded attribute filters to a category URL as
// query parameters. Filters with a blank attribute or value are skipped.
// Existing query parameters on the category URL are preserved.
func BuildDynamicHref(categoryURL string, filters []Filter) string {
	u, err := url.Parse(categoryURL)
	if err != nil {
		// Category URLs come from the backend; fall back to the raw string
		// rather than dropping the link.
		return categoryURL
	}
	q := u.Query()
	for _, f := range filters {
		attr := strings.TrimSpace(f.Attribute)
		val := strings.TrimSpace(f.Value)
		if attr == "" || val == "" {
			continue
		}
		q.Add(attr, val)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
