package dialog

import (
	"net/url"
	"strings"
	"testing"

	"navedit-cli/internal/model"
)

func TestCanConfirm_PerKind(t *testing.T) {
	cases := []struct {
		name string
		s    State
		want bool
	}{
		{"category empty", State{Kind: KindCategory}, false},
		{"category selected", State{Kind: KindCategory, Categories: []model.Category{{ID: "c1", Name: "Phones"}}}, true},
		{"page empty", State{Kind: KindPage}, false},
		{"page selected", State{Kind: KindPage, Pages: []model.Page{{ID: "p1", Name: "About"}}}, true},
		{"dynamic missing label", State{Kind: KindDynamic, DynamicCategory: &model.Category{ID: "c1"}}, false},
		{"dynamic missing category", State{Kind: KindDynamic, DynamicLabel: "Black Phones"}, false},
		{"dynamic complete", State{Kind: KindDynamic, DynamicCategory: &model.Category{ID: "c1"}, DynamicLabel: "Black Phones"}, true},
		{"dynamic blank label", State{Kind: KindDynamic, DynamicCategory: &model.Category{ID: "c1"}, DynamicLabel: "   "}, false},
		{"custom empty", State{Kind: KindCustom}, false},
		{"custom title only", State{Kind: KindCustom, CustomTitle: "Blog"}, true},
		{"label empty", State{Kind: KindLabel}, false},
		{"label set", State{Kind: KindLabel, LabelTitle: "Shop by Category"}, true},
	}
	for _, c := range cases {
		if got := c.s.CanConfirm(); got != c.want {
			t.Fatalf("%s: CanConfirm = %v; want %v", c.name, got, c.want)
		}
	}
}

func TestResolve_Categories(t *testing.T) {
	s := State{
		Kind: KindCategory,
		Categories: []model.Category{
			{ID: "c1", Name: "Phones", URL: "/categories/phones"},
			{ID: "c2", Name: "Laptops", URL: "/categories/laptops"},
		},
	}
	nodes, err := s.Resolve()
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected one node per selection; got %d", len(nodes))
	}
	if nodes[0].Title != "Phones" || nodes[0].Href == nil || *nodes[0].Href != "/categories/phones" {
		t.Fatalf("unexpected first node: %+v", nodes[0])
	}
	if nodes[0].ID == "" || nodes[0].ID == nodes[1].ID {
		t.Fatalf("nodes must get fresh unique ids: %q / %q", nodes[0].ID, nodes[1].ID)
	}
}

func TestResolve_LabelOnly(t *testing.T) {
	s := State{Kind: KindLabel, LabelTitle: "Shop by Category"}
	nodes, err := s.Resolve()
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("expected exactly one node; got %d", len(nodes))
	}
	n := nodes[0]
	if n.Title != "Shop by Category" {
		t.Fatalf("title = %q", n.Title)
	}
	if n.Href != nil {
		t.Fatalf("label node must not carry an href; got %q", *n.Href)
	}
	if n.SubMenu == nil || len(n.SubMenu) != 0 {
		t.Fatalf("expected empty submenu; got %+v", n.SubMenu)
	}
}

func TestResolve_CustomBlankURLBecomesLabel(t *testing.T) {
	s := State{Kind: KindCustom, CustomTitle: "Coming Soon", CustomURL: "  "}
	nodes, err := s.Resolve()
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if nodes[0].Href != nil {
		t.Fatalf("blank URL should produce a label node; got %q", *nodes[0].Href)
	}

	s.CustomURL = "https://example.com/blog"
	nodes, err = s.Resolve()
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if nodes[0].Href == nil || *nodes[0].Href != "https://example.com/blog" {
		t.Fatalf("expected custom href kept; got %+v", nodes[0].Href)
	}
}

func TestResolve_DynamicLink(t *testing.T) {
	s := State{
		Kind:            KindDynamic,
		DynamicCategory: &model.Category{ID: "c1", Name: "Phones", URL: "/categories/phones"},
		Filters:         []Filter{{Attribute: "color", Value: "black"}},
		DynamicLabel:    "Black Phones",
	}
	nodes, err := s.Resolve()
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("dynamic kind must produce exactly one node; got %d", len(nodes))
	}
	n := nodes[0]
	if n.Title != "Black Phones" {
		t.Fatalf("title = %q", n.Title)
	}
	if n.Href == nil {
		t.Fatalf("dynamic node must carry an href")
	}
	u, err := url.Parse(*n.Href)
	if err != nil {
		t.Fatalf("href does not parse: %v", err)
	}
	if !strings.HasPrefix(u.Path, "/categories/phones") {
		t.Fatalf("href path = %q", u.Path)
	}
	if got := u.Query().Get("color"); got != "black" {
		t.Fatalf("color filter = %q; want black", got)
	}
}

func TestResolve_RefusesIncompleteState(t *testing.T) {
	s := State{Kind: KindDynamic, DynamicLabel: "No Category"}
	if _, err := s.Resolve(); err == nil {
		t.Fatalf("expected error for unconfirmable state")
	}
}

func TestBuildDynamicHref(t *testing.T) {
	got := BuildDynamicHref("/categories/phones", []Filter{
		{Attribute: "color", Value: "matte black"},
		{Attribute: "storage", Value: "256gb"},
		{Attribute: "", Value: "dropped"},
		{Attribute: "dropped", Value: " "},
	})
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("result does not parse: %v", err)
	}
	q := u.Query()
	if q.Get("color") != "matte black" {
		t.Fatalf("color = %q", q.Get("color"))
	}
	if q.Get("storage") != "256gb" {
		t.Fatalf("storage = %q", q.Get("storage"))
	}
	if len(q) != 2 {
		t.Fatalf("blank filters must be skipped; got %v", q)
	}

	// Existing query params on the category URL survive.
	got = BuildDynamicHref("/categories/phones?sort=price", []Filter{{Attribute: "color", Value: "black"}})
	u, _ = url.Parse(got)
	if u.Query().Get("sort") != "price" || u.Query().Get("color") != "black" {
		t.Fatalf("existing params lost: %q", got)
	}
}
