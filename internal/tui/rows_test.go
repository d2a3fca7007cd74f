package tui

import (
	"testing"

	"navedit-cli/internal/model"
	"navedit-cli/internal/nav"
)

func str(s string) *string { return &s }

func sampleTree() []model.NavigationItem {
	return []model.NavigationItem{
		{ID: "shop", Title: "Shop", Href: str("/shop"), SubMenu: []model.NavigationItem{
			{ID: "phones", Title: "Phones", Href: str("/shop/phones"), SubMenu: []model.NavigationItem{
				{ID: "accessories", Title: "Accessories", Href: str("/shop/phones/accessories")},
			}},
			{ID: "laptops", Title: "Laptops", Href: str("/shop/laptops")},
		}},
		{ID: "about", Title: "About", Href: str("/about")},
		{ID: "contact", Title: "Contact", Href: str("/contact")},
	}
}

func rowIDs(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.node.ID
	}
	return out
}

func TestFlattenRowsExpanded(t *testing.T) {
	rows := flattenRows(sampleTree(), map[string]bool{})

	want := []string{"shop", "phones", "accessories", "laptops", "about", "contact"}
	got := rowIDs(rows)
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %q, want %q", i, got[i], want[i])
		}
	}

	if rows[0].depth != 0 || rows[2].depth != 2 {
		t.Fatalf("depths: shop=%d accessories=%d, want 0 and 2", rows[0].depth, rows[2].depth)
	}
	if rows[0].container() != nav.RootContainer {
		t.Fatalf("shop container = %q, want root", rows[0].container())
	}
	if rows[2].container() != nav.ContainerOf("phones") {
		t.Fatalf("accessories container = %q, want phones", rows[2].container())
	}
}

func TestFlattenRowsCollapsedHidesSubtree(t *testing.T) {
	rows := flattenRows(sampleTree(), map[string]bool{"shop": true})

	want := []string{"shop", "about", "contact"}
	got := rowIDs(rows)
	if len(got) != len(want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	if rows[0].expanded {
		t.Fatalf("collapsed node reported as expanded")
	}
	if !rows[0].hasChildren {
		t.Fatalf("collapsed node must still report children")
	}
}

func TestFlattenRowsCollapseSurvivesByID(t *testing.T) {
	collapsed := map[string]bool{"phones": true}
	tree := sampleTree()

	// Reorder the root; phones keeps its id and stays collapsed.
	reordered, err := nav.ReorderSiblings(tree, nav.Path{}, 0, 2)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	rows := flattenRows(reordered, collapsed)
	if i := rowIndexByID(rows, "accessories"); i != -1 {
		t.Fatalf("accessories visible under a collapsed parent (row %d)", i)
	}
	if i := rowIndexByID(rows, "phones"); i < 0 {
		t.Fatalf("phones row missing after reorder")
	}
}

func TestRowIndexByIDMissing(t *testing.T) {
	rows := flattenRows(sampleTree(), map[string]bool{})
	if i := rowIndexByID(rows, "nope"); i != -1 {
		t.Fatalf("rowIndexByID(nope) = %d, want -1", i)
	}
}
