package api

import (
	"context"
	"errors"
	"net/http/httptest"
	"net/url"
	"testing"

	"navedit-cli/internal/model"
)

func strPtr(s string) *string { return &s }

func newTestClient(t *testing.T, mock *MockServer) *Client {
	t.Helper()
	srv := httptest.NewServer(mock.Handler())
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestNavigationRoundTrip(t *testing.T) {
	mock := NewMockServer(nil)
	c := newTestClient(t, mock)
	ctx := context.Background()

	items, err := c.Navigation(ctx)
	if err != nil {
		t.Fatalf("Navigation error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty menu; got %d items", len(items))
	}

	menu := []model.NavigationItem{
		{ID: "a", Title: "Shop", Href: strPtr("/shop"), SubMenu: []model.NavigationItem{
			{ID: "b", Title: "Phones", Href: strPtr("/categories/phones")},
		}},
		{ID: "c", Title: "Help"},
	}
	if err := c.SaveNavigation(ctx, menu); err != nil {
		t.Fatalf("SaveNavigation error: %v", err)
	}

	items, err = c.Navigation(ctx)
	if err != nil {
		t.Fatalf("Navigation after save error: %v", err)
	}
	if len(items) != 2 || items[0].ID != "a" || len(items[0].SubMenu) != 1 {
		t.Fatalf("round-tripped menu mismatch: %+v", items)
	}
	if items[1].Href != nil {
		t.Fatalf("label node grew an href: %q", *items[1].Href)
	}
}

func TestSaveNavigation_SurfacesStatusError(t *testing.T) {
	mock := NewMockServer(nil)
	c := newTestClient(t, mock)
	mock.FailNextSave()

	err := c.SaveNavigation(context.Background(), []model.NavigationItem{{ID: "a", Title: "A"}})
	var se StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError; got %v", err)
	}
	if se.Status != 503 {
		t.Fatalf("status = %d; want 503", se.Status)
	}

	// The next save succeeds (retry keeps working).
	if err := c.SaveNavigation(context.Background(), []model.NavigationItem{{ID: "a", Title: "A"}}); err != nil {
		t.Fatalf("retry save error: %v", err)
	}
}

func TestCatalogAndAttributes(t *testing.T) {
	c := newTestClient(t, NewMockServer(nil))
	ctx := context.Background()

	cat, err := c.Catalog(ctx)
	if err != nil {
		t.Fatalf("Catalog error: %v", err)
	}
	if len(cat.Categories) == 0 || len(cat.Pages) == 0 {
		t.Fatalf("expected fixture categories and pages; got %+v", cat)
	}

	attrs, err := c.Attributes(ctx)
	if err != nil {
		t.Fatalf("Attributes error: %v", err)
	}
	for _, a := range attrs {
		if !a.Filterable {
			t.Fatalf("non-filterable attribute leaked: %+v", a)
		}
	}
	if len(attrs) != 2 {
		t.Fatalf("expected 2 filterable attributes; got %d", len(attrs))
	}

	vals, err := c.AttributeValues(ctx, "color")
	if err != nil {
		t.Fatalf("AttributeValues error: %v", err)
	}
	if len(vals) == 0 || vals[0].Value == "" {
		t.Fatalf("expected color values; got %+v", vals)
	}

	// Unknown attribute degrades to an empty list, not an error.
	vals, err = c.AttributeValues(ctx, "nope")
	if err != nil {
		t.Fatalf("AttributeValues unknown error: %v", err)
	}
	if len(vals) != 0 {
		t.Fatalf("expected no values; got %+v", vals)
	}
}

func TestPreviewCount_NarrowsWithFilters(t *testing.T) {
	c := newTestClient(t, NewMockServer(nil))
	ctx := context.Background()

	base, err := c.PreviewCount(ctx, "phones", nil)
	if err != nil {
		t.Fatalf("PreviewCount error: %v", err)
	}
	filtered, err := c.PreviewCount(ctx, "phones", url.Values{"color": {"black"}})
	if err != nil {
		t.Fatalf("PreviewCount filtered error: %v", err)
	}
	if filtered >= base {
		t.Fatalf("filtered count %d should be below base %d", filtered, base)
	}
}
