package nav

import (
	"testing"

	"navedit-cli/internal/model"
)

func TestParsePath(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "0", want: "0"},
		{in: "0.2.1", want: "0.2.1"},
		{in: " 1 . 2 ", want: "1.2"},
		{in: "a", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "0..1", wantErr: true},
	}
	for _, c := range cases {
		p, err := ParsePath(c.in)
		if c.wantErr {
			if err == nil {
				t.Fatalf("ParsePath(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParsePath(%q): %v", c.in, err)
		}
		if got := p.String(); got != c.want {
			t.Fatalf("ParsePath(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}

func TestChildDoesNotAliasParent(t *testing.T) {
	p := Path{0, 1}
	a := p.Child(2)
	b := p.Child(3)
	if a.String() != "0.1.2" || b.String() != "0.1.3" {
		t.Fatalf("Child aliased backing array: %s / %s", a, b)
	}
}

func TestFindByID(t *testing.T) {
	tree := sampleTree()
	path, index, ok := FindByID(tree, "accessories")
	if !ok {
		t.Fatalf("accessories not found")
	}
	if path.String() != "0.0" || index != 0 {
		t.Fatalf("got %s.%d; want 0.0.0", path, index)
	}
	if _, _, ok := FindByID(tree, "nope"); ok {
		t.Fatalf("found a node that does not exist")
	}
}

func TestWalkVisitsDisplayOrder(t *testing.T) {
	var ids []string
	Walk(sampleTree(), func(n model.NavigationItem, path Path, index int) bool {
		ids = append(ids, n.ID)
		return true
	})
	want := []string{"shop", "phones", "accessories", "laptops", "about", "contact"}
	if len(ids) != len(want) {
		t.Fatalf("visited %v; want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("visited %v; want %v", ids, want)
		}
	}
}
