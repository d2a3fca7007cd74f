package model

// NavigationItem is one entry in the storefront navigation tree.
//
// Href is optional: a node without one is a non-clickable label. A node may
// carry both an Href and children at the same time (it is then a link that
// also opens a dropdown); that combination is a supported state.
//
// SubMenu order is display order. An absent SubMenu and an empty one are
// equivalent for traversal.
type NavigationItem struct {
	ID      string           `json:"id"`
	Title   string           `json:"title"`
	Href    *string          `json:"href,omitempty"`
	SubMenu []NavigationItem `json:"subMenu,omitempty"`
}

// Category is a site category as returned by the admin catalog endpoint.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	URL  string `json:"url"`
}

// Page is a static storefront page (about, contact, ...).
type Page struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	URL  string `json:"url"`
}

// Catalog bundles the category and page lists the creation dialog offers.
type Catalog struct {
	Categories []Category `json:"categories"`
	Pages      []Page     `json:"pages"`
}

// Attribute is a product attribute; only filterable attributes are offered
// when building dynamic links.
type Attribute struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Filterable bool   `json:"filterable"`
}

// AttributeValue is one selectable value of an attribute, with the number of
// products carrying it (informational only).
type AttributeValue struct {
	Value        string `json:"value"`
	ProductCount int    `json:"productCount"`
}
