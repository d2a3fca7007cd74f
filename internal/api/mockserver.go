package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"navedit-cli/internal/model"

	"github.com/charmbracelet/log"
)

// MockServer is a fixture-backed implementation of the admin endpoints the
// editor consumes. It exists for offline work and tests; it is not the real
// backend and persists nothing across restarts.
type MockServer struct {
	mu    sync.RWMutex
	menu  []model.NavigationItem
	cat   model.Catalog
	attrs []model.Attribute
	vals  map[string][]model.AttributeValue
	log   *log.Logger

	failSave bool
}

func NewMockServer(menu []model.NavigationItem) *MockServer {
	return &MockServer{
		menu: menu,
		cat: model.Catalog{
			Categories: []model.Category{
				{ID: "cat-phones", Name: "Phones", Slug: "phones", URL: "/categories/phones"},
				{ID: "cat-laptops", Name: "Laptops", Slug: "laptops", URL: "/categories/laptops"},
				{ID: "cat-audio", Name: "Audio", Slug: "audio", URL: "/categories/audio"},
				{ID: "cat-wearables", Name: "Wearables", Slug: "wearables", URL: "/categories/wearables"},
			},
			Pages: []model.Page{
				{ID: "page-about", Name: "About Us", Slug: "about", URL: "/pages/about"},
				{ID: "page-contact", Name: "Contact", Slug: "contact", URL: "/pages/contact"},
				{ID: "page-shipping", Name: "Shipping & Returns", Slug: "shipping", URL: "/pages/shipping"},
			},
		},
		attrs: []model.Attribute{
			{ID: "attr-color", Name: "Color", Slug: "color", Filterable: true},
			{ID: "attr-storage", Name: "Storage", Slug: "storage", Filterable: true},
			{ID: "attr-sku", Name: "SKU", Slug: "sku", Filterable: false},
		},
		vals: map[string][]model.AttributeValue{
			"color": {
				{Value: "black", ProductCount: 42},
				{Value: "silver", ProductCount: 17},
				{Value: "gold", ProductCount: 5},
			},
			"storage": {
				{Value: "128gb", ProductCount: 23},
				{Value: "256gb", ProductCount: 31},
				{Value: "512gb", ProductCount: 9},
			},
		},
		log: log.Default().WithPrefix("mock-api"),
	}
}

// Menu returns the current in-memory menu (for assertions in tests).
func (s *MockServer) Menu() []model.NavigationItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.NavigationItem, len(s.menu))
	copy(out, s.menu)
	return out
}

// FailNextSave makes the next PUT /admin/navigation return 503 (tests).
func (s *MockServer) FailNextSave() {
	s.mu.Lock()
	s.failSave = true
	s.mu.Unlock()
}

// Handler returns the HTTP handler serving the admin endpoints.
func (s *MockServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/navigation", s.handleNavigation)
	mux.HandleFunc("/admin/catalog", s.handleCatalog)
	mux.HandleFunc("/admin/attributes", s.handleAttributes)
	mux.HandleFunc("/admin/attributes/", s.handleAttributeValues)
	mux.HandleFunc("/admin/products/count", s.handleProductCount)
	return mux
}

func (s *MockServer) handleNavigation(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.mu.RLock()
		menu := s.menu
		s.mu.RUnlock()
		if menu == nil {
			menu = []model.NavigationItem{}
		}
		writeJSON(w, map[string]any{"items": menu})

	case http.MethodPut:
		var env struct {
			Items []model.NavigationItem `json:"items"`
		}
		if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		if s.failSave {
			s.failSave = false
			s.mu.Unlock()
			http.Error(w, "save unavailable", http.StatusServiceUnavailable)
			return
		}
		s.menu = env.Items
		s.mu.Unlock()
		s.log.Info("menu saved", "nodes", len(env.Items))
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *MockServer) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.mu.RLock()
	cat := s.cat
	s.mu.RUnlock()
	writeJSON(w, map[string]any{"items": cat})
}

func (s *MockServer) handleAttributes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.mu.RLock()
	attrs := s.attrs
	s.mu.RUnlock()
	writeJSON(w, map[string]any{"data": attrs})
}

func (s *MockServer) handleAttributeValues(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	// /admin/attributes/{slug}/values
	rest := strings.TrimPrefix(r.URL.Path, "/admin/attributes/")
	slug, tail, ok := strings.Cut(rest, "/")
	if !ok || tail != "values" || slug == "" {
		http.NotFound(w, r)
		return
	}
	slug, _ = url.PathUnescape(slug)
	s.mu.RLock()
	vals := s.vals[slug]
	s.mu.RUnlock()
	if vals == nil {
		vals = []model.AttributeValue{}
	}
	writeJSON(w, map[string]any{"values": vals})
}

func (s *MockServer) handleProductCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	category := q.Get("category")
	if category == "" {
		http.Error(w, "missing category", http.StatusBadRequest)
		return
	}

	// Deterministic fixture count: each filter value narrows the base count.
	count := 120
	for k, vs := range q {
		if k == "category" {
			continue
		}
		for range vs {
			count = count/2 + 1
		}
	}
	writeJSON(w, map[string]any{"count": count})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
