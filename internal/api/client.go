// Package api is the admin REST client: catalog and attribute lookups for
// the creation dialog, the preview product count, and whole-menu load/save.
// The navigation tree is always persisted in full; there is no partial
// update endpoint.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"navedit-cli/internal/model"

	"github.com/charmbracelet/log"
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Status int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Status)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *log.Logger
}

type Option func(*Client)

// WithToken sets a bearer token attached to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient swaps the underlying http.Client (tests, custom timeouts).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger swaps the client's logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.log = l }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log.Default().WithPrefix("api"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, path, out)
}

func (c *Client) put(ctx context.Context, path string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", "method", req.Method, "path", path, "err", err)
		return fmt.Errorf("%s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()
	c.log.Debug("request", "method", req.Method, "path", path, "status", resp.StatusCode, "dur", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return StatusError{Method: req.Method, Path: path, Status: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", req.Method, path, err)
	}
	return nil
}

type navigationEnvelope struct {
	Items []model.NavigationItem `json:"items"`
}

// Navigation fetches the persisted navigation tree.
func (c *Client) Navigation(ctx context.Context) ([]model.NavigationItem, error) {
	var env navigationEnvelope
	if err := c.get(ctx, "/admin/navigation", nil, &env); err != nil {
		return nil, err
	}
	return env.Items, nil
}

// SaveNavigation persists the entire tree. Called on every structural save;
// the backend replaces its stored menu wholesale.
func (c *Client) SaveNavigation(ctx context.Context, items []model.NavigationItem) error {
	if items == nil {
		items = []model.NavigationItem{}
	}
	return c.put(ctx, "/admin/navigation", navigationEnvelope{Items: items}, nil)
}

type catalogEnvelope struct {
	Items model.Catalog `json:"items"`
}

// Catalog fetches the category and page lists offered by the creation dialog.
func (c *Client) Catalog(ctx context.Context) (model.Catalog, error) {
	var env catalogEnvelope
	if err := c.get(ctx, "/admin/catalog", nil, &env); err != nil {
		return model.Catalog{}, err
	}
	return env.Items, nil
}

type attributesEnvelope struct {
	Data []model.Attribute `json:"data"`
}

// Attributes fetches the attribute list, keeping only filterable ones.
func (c *Client) Attributes(ctx context.Context) ([]model.Attribute, error) {
	var env attributesEnvelope
	if err := c.get(ctx, "/admin/attributes", nil, &env); err != nil {
		return nil, err
	}
	out := env.Data[:0]
	for _, a := range env.Data {
		if a.Filterable {
			out = append(out, a)
		}
	}
	return out, nil
}

type valuesEnvelope struct {
	Values []model.AttributeValue `json:"values"`
}

// AttributeValues fetches the selectable values of one attribute.
func (c *Client) AttributeValues(ctx context.Context, attributeSlug string) ([]model.AttributeValue, error) {
	attributeSlug = strings.TrimSpace(attributeSlug)
	if attributeSlug == "" {
		return nil, fmt.Errorf("missing attribute slug")
	}
	var env valuesEnvelope
	if err := c.get(ctx, "/admin/attributes/"+url.PathEscape(attributeSlug)+"/values", nil, &env); err != nil {
		return nil, err
	}
	return env.Values, nil
}

type countEnvelope struct {
	Count int `json:"count"`
}

// PreviewCount returns how many products a category+filters combination
// matches. Purely informational; failures never gate the dialog.
func (c *Client) PreviewCount(ctx context.Context, categorySlug string, filters url.Values) (int, error) {
	q := url.Values{}
	q.Set("category", categorySlug)
	for k, vs := range filters {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	var env countEnvelope
	if err := c.get(ctx, "/admin/products/count", q, &env); err != nil {
		return 0, err
	}
	return env.Count, nil
}
