// Package upstream talks to the Humorpedia content API.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"humorpedia-web/internal/domain"
)

// Client is an HTTP client for the content API. All read endpoints live
// under /api; responses are passed through as raw JSON wherever the frontend
// does not need to interpret them.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// OnRequest, when set, observes every upstream call.
	OnRequest func(endpoint string, status int)
}

// New creates a content API client. baseURL points at the API root without
// the /api prefix, e.g. "http://cms.internal:8000".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// LoadEntity fetches one content document by slug.
func (c *Client) LoadEntity(ctx context.Context, contentType domain.ContentType, slug string) (domain.Entity, error) {
	var raw json.RawMessage
	path := "/api/content/" + contentType.Collection() + "/" + url.PathEscape(slug)
	if err := c.getJSON(ctx, "entity", path, nil, &raw); err != nil {
		return domain.Entity{}, err
	}
	e, err := domain.DecodeEntity(raw)
	if err != nil {
		return domain.Entity{}, fmt.Errorf("decode %s %q: %w", contentType, slug, err)
	}
	if e.ContentType == "" {
		e.ContentType = contentType
	}
	return e, nil
}

// List fetches a page of documents for one content type.
func (c *Client) List(ctx context.Context, contentType domain.ContentType, opts domain.ListOptions) (domain.ListResult, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(opts.Skip))
	if opts.Limit > 0 {
		params.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Status != "" {
		params.Set("status", opts.Status)
	}
	if opts.Tag != "" {
		params.Set("tag", opts.Tag)
	}
	if opts.Search != "" {
		params.Set("search", opts.Search)
	}
	if opts.Letter != "" {
		params.Set("letter", opts.Letter)
	}

	var result domain.ListResult
	path := "/api/content/" + contentType.Collection()
	if err := c.getJSON(ctx, "list", path, params, &result); err != nil {
		return domain.ListResult{}, err
	}
	return result, nil
}

// Search queries all content types at once. Empty types means the upstream
// default set.
func (c *Client) Search(ctx context.Context, query string, types []domain.ContentType, limit int) (domain.SearchResults, error) {
	params := url.Values{}
	params.Set("q", query)
	if len(types) > 0 {
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = string(t)
		}
		params.Set("types", strings.Join(names, ","))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var results domain.SearchResults
	if err := c.getJSON(ctx, "search", "/api/content/search", params, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// LoadSections fetches the full section tree.
func (c *Client) LoadSections(ctx context.Context) ([]domain.SectionNode, error) {
	var tree []domain.SectionNode
	if err := c.getJSON(ctx, "sections_tree", "/api/sections/tree", nil, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// SectionByPath fetches one section document by its full path, e.g.
// "shows/late-night".
func (c *Client) SectionByPath(ctx context.Context, fullPath string) (domain.Entity, error) {
	var raw json.RawMessage
	path := "/api/sections/path/" + escapePath(fullPath)
	if err := c.getJSON(ctx, "section", path, nil, &raw); err != nil {
		return domain.Entity{}, err
	}
	e, err := domain.DecodeEntity(raw)
	if err != nil {
		return domain.Entity{}, fmt.Errorf("decode section %q: %w", fullPath, err)
	}
	if e.ContentType == "" {
		e.ContentType = domain.TypeSection
	}
	return e, nil
}

// SectionChildren lists the direct children of a section.
func (c *Client) SectionChildren(ctx context.Context, sectionID string, skip, limit int) (domain.SectionChildren, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(skip))
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var children domain.SectionChildren
	path := "/api/sections/" + url.PathEscape(sectionID) + "/children"
	if err := c.getJSON(ctx, "section_children", path, params, &children); err != nil {
		return domain.SectionChildren{}, err
	}
	return children, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(endpoint, 0)
		return fmt.Errorf("call content api: %w", err)
	}
	defer resp.Body.Close()
	c.observe(endpoint, resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("content api returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode content api response: %w", err)
	}
	return nil
}

func (c *Client) observe(endpoint string, status int) {
	if c.OnRequest != nil {
		c.OnRequest(endpoint, status)
	}
}

// escapePath escapes each segment of a slash-separated path, keeping the
// slashes themselves.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
