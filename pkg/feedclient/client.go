// Package feedclient consumes a paginated event feed over HTTP. The
// default transport caches responses in memory and revalidates them with
// conditional requests, so polling an unchanged feed costs one 304.
package feedclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gregjones/httpcache"
)

// ErrNotFound marks a page number beyond the feed's history.
var ErrNotFound = errors.New("feedclient: page not found")

// Feed mirrors the server's feed envelope. Entry payloads stay raw so
// callers can decode them into their own types.
type Feed struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Generator Generator `json:"generator"`
	Updated   time.Time `json:"updated"`
	Entries   []Entry   `json:"entries"`
	Links     []Link    `json:"links"`
}

type Generator struct {
	Name    string `json:"name"`
	URI     string `json:"uri"`
	Version string `json:"version"`
}

type Entry struct {
	ID      string    `json:"id"`
	Updated time.Time `json:"updated"`
	Content Content   `json:"content"`
}

type Content struct {
	Value json.RawMessage `json:"value"`
	Type  string          `json:"type"`
}

type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// Link returns the href for a relation, or "" when absent.
func (f *Feed) Link(rel string) string {
	for _, l := range f.Links {
		if l.Rel == rel {
			return l.Href
		}
	}
	return ""
}

type Client struct {
	http *http.Client
	base *url.URL
}

type Option func(*Client)

// WithHTTPClient replaces the default caching client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("feedclient: parse base URL: %w", err)
	}

	c := &Client{
		http: httpcache.NewMemoryCacheTransport().Client(),
		base: u,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Head fetches the current view of the feed.
func (c *Client) Head(ctx context.Context) (*Feed, error) {
	return c.get(ctx, "/")
}

// Page fetches one numbered page.
func (c *Client) Page(ctx context.Context, page int64, size int) (*Feed, error) {
	return c.get(ctx, fmt.Sprintf("/%d/%d", page, size))
}

// Previous follows the feed's previous link toward older data. Returns
// nil when the feed has no older page.
func (c *Client) Previous(ctx context.Context, f *Feed) (*Feed, error) {
	href := f.Link("previous")
	if href == "" {
		return nil, nil
	}
	return c.get(ctx, href)
}

func (c *Client) get(ctx context.Context, path string) (*Feed, error) {
	u := *c.base
	u.Path = path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("feedclient: GET %s: status %d: %s", path, resp.StatusCode, body)
	}

	var f Feed
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("feedclient: decode %s: %w", path, err)
	}
	return &f, nil
}
