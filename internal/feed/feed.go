// Package feed implements a reverse-chronological, paginated Atom-style
// feed over an append-mostly stream of timestamped entries: page fetching
// with lookahead, ETag negotiation, navigation links and the cacheability
// policy for the assembled response.
package feed

import "time"

// Feed is the envelope serialized as the response body. T is the
// representation type of one entry's payload.
type Feed[T any] struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Generator Generator  `json:"generator"`
	Updated   time.Time  `json:"updated"`
	Entries   []Entry[T] `json:"entries"`
	Links     []Link     `json:"links"`
}

// Generator identifies the software producing the feed.
type Generator struct {
	Name    string `json:"name"`
	URI     string `json:"uri"`
	Version string `json:"version"`
}

// Entry is one record in the feed.
type Entry[T any] struct {
	ID      string     `json:"id"`
	Updated time.Time  `json:"updated"`
	Content Content[T] `json:"content"`
}

// Content wraps an entry payload. Type is always empty for JSON feeds.
type Content[T any] struct {
	Value T      `json:"value"`
	Type  string `json:"type"`
}

// Link is a tagged navigation reference to a page of the feed.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}
