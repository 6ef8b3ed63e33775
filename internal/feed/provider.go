package feed

import (
	"context"
	"time"
)

// Provider supplies entries and metadata for one feed. E is the stored
// entity, T the representation that appears in feed entries.
//
// EntriesForPage must return entries newest-first and may return up to
// PageSize()+1 of them: the extra lookahead entry tells the engine that an
// older page exists. Page 0 is the most recent page; higher page numbers
// move toward older data.
type Provider[E, T any] interface {
	EntriesForPage(ctx context.Context, page int64) ([]E, error)
	PageSize() int

	TimestampFor(entry E) time.Time
	URNFor(entry E) string
	Representation(entry E) T

	FeedName() string
	FeedURL() string
	ProviderName() string
	ProviderVersion() string
}
