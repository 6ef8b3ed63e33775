package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DefaultCacheMaxAge is how long intermediaries may cache a complete
// historical page when no max-age is configured (30 days).
const DefaultCacheMaxAge = 2592000 * time.Second

// Request carries the page coordinates and conditional validator of one
// feed request.
type Request struct {
	Page int64
	// ETag is the client's If-None-Match value; empty means unconditional.
	ETag string
	// Head marks a request for the "current" view of the feed. The head
	// page must never be cached by intermediaries because new entries can
	// arrive at any time.
	Head bool
}

// Options tune the engine per feed.
type Options struct {
	// CacheMaxAge caps intermediary caching of complete historical pages.
	// Zero means DefaultCacheMaxAge.
	CacheMaxAge time.Duration
}

// Response is the transport-free outcome of a feed request. Status uses
// plain HTTP codes; CacheControl is empty when the page must not be cached.
type Response struct {
	Status       int
	Body         []byte
	ETag         string
	CacheControl string
	// Message is the human-readable body of a not-found outcome.
	Message string
}

// SerializationError wraps a failure to encode an assembled feed. It is a
// server-side failure, never a user input error.
type SerializationError struct {
	Page int64
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialize feed page %d: %v", e.Page, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// Get runs one feed request end to end: fetch with lookahead, ETag
// negotiation, assembly and cacheability. Provider errors propagate
// unmodified; a matched validator short-circuits before the body is built.
func Get[E, T any](ctx context.Context, p Provider[E, T], req Request, opts Options) (*Response, error) {
	pg, err := fetchPage(ctx, p, req.Page)
	if errors.Is(err, ErrPageNotFound) {
		return &Response{
			Status:  http.StatusNotFound,
			Message: fmt.Sprintf("page %d not found", req.Page),
		}, nil
	}
	if err != nil {
		return nil, err
	}

	tag := Validator(pg.Updated)
	cc := cacheControl(opts)

	if MatchesValidator(req.ETag, tag) {
		return &Response{Status: http.StatusNotModified, ETag: tag, CacheControl: cc}, nil
	}

	body, err := json.Marshal(assemble(p, pg))
	if err != nil {
		return nil, &SerializationError{Page: req.Page, Err: err}
	}

	resp := &Response{Status: http.StatusOK, Body: body, ETag: tag}
	// Only a complete page fetched through its numbered URL is safe for
	// shared caches; the head view changes as entries arrive.
	if pg.Complete && !req.Head {
		resp.CacheControl = cc
	}
	return resp, nil
}

func cacheControl(opts Options) string {
	maxAge := opts.CacheMaxAge
	if maxAge <= 0 {
		maxAge = DefaultCacheMaxAge
	}
	return fmt.Sprintf("max-age=%d", int64(maxAge.Seconds()))
}
