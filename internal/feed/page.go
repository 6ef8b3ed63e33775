package feed

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrPageNotFound marks a page number beyond the available history.
var ErrPageNotFound = errors.New("feed page not found")

// Page is one fetched feed page. Updated always reflects the lead entry of
// the raw batch; when the page is complete that entry is the lookahead and
// is not part of Entries.
type Page[E any] struct {
	Number   int64
	Entries  []E
	Complete bool
	Updated  time.Time
}

// fetchPage retrieves one page from the provider and trims the lookahead.
// A complete page shows exactly PageSize entries; the lookahead entry at
// the head of the batch belongs to the next-newer page and only anchors
// Updated. The batch is never mutated: the trimmed page is a fresh copy.
func fetchPage[E, T any](ctx context.Context, p Provider[E, T], page int64) (Page[E], error) {
	batch, err := p.EntriesForPage(ctx, page)
	if err != nil {
		return Page[E]{}, err
	}
	if len(batch) == 0 {
		return Page[E]{}, fmt.Errorf("%w: page %d", ErrPageNotFound, page)
	}

	pg := Page[E]{
		Number:   page,
		Complete: len(batch) > p.PageSize(),
		Updated:  p.TimestampFor(batch[0]),
	}

	content := batch
	if pg.Complete {
		content = make([]E, len(batch)-1)
		copy(content, batch[1:])
	}
	pg.Entries = content

	return pg, nil
}
