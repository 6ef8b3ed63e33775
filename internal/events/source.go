// Package events adapts the Postgres event store to the feed engine and
// hosts the two isolated units of work: the read-only feed fetch and the
// read-write sync.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fisheke/atomium/internal/feed"
	"github.com/fisheke/atomium/internal/store"
)

// View is how one event appears inside a feed entry.
type View struct {
	Kind       string          `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// Metadata identifies the feed this source serves.
type Metadata struct {
	Name            string
	URL             string
	ProviderName    string
	ProviderVersion string
}

// Source serves the event feed from the store. It implements
// feed.Provider when bound to a transaction via withTx.
type Source struct {
	st       *store.Store
	db       store.DB // bound transaction; nil on the unbound source
	meta     Metadata
	pageSize int
	opts     feed.Options
}

func New(st *store.Store, meta Metadata, pageSize int, opts feed.Options) *Source {
	return &Source{st: st, meta: meta, pageSize: pageSize, opts: opts}
}

// withTx returns a copy of the source bound to one transaction, scoping
// all provider reads to that unit of work.
func (s *Source) withTx(tx pgx.Tx) *Source {
	bound := *s
	bound.db = tx
	return &bound
}

var _ feed.Provider[store.Event, View] = (*Source)(nil)

func (s *Source) EntriesForPage(ctx context.Context, page int64) ([]store.Event, error) {
	return s.st.EntriesForPage(ctx, s.db, page, s.pageSize)
}

func (s *Source) PageSize() int { return s.pageSize }

func (s *Source) TimestampFor(ev store.Event) time.Time { return ev.RecordedAt }

func (s *Source) URNFor(ev store.Event) string { return "urn:uuid:" + ev.ID.String() }

func (s *Source) Representation(ev store.Event) View {
	return View{Kind: ev.Kind, Payload: ev.Payload, RecordedAt: ev.RecordedAt}
}

func (s *Source) FeedName() string        { return s.meta.Name }
func (s *Source) FeedURL() string         { return s.meta.URL }
func (s *Source) ProviderName() string    { return s.meta.ProviderName }
func (s *Source) ProviderVersion() string { return s.meta.ProviderVersion }

// GetFeed runs one feed request inside its own read-only transaction.
func (s *Source) GetFeed(ctx context.Context, req feed.Request) (*feed.Response, error) {
	var resp *feed.Response
	err := s.st.InReadTx(ctx, func(tx pgx.Tx) error {
		var err error
		resp, err = feed.Get[store.Event, View](ctx, s.withTx(tx), req, s.opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Append records a new event. The event stays invisible to feed readers
// until Sync assigns it a sequence number.
func (s *Source) Append(ctx context.Context, kind string, payload json.RawMessage, recordedAt time.Time) (uuid.UUID, error) {
	ev := store.Event{
		ID:         uuid.New(),
		Kind:       kind,
		Payload:    payload,
		RecordedAt: recordedAt,
	}
	err := s.st.InTx(ctx, func(tx pgx.Tx) error {
		return s.st.InsertEvent(ctx, tx, ev)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return ev.ID, nil
}

// Sync numbers pending events in its own read-write transaction,
// decoupled from any in-flight reads.
func (s *Source) Sync(ctx context.Context) (int64, error) {
	var n int64
	err := s.st.InTx(ctx, func(tx pgx.Tx) error {
		var err error
		n, err = s.st.AssignSeq(ctx, tx)
		return err
	})
	return n, err
}
