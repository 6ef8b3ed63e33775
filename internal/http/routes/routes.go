// Package routes maps the transport-free feed engine onto HTTP.
package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/hlog"

	"github.com/fisheke/atomium/internal/feed"
	"github.com/fisheke/atomium/internal/jobs"
)

// FeedSource is what the HTTP layer needs from the feed side.
type FeedSource interface {
	GetFeed(ctx context.Context, req feed.Request) (*feed.Response, error)
	Append(ctx context.Context, kind string, payload json.RawMessage, recordedAt time.Time) (uuid.UUID, error)
	PageSize() int
}

// Enqueuer is the slice of the asynq client used after ingest.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Server struct {
	Router *chi.Mux
	Source FeedSource
	Queue  Enqueuer // optional; nil skips the post-ingest sync trigger
}

type ServerOptions struct {
	Source FeedSource
	Queue  Enqueuer
}

func New(opts ServerOptions) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	s := &Server{Router: r, Source: opts.Source, Queue: opts.Queue}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("ok")); err != nil {
			hlog.FromRequest(r).Error().Err(err).Msg("write health check response")
		}
	})

	r.Get("/", s.handleHead)
	r.Get("/{page}/{size}", s.handlePage)
	r.Post("/events", s.handleIngest)

	return s
}

// handleHead serves the "current" view: page 0, which intermediaries must
// never cache.
func (s *Server) handleHead(w http.ResponseWriter, r *http.Request) {
	s.serveFeed(w, r, 0, true)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.ParseInt(chi.URLParam(r, "page"), 10, 64)
	if err != nil || page < 0 {
		http.Error(w, "invalid page number", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(chi.URLParam(r, "size"))
	if err != nil {
		http.Error(w, "invalid page size", http.StatusBadRequest)
		return
	}
	// Page coordinates only exist for the configured page size.
	if size != s.Source.PageSize() {
		http.NotFound(w, r)
		return
	}

	s.serveFeed(w, r, page, false)
}

func (s *Server) serveFeed(w http.ResponseWriter, r *http.Request, page int64, head bool) {
	req := feed.Request{
		Page: page,
		ETag: r.Header.Get("If-None-Match"),
		Head: head,
	}

	resp, err := s.Source.GetFeed(r.Context(), req)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Int64("page", page).Msg("get feed failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if resp.ETag != "" {
		w.Header().Set("ETag", `"`+resp.ETag+`"`)
	}
	if resp.CacheControl != "" {
		w.Header().Set("Cache-Control", resp.CacheControl)
	}

	switch resp.Status {
	case http.StatusNotFound:
		http.Error(w, resp.Message, http.StatusNotFound)
	case http.StatusNotModified:
		w.WriteHeader(http.StatusNotModified)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(resp.Body); err != nil {
			hlog.FromRequest(r).Error().Err(err).Int64("page", page).Msg("write feed body")
		}
	}
}

type ingestRequest struct {
	Kind       string          `json:"kind"`
	Payload    json.RawMessage `json:"payload"`
	RecordedAt *time.Time      `json:"recorded_at"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var in ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if in.Kind == "" {
		http.Error(w, "kind required", http.StatusBadRequest)
		return
	}

	recordedAt := time.Now().UTC()
	if in.RecordedAt != nil {
		recordedAt = in.RecordedAt.UTC()
	}

	id, err := s.Source.Append(r.Context(), in.Kind, in.Payload, recordedAt)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("kind", in.Kind).Msg("append event failed")
		http.Error(w, "could not store event", http.StatusInternalServerError)
		return
	}

	s.enqueueSync(r)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(map[string]string{"id": "urn:uuid:" + id.String()}); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("write ingest response")
	}
}

// enqueueSync asks the worker to sequence the new event. Best effort: the
// periodic schedule picks it up anyway if the queue is down.
func (s *Server) enqueueSync(r *http.Request) {
	if s.Queue == nil {
		return
	}
	payload, _ := json.Marshal(jobs.SyncFeedPayload{Reason: "ingest"})
	task := asynq.NewTask(jobs.TaskSyncFeed, payload)

	info, err := s.Queue.Enqueue(task,
		asynq.Queue("sync"),
		asynq.MaxRetry(3),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("enqueue sync task")
		return
	}
	hlog.FromRequest(r).Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("enqueued sync task")
}
