// cmd/api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/fisheke/atomium/internal/config"
	"github.com/fisheke/atomium/internal/events"
	"github.com/fisheke/atomium/internal/feed"
	"github.com/fisheke/atomium/internal/http/routes"
	"github.com/fisheke/atomium/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log.Printf("starting feed api on :%s", cfg.Port)

	// DB
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pool.Close()

	st := store.New(pool)
	if err := st.Migrate(context.Background()); err != nil {
		log.Fatalf("migrate error: %v", err)
	}

	// Feed source
	source := events.New(st, events.Metadata{
		Name:            cfg.Feed.Name,
		URL:             cfg.Feed.URL,
		ProviderName:    cfg.Feed.ProviderName,
		ProviderVersion: cfg.Feed.ProviderVersion,
	}, cfg.Feed.PageSize, feed.Options{CacheMaxAge: cfg.Feed.CacheMaxAge})

	// Sync queue
	queue := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := queue.Close(); err != nil {
			log.Printf("close asynq client: %v", err)
		}
	}()

	// Router / server
	s := routes.New(routes.ServerOptions{Source: source, Queue: queue})
	h := hlog.NewHandler(logger)(s.Router)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: h}
	log.Fatal(srv.ListenAndServe())
}
