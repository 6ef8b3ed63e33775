// cmd/worker/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fisheke/atomium/internal/config"
	"github.com/fisheke/atomium/internal/events"
	"github.com/fisheke/atomium/internal/feed"
	"github.com/fisheke/atomium/internal/jobs"
	"github.com/fisheke/atomium/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("unable to connect to database:", err)
	}
	defer pool.Close()

	st := store.New(pool)
	if err := st.Migrate(context.Background()); err != nil {
		log.Fatalf("migrate error: %v", err)
	}

	source := events.New(st, events.Metadata{
		Name:            cfg.Feed.Name,
		URL:             cfg.Feed.URL,
		ProviderName:    cfg.Feed.ProviderName,
		ProviderVersion: cfg.Feed.ProviderVersion,
	}, cfg.Feed.PageSize, feed.Options{CacheMaxAge: cfg.Feed.CacheMaxAge})

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, asynq.Config{
		Concurrency: 4,
		Queues: map[string]int{
			"sync":    10, // higher priority
			"default": 5,
		},
	})
	mux := asynq.NewServeMux()

	mux.HandleFunc(jobs.TaskSyncFeed, func(ctx context.Context, t *asynq.Task) error {
		var p jobs.SyncFeedPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Printf("[asynq] bad payload: %v", err)
			return err
		}
		start := time.Now()
		n, err := source.Sync(ctx)
		if err != nil {
			log.Printf("[sync] failed reason=%s duration=%v: %v", p.Reason, time.Since(start), err)
			return err // allow retry
		}
		log.Printf("[sync] done reason=%s sequenced=%d duration=%v", p.Reason, n, time.Since(start))
		return nil
	})

	// Periodic sync keeps the feed moving even when no ingest triggers fire.
	scheduler := asynq.NewScheduler(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, nil)
	payload, _ := json.Marshal(jobs.SyncFeedPayload{Reason: "interval"})
	if _, err := scheduler.Register(
		fmt.Sprintf("@every %s", cfg.Feed.SyncEvery),
		asynq.NewTask(jobs.TaskSyncFeed, payload),
		asynq.Queue("sync"),
	); err != nil {
		log.Fatalf("register sync schedule: %v", err)
	}

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Fatalf("scheduler error: %v", err)
		}
	}()

	log.Printf("worker starting, sync every %s", cfg.Feed.SyncEvery)
	if err := srv.Run(mux); err != nil {
		log.Fatalf("worker error: %v", err)
	}
}
