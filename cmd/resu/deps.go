package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jonathan/resu/internal/config"
	"github.com/jonathan/resu/internal/db"
	"github.com/jonathan/resu/internal/llm"
	"github.com/jonathan/resu/internal/observability"
	"github.com/jonathan/resu/internal/pipeline"
	"github.com/jonathan/resu/internal/profile"
)

// openStore connects to PostgreSQL when a URL is configured, else uses memory
func openStore(ctx context.Context, c *config.Config, log *zap.Logger) (db.ResumeStore, error) {
	if c.Database.URL == "" {
		log.Warn("no database configured; résumés are kept in memory and lost on exit")
		return db.NewMemoryStore(), nil
	}

	database, err := db.Connect(ctx, c.Database.URL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// openLease returns a Redis lease shared across instances, or a process-local one
func openLease(ctx context.Context, c *config.Config, log *zap.Logger) (pipeline.Lease, func(), error) {
	if c.Redis.URL == "" {
		return pipeline.NewLocalLease(), func() {}, nil
	}

	opts, err := redis.ParseURL(c.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	lease := pipeline.NewRedisLease(client, c.Redis.LeaseKey, c.Redis.LeaseTTL, log)
	return lease, func() { _ = client.Close() }, nil
}

// services bundles what a pipeline run needs; Close releases all of it
type services struct {
	Orchestrator *pipeline.Orchestrator
	Store        db.ResumeStore
	Profile      *profile.FileSource
	Metrics      *observability.Metrics

	closers []func()
}

func (r *services) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

// newServices wires the completion client, store, lease and orchestrator
func newServices(ctx context.Context, c *config.Config, log *zap.Logger) (*services, error) {
	if err := c.RequireAPIKey(); err != nil {
		return nil, err
	}

	rt := &services{
		Profile: profile.NewFileSource(c.Profile.Path),
		Metrics: observability.NewMetrics(),
	}
	if _, err := rt.Profile.Profile(ctx); err != nil {
		return nil, err
	}

	client, err := llm.NewClient(ctx, c.LLMConfig(), c.LLM.APIKey)
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, func() { _ = client.Close() })

	store, err := openStore(ctx, c, log)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.Store = store
	rt.closers = append(rt.closers, store.Close)

	lease, closeLease, err := openLease(ctx, c, log)
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.closers = append(rt.closers, closeLease)

	rt.Orchestrator, err = pipeline.New(pipeline.Options{
		Client:      client,
		Profile:     rt.Profile,
		Store:       store,
		Lease:       lease,
		Logger:      log,
		Metrics:     rt.Metrics,
		StepTimeout: c.Pipeline.StepTimeout,
	})
	if err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}
