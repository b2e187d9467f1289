// Package bootstrap wires the process-wide dependencies shared by the
// server and the command line tools.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"recshelf/internal/cache"
	"recshelf/internal/config"
	"recshelf/internal/database"
	"recshelf/internal/middleware"
	"recshelf/internal/observability"
	"recshelf/internal/repository"
	"recshelf/internal/seed"
	"recshelf/internal/service"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedFictionTypes bool
}

// Runtime holds the initialized dependencies.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client

	shutdownTracing func(context.Context) error
}

// InitRuntime starts tracing, connects to the database and Redis and
// optionally ensures the built-in fiction types. Redis is optional; an
// unreachable server leaves Redis nil.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*Runtime, error) {
	shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName:  observability.ServiceName,
		Environment:  cfg.Env,
		Enabled:      cfg.TracingEnabled,
		Exporter:     cfg.TracingExporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		SamplerRatio: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		_ = shutdown(ctx)
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	rt := &Runtime{
		DB:              db,
		Redis:           cache.InitRedis(ctx, cfg.RedisURL),
		shutdownTracing: shutdown,
	}

	if opts.SeedFictionTypes {
		if err := EnsureFictionTypes(ctx, db); err != nil {
			_ = rt.Close(ctx)
			return nil, err
		}
	}
	return rt, nil
}

// EnsureFictionTypes inserts the built-in fiction types that are missing.
func EnsureFictionTypes(ctx context.Context, db *gorm.DB) error {
	catalog := service.NewCatalogService(repository.NewFictionTypeRepository(db), repository.NewTagRepository(db))
	created, err := catalog.EnsureFictionTypes(ctx, seed.FictionTypes())
	if err != nil {
		return fmt.Errorf("failed to seed fiction types: %w", err)
	}
	if created > 0 {
		middleware.Logger.InfoContext(ctx, "fiction types seeded", "created", created)
	}
	return nil
}

// FlushTracing exports pending spans and stops the tracer provider.
func (r *Runtime) FlushTracing(ctx context.Context) error {
	if r.shutdownTracing == nil {
		return nil
	}
	return r.shutdownTracing(ctx)
}

// Close releases everything InitRuntime opened. A server that took over the
// database and Redis clients closes those itself and only needs FlushTracing.
func (r *Runtime) Close(ctx context.Context) error {
	var errs []error
	if sqlDB, err := r.DB.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	}
	if r.Redis != nil {
		errs = append(errs, r.Redis.Close())
	}
	errs = append(errs, r.FlushTracing(ctx))
	return errors.Join(errs...)
}
