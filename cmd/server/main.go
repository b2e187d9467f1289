// Command server runs the recshelf HTTP API.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recshelf/internal/bootstrap"
	"recshelf/internal/config"
	"recshelf/internal/middleware"
	"recshelf/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		middleware.Logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	middleware.InitLogger(cfg.Env, os.Stdout)

	ctx := context.Background()
	rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{SeedFictionTypes: cfg.SeedFictionTypes})
	if err != nil {
		middleware.Logger.Error("failed to initialize runtime", "error", err)
		os.Exit(1)
	}

	srv, err := server.NewServerWithDeps(cfg, rt.DB, rt.Redis)
	if err != nil {
		_ = rt.Close(ctx)
		middleware.Logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		middleware.Logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			middleware.Logger.Error("server shutdown error", "error", err)
		}
		if err := rt.FlushTracing(ctx); err != nil {
			middleware.Logger.Error("tracing shutdown error", "error", err)
		}
	}()

	if err := srv.Start(); err != nil {
		middleware.Logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
