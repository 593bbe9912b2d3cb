// Command broker runs the bisect job broker HTTP service.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bisectbroker/internal/config"
	"bisectbroker/internal/httpapi"
	"bisectbroker/internal/jobstore"
	"bisectbroker/internal/ratelimit"
	"bisectbroker/internal/telemetry"
)

func main() {
	cfg := config.Load()
	logger := telemetry.NewLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	store := jobstore.New()
	limiter := ratelimit.NewTokenBucket(cfg.RateLimitCapacity, cfg.RateLimitRefill)
	server := httpapi.New(store, limiter, logger, cfg.MaxLogChunkBytes)

	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: server.Router(),
	}

	logger.WithField("port", cfg.HTTPPort).Info("broker listening")
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("listen failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("graceful shutdown failed")
	}
}
