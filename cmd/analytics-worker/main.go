package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/soleterra-wellness/sw-booking/config"
	"github.com/soleterra-wellness/sw-booking/internal/module/analytics"
)

func main() {
	cfg := config.Get()

	log := setupLogger(cfg.Application.Debug)

	log.Info("starting analytics worker", slog.String("environment", cfg.Application.Environment))

	promAddr := fmt.Sprintf(":%d", cfg.Worker.PrometheusPort)
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		log.Info("starting prometheus metrics server", slog.String("address", promAddr))
		if err := http.ListenAndServe(promAddr, nil); err != nil {
			log.Error("failed to start prometheus metrics server", slog.Any("error", err))
		}
	}()

	worker, err := analytics.NewWorker(cfg, log)
	if err != nil {
		log.Error("failed to initialize worker", slog.Any("error", err))
		os.Exit(1)
	}

	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()

	errChan := make(chan error, 1)
	go func() {
		errChan <- worker.Run(runCtx)
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-done:
		log.Info("stopping worker")
	case err := <-errChan:
		log.Error("worker crashed", slog.Any("error", err))
		os.Exit(1)
	}

	cancelRun()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := worker.Shutdown(ctx); err != nil {
		log.Error("failed to stop worker", slog.Any("error", err))
	}
}

func setupLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
