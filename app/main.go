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

	"github.com/lysyi3m/day-reel/app/api"
	"github.com/lysyi3m/day-reel/app/browser"
	"github.com/lysyi3m/day-reel/app/cfg"
	"github.com/lysyi3m/day-reel/app/content"
	"github.com/lysyi3m/day-reel/app/source"
	"github.com/lysyi3m/day-reel/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting Day Reel", "version", appCfg.Version)

	configCache := source.NewConfigCache(appCfg.FeedsDir)
	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load feed configurations", "feeds_dir", appCfg.FeedsDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Feed configurations loaded", "count", configCache.GetConfigCount())

	fallback := loadFallback(appCfg.FallbackFile)

	httpClient := &http.Client{
		Timeout: 2 * time.Minute,
	}

	adapter := source.NewAdapterFromConfig(appCfg.SourceURL, appCfg.GetFetchTimeout(), configCache,
		fallback, httpClient, appCfg.UserAgent)
	if appCfg.SourceURL == "" {
		slog.Warn("SOURCE_URL not set, spreadsheet source disabled")
	}

	state := browser.NewState()

	scheduler := tasks.NewScheduler(state, adapter, appCfg.GetRefreshInterval(), appCfg.WorkerCount)
	taskTimeout := max(tasks.DefaultTaskTimeout, adapter.Budget()+30*time.Second)
	scheduler.SetTaskTimeout(taskTimeout)
	scheduler.Start()
	slog.Info("Scheduler started",
		"interval", appCfg.GetRefreshInterval().String(),
		"workers", appCfg.WorkerCount,
		"task_timeout", taskTimeout.String())

	handler := api.NewHandler(state, scheduler, appCfg.ManualRefreshPerMinute, appCfg.Version)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	scheduler.Stop()

	slog.Info("Day Reel shutdown complete")
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

func loadFallback(path string) content.Sequence {
	if path == "" {
		return source.DefaultFallback()
	}

	seq, err := source.LoadFallback(path)
	if err != nil {
		slog.Warn("Failed to load fallback file, using built-in list", "file", path, "error", err)
		return source.DefaultFallback()
	}

	slog.Info("Fallback collections loaded", "file", path, "days", len(seq))
	return seq
}
