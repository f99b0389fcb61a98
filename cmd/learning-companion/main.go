package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/TheCodingCrusade/learning-companion/internal/config"
	"github.com/TheCodingCrusade/learning-companion/internal/logger"
	"github.com/TheCodingCrusade/learning-companion/internal/media"
	"github.com/TheCodingCrusade/learning-companion/internal/server"
	"github.com/TheCodingCrusade/learning-companion/internal/summary"
	"github.com/TheCodingCrusade/learning-companion/internal/transcribe"
	"github.com/TheCodingCrusade/learning-companion/internal/watcher"
	"github.com/TheCodingCrusade/learning-companion/pkg/executor"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Learning Companion")
	log.Info(ctx, "========================================")

	if err := os.MkdirAll(cfg.Paths.Uploads, 0755); err != nil {
		log.Error(ctx, "Failed to create uploads directory: %v", err)
		os.Exit(1)
	}

	// Shared process-wide handles: one executor, one recognizer, one
	// Gemini generator. All are read-only after this point and reused by
	// every job.
	exec := executor.New()
	extractor := media.NewExtractor(exec, log)
	recognizer := transcribe.NewWhisperCPP(cfg.Whisper, exec, log)
	pipeline := transcribe.NewPipeline(cfg, extractor, recognizer, log)
	generator := summary.NewGeminiGenerator(cfg.Gemini.Model, log)
	summaries := summary.NewService(generator, log)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: server.New(cfg, pipeline, summaries, log).Handler(),
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errChan := make(chan error, 2)

	go func() {
		log.Info(ctx, "HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Optional headless ingestion: recordings dropped into the watch
	// directory are transcribed to text files in the output directory.
	if cfg.Paths.Watch != "" {
		if err := startWatcher(ctx, cfg, pipeline, log, errChan); err != nil {
			log.Error(ctx, "Failed to start watcher: %v", err)
			os.Exit(1)
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Fatal error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn(ctx, "Server shutdown: %v", err)
	}

	log.Info(ctx, "Learning Companion stopped")
}

func startWatcher(ctx context.Context, cfg *config.Config, pipeline *transcribe.Pipeline, log logger.Logger, errChan chan<- error) error {
	for _, dir := range []string{cfg.Paths.Watch, cfg.Paths.Output} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	handler := func(ctx context.Context, videoPath string) {
		base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
		outPath := filepath.Join(cfg.Paths.Output, base+"-transcript.txt")
		pipeline.Run(ctx, videoPath, transcribe.NewFileSink(outPath, log))
	}

	w, err := watcher.New(cfg.Paths.Watch, handler, log, cfg.Pipeline.MaxConcurrent)
	if err != nil {
		return err
	}

	go func() {
		defer w.Stop()
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	return nil
}
