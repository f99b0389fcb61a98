package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/TheCodingCrusade/learning-companion/internal/logger"
)

var videoExtensions = []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v"}

type implWatcher struct {
	watchDir      string
	handler       Handler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// New creates a Watcher that hands each new recording in watchDir to
// handler, with at most maxConcurrent jobs in flight.
func New(watchDir string, handler Handler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fsw.Add(watchDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	return &implWatcher{
		watchDir:      watchDir,
		handler:       handler,
		logger:        log,
		watcher:       fsw,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
	}, nil
}

// Start blocks until ctx is cancelled, dispatching a job per new recording.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching for lecture recordings in %s (max concurrent: %d)", w.watchDir, w.maxConcurrent)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for in-flight transcriptions to finish...")
			w.wg.Wait()
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isVideoFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-video file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New recording detected: %s", event.Name)

			// Give the writer a moment to finish the file.
			time.Sleep(500 * time.Millisecond)

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(videoPath string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()
					w.handler(ctx, videoPath)
				}(event.Name)
			case <-ctx.Done():
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isVideoFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, v := range videoExtensions {
		if ext == v {
			return true
		}
	}
	return false
}
