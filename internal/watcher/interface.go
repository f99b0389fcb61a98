package watcher

import "context"

// Watcher monitors a drop directory for new lecture recordings.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// Handler processes one detected recording.
type Handler func(ctx context.Context, videoPath string)
