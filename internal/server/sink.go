package server

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/TheCodingCrusade/learning-companion/internal/logger"
	"github.com/TheCodingCrusade/learning-companion/internal/transcribe"
)

const writeTimeout = 5 * time.Second

type envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// socketSink delivers job notifications over one WebSocket connection.
// Writes are serialized with a mutex because a job goroutine and the read
// loop share the connection. Delivery is best-effort: a dead or slow peer
// just loses events, the job is never held up.
type socketSink struct {
	mu     sync.Mutex
	conn   *websocket.Conn
	logger logger.Logger
}

func newSocketSink(conn *websocket.Conn, log logger.Logger) transcribe.Sink {
	return &socketSink{conn: conn, logger: log}
}

func (s *socketSink) emit(event string, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteJSON(envelope{Event: event, Data: data}); err != nil {
		s.logger.Debug(context.Background(), "Dropped %s event: %v", event, err)
	}
}

func (s *socketSink) ProgressUpdate(status string, progress int, eta string) {
	s.emit("progress_update", map[string]any{
		"status":   status,
		"progress": progress,
		"eta":      eta,
	})
}

func (s *socketSink) Completed(transcript string) {
	s.emit("transcription_complete", map[string]any{"transcript": transcript})
}

func (s *socketSink) Error(message string) {
	s.emit("transcription_error", map[string]any{"error": message})
}
