package transcribe

import (
	"context"
	"os"

	"github.com/TheCodingCrusade/learning-companion/internal/logger"
)

// Sink receives job notifications. Delivery is fire-and-forget: the job
// never blocks on or retries a notification, and keeps running if the
// receiver has gone away. A job ends with exactly one Completed or Error.
type Sink interface {
	ProgressUpdate(status string, progress int, eta string)
	Completed(transcript string)
	Error(message string)
}

// logSink reports progress to the log only; used by watch-mode ingestion.
type logSink struct {
	logger logger.Logger
}

func NewLogSink(log logger.Logger) Sink {
	return &logSink{logger: log}
}

func (s *logSink) ProgressUpdate(status string, progress int, eta string) {
	s.logger.Info(context.Background(), "%s (%d%%, %s)", status, progress, eta)
}

func (s *logSink) Completed(transcript string) {
	s.logger.Info(context.Background(), "Transcription completed (%d chars)", len(transcript))
}

func (s *logSink) Error(message string) {
	s.logger.Error(context.Background(), "Transcription failed: %s", message)
}

// fileSink logs progress and writes the finished transcript to a file.
type fileSink struct {
	logSink
	path string
}

// NewFileSink returns a Sink that writes the final transcript to path.
func NewFileSink(path string, log logger.Logger) Sink {
	return &fileSink{logSink: logSink{logger: log}, path: path}
}

func (s *fileSink) Completed(transcript string) {
	if err := os.WriteFile(s.path, []byte(transcript), 0644); err != nil {
		s.logger.Error(context.Background(), "Failed to write transcript %s: %v", s.path, err)
		return
	}
	s.logger.Info(context.Background(), "Transcript written: %s", s.path)
}
