package media

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/TheCodingCrusade/learning-companion/internal/logger"
	"github.com/TheCodingCrusade/learning-companion/pkg/executor"
)

// ErrExtraction reports a failed audio decode of the source video.
var ErrExtraction = errors.New("audio extraction failed")

type Extractor struct {
	executor executor.Executor
	logger   logger.Logger
}

func NewExtractor(exec executor.Executor, log logger.Logger) *Extractor {
	return &Extractor{
		executor: exec,
		logger:   log,
	}
}

// ExtractAudio converts a video file into a normalized mono 16kHz 16-bit PCM
// WAV written to a fresh temp file. The caller owns deletion of the returned
// path. FFmpeg's diagnostics stay out of the log stream; they surface only
// inside the wrapped error.
func (e *Extractor) ExtractAudio(ctx context.Context, videoPath string) (string, error) {
	tmp, err := os.CreateTemp("", "lecture-audio-*.wav")
	if err != nil {
		return "", fmt.Errorf("%w: create temp file: %v", ErrExtraction, err)
	}
	audioPath := tmp.Name()
	tmp.Close()

	e.logger.Info(ctx, "Extracting audio: %s -> %s", videoPath, audioPath)

	// -vn: drop video, -ar 16000 -ac 1: 16kHz mono, pcm_s16le: uncompressed
	// 16-bit PCM. This is the input format the recognizer expects.
	args := []string{
		"-y",
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		audioPath,
	}

	if _, err := e.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		os.Remove(audioPath)
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	e.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
	return audioPath, nil
}
