package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/TheCodingCrusade/learning-companion/internal/config"
	"github.com/TheCodingCrusade/learning-companion/internal/logger"
	"github.com/TheCodingCrusade/learning-companion/internal/media"
)

var (
	// ErrNotFound reports a missing input video path.
	ErrNotFound = errors.New("video file not found")
	// ErrInference reports a failed recognition call; fatal to the job.
	ErrInference = errors.New("speech recognition failed")
)

// User-visible failure messages. Internal detail stays in the log.
const (
	errMsgNotFound = "File not found on server."
	errMsgGeneric  = "An unexpected error occurred during transcription."
)

const promptTailChars = 50

// Pipeline owns one transcription flow end to end: extract audio, chunk it,
// transcribe chunk by chunk with carried context, assemble paragraphs, and
// clean up every temporary artifact no matter how the job ends.
type Pipeline struct {
	recognizer       Recognizer
	logger           logger.Logger
	chunkSeconds     int
	paragraphSeconds float64

	// stage functions, swappable in tests
	extract func(ctx context.Context, videoPath string) (string, error)
	decode  func(path string) (*media.Waveform, error)
}

func NewPipeline(cfg *config.Config, extractor *media.Extractor, rec Recognizer, log logger.Logger) *Pipeline {
	return &Pipeline{
		recognizer:       rec,
		logger:           log,
		chunkSeconds:     cfg.Pipeline.ChunkSeconds,
		paragraphSeconds: cfg.Pipeline.ParagraphSeconds,
		extract:          extractor.ExtractAudio,
		decode:           media.DecodeWAV,
	}
}

// job carries the per-job rolling state threaded through the chunk loop.
// Each concurrent job gets its own instance; nothing here is shared.
type job struct {
	cumulative float64 // seconds of audio already accounted for
	prompt     string  // trailing text of the previous chunk
	transcript strings.Builder
}

// Run executes the full pipeline for one uploaded video and reports the
// outcome through sink: zero or more progress updates, then exactly one
// Completed or Error. The uploaded video and the intermediate audio file
// are removed on every exit path.
func (p *Pipeline) Run(ctx context.Context, videoPath string, sink Sink) {
	p.logger.Info(ctx, "Starting transcription job: %s", videoPath)

	var audioPath string
	defer func() {
		p.removeIfPresent(ctx, audioPath)
		p.removeIfPresent(ctx, videoPath)
	}()

	transcript, err := p.run(ctx, videoPath, &audioPath, sink)
	if err != nil {
		p.logger.Error(ctx, "Transcription job failed: %v", err)
		if errors.Is(err, ErrNotFound) {
			sink.Error(errMsgNotFound)
		} else {
			sink.Error(errMsgGeneric)
		}
		return
	}

	p.logger.Info(ctx, "Transcription job completed: %s", videoPath)
	sink.Completed(strings.TrimSpace(transcript))
}

func (p *Pipeline) run(ctx context.Context, videoPath string, audioPath *string, sink Sink) (string, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, videoPath)
	}

	path, err := p.extract(ctx, videoPath)
	if err != nil {
		return "", err
	}
	*audioPath = path

	waveform, err := p.decode(path)
	if err != nil {
		return "", fmt.Errorf("decode audio: %w", err)
	}

	chunks := media.Split(waveform, p.chunkSeconds)
	p.logger.Info(ctx, "Audio split into %d chunks of %ds", len(chunks), p.chunkSeconds)

	return p.transcribeChunks(ctx, chunks, sink)
}

func (p *Pipeline) transcribeChunks(ctx context.Context, chunks []media.Chunk, sink Sink) (string, error) {
	st := &job{}
	total := len(chunks)
	start := time.Now()

	for i, chunk := range chunks {
		segments, err := p.recognizer.Recognize(ctx, chunk, st.prompt)
		if err != nil {
			return "", fmt.Errorf("%w: chunk %d/%d: %v", ErrInference, i+1, total, err)
		}

		processed := i + 1
		elapsed := time.Since(start).Seconds()
		// processed is at least 1, so the first chunk's ETA is simply
		// elapsed time scaled by the remaining count.
		eta := int(elapsed / float64(processed) * float64(total-processed))
		sink.ProgressUpdate(
			fmt.Sprintf("Transcribing chunk %d/%d", processed, total),
			100*processed/total,
			fmt.Sprintf("%ds remaining", eta),
		)

		if len(segments) == 0 {
			p.logger.Debug(ctx, "Chunk %d/%d yielded no segments, skipping", processed, total)
			st.cumulative += chunk.Duration()
			continue
		}

		st.prompt = promptTail(chunkText(segments), promptTailChars)

		paragraphs := Combine(segments, p.paragraphSeconds)
		st.transcript.WriteString(Render(paragraphs, st.cumulative))
		st.cumulative += chunk.Duration()
	}

	return st.transcript.String(), nil
}

func (p *Pipeline) removeIfPresent(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			p.logger.Warn(ctx, "Failed to remove temp file %s: %v", path, err)
		}
		return
	}
	p.logger.Debug(ctx, "Removed temp file: %s", path)
}

func chunkText(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// promptTail returns the last n characters of text, rune-safe.
func promptTail(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[len(runes)-n:])
}
