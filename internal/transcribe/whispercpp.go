package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/TheCodingCrusade/learning-companion/internal/config"
	"github.com/TheCodingCrusade/learning-companion/internal/logger"
	"github.com/TheCodingCrusade/learning-companion/internal/media"
	"github.com/TheCodingCrusade/learning-companion/pkg/executor"
)

type whisperCPP struct {
	binaryPath string
	modelPath  string
	language   string
	threads    int
	executor   executor.Executor
	logger     logger.Logger
}

// NewWhisperCPP returns a Recognizer backed by the whisper.cpp CLI. The
// binary keeps the model on disk, so the handle itself is stateless and
// shareable across concurrent jobs.
func NewWhisperCPP(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) Recognizer {
	return &whisperCPP{
		binaryPath: cfg.BinaryPath,
		modelPath:  cfg.ModelPath,
		language:   cfg.Language,
		threads:    cfg.Threads,
		executor:   exec,
		logger:     log,
	}
}

// whisperOutput mirrors the JSON whisper.cpp emits with -oj.
type whisperOutput struct {
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"` // ms
			To   int64 `json:"to"`   // ms
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

func (w *whisperCPP) Recognize(ctx context.Context, chunk media.Chunk, prompt string) ([]Segment, error) {
	tmp, err := os.CreateTemp("", "lecture-chunk-*.wav")
	if err != nil {
		return nil, fmt.Errorf("create chunk file: %w", err)
	}
	chunkPath := tmp.Name()
	tmp.Close()
	defer os.Remove(chunkPath)

	if err := media.WriteWAV(chunkPath, chunk.Samples, chunk.SampleRate); err != nil {
		return nil, fmt.Errorf("write chunk file: %w", err)
	}

	outputPrefix := strings.TrimSuffix(chunkPath, ".wav")
	jsonPath := outputPrefix + ".json"
	defer os.Remove(jsonPath)

	args := []string{
		"-m", w.modelPath,
		"-f", chunkPath,
		"-l", w.language,
		"-t", strconv.Itoa(w.threads),
		"-oj",
		"-np",
		"--output-file", outputPrefix,
	}
	if prompt != "" {
		args = append(args, "--prompt", prompt)
	}

	if _, err := w.executor.Execute(ctx, w.binaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper recognize: %w", err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	var parsed whisperOutput
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	segments := make([]Segment, 0, len(parsed.Transcription))
	for _, s := range parsed.Transcription {
		if strings.TrimSpace(s.Text) == "" {
			continue
		}
		segments = append(segments, Segment{
			Start: float64(s.Offsets.From) / 1000,
			End:   float64(s.Offsets.To) / 1000,
			Text:  s.Text,
		})
	}

	return segments, nil
}
