package summary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TheCodingCrusade/learning-companion/internal/logger"
)

// ContentType is the MIME type of the rendered document artifact.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const defaultBaseName = "lecture"

// Result is the finished summary artifact: a docx file on disk plus the
// suggested download filename. The caller owns deletion of DocumentPath.
type Result struct {
	DocumentPath string
	Filename     string
}

// Service owns the summary pipeline: slide text extraction, generation,
// document rendering, and disposal of the staged slide deck.
type Service struct {
	generator Generator
	logger    logger.Logger

	// stage functions, swappable in tests
	extractSlides func(path string) (string, error)
	render        func(markdown, outputPath string) error
}

func NewService(gen Generator, log logger.Logger) *Service {
	return &Service{
		generator:     gen,
		logger:        log,
		extractSlides: ExtractSlideText,
		render:        renderDocx,
	}
}

// Summarize runs extract -> generate -> render, short-circuiting on the
// first failure. The staged slide PDF is removed exactly once on every exit
// path; this pipeline only reads it, but owns its disposal.
func (s *Service) Summarize(ctx context.Context, transcript, slidesPath, baseName string) (Result, error) {
	defer s.removeIfPresent(ctx, slidesPath)

	s.logger.Info(ctx, "Starting summary job: slides=%s", slidesPath)

	slideText, err := s.extractSlides(slidesPath)
	if err != nil {
		return Result{}, fmt.Errorf("extract slide text: %w", err)
	}

	markdown, err := s.generator.Generate(ctx, transcript, slideText)
	if err != nil {
		return Result{}, fmt.Errorf("generate summary: %w", err)
	}

	tmp, err := os.CreateTemp("", "lecture-summary-*.docx")
	if err != nil {
		return Result{}, fmt.Errorf("%w: create output file: %v", ErrRender, err)
	}
	outputPath := tmp.Name()
	tmp.Close()

	if err := s.render(markdown, outputPath); err != nil {
		os.Remove(outputPath)
		return Result{}, fmt.Errorf("render document: %w", err)
	}

	filename := outputName(baseName)
	s.logger.Info(ctx, "Summary job completed: %s", filename)

	return Result{DocumentPath: outputPath, Filename: filename}, nil
}

// outputName derives `<base>-summary.docx` from a caller-supplied display
// filename, dropping its extension.
func outputName(baseName string) string {
	base := strings.TrimSuffix(filepath.Base(baseName), filepath.Ext(baseName))
	if base == "" || base == "." {
		base = defaultBaseName
	}
	return base + "-summary.docx"
}

func (s *Service) removeIfPresent(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn(ctx, "Failed to remove slide deck %s: %v", path, err)
		}
		return
	}
	s.logger.Debug(ctx, "Removed slide deck: %s", path)
}
