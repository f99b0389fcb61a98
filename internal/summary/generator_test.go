package summary

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/TheCodingCrusade/learning-companion/internal/logger"
)

func TestGenerateMissingCredential(t *testing.T) {
	g := NewGeminiGenerator("gemini-2.5-flash", logger.NewWithWriter("error", io.Discard)).(*geminiGenerator)
	g.lookupKey = func() string { return "" }

	_, err := g.Generate(context.Background(), "transcript", "slides")
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("error = %v, want ErrGeneration", err)
	}
}

func TestBuildPromptStructure(t *testing.T) {
	prompt := buildPrompt("THE TRANSCRIPT", "THE SLIDES")

	sections := []string{
		"expert academic assistant",
		"--- LECTURE SLIDES CONTENT ---",
		"THE SLIDES",
		"--- VIDEO TRANSCRIPT ---",
		"THE TRANSCRIPT",
		"--- SUMMARY ---",
	}

	last := -1
	for _, sec := range sections {
		idx := strings.Index(prompt, sec)
		if idx < 0 {
			t.Fatalf("prompt missing section %q", sec)
		}
		if idx < last {
			t.Errorf("section %q out of order", sec)
		}
		last = idx
	}
}
