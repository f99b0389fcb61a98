package summary

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	"github.com/TheCodingCrusade/learning-companion/internal/logger"
)

const apiKeyEnv = "GEMINI_API_KEY"

// Generator turns a transcript plus slide text into markdown.
type Generator interface {
	Generate(ctx context.Context, transcript, slideText string) (string, error)
}

type geminiGenerator struct {
	model  string
	logger logger.Logger

	lookupKey func() string
}

// NewGeminiGenerator creates the Gemini-backed Generator. The credential is
// read from the environment at generation time, not at boot, so a missing
// key fails summary jobs only.
func NewGeminiGenerator(model string, log logger.Logger) Generator {
	return &geminiGenerator{
		model:     model,
		logger:    log,
		lookupKey: func() string { return os.Getenv(apiKeyEnv) },
	}
}

func (g *geminiGenerator) Generate(ctx context.Context, transcript, slideText string) (string, error) {
	apiKey := g.lookupKey()
	if apiKey == "" {
		return "", fmt.Errorf("%w: %s is not set", ErrGeneration, apiKeyEnv)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("%w: create client: %v", ErrGeneration, err)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		TopP:            genai.Ptr[float32](1),
		TopK:            genai.Ptr[float32](1),
		MaxOutputTokens: 8192,
	}

	prompt := buildPrompt(transcript, slideText)
	g.logger.Info(ctx, "Sending summary request to Gemini (%s)", g.model)

	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("%w: generate content: %v", ErrGeneration, err)
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no candidates in response", ErrGeneration)
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	g.logger.Info(ctx, "Received summary from Gemini (%d chars)", text.Len())
	return text.String(), nil
}

// buildPrompt assembles the fixed-structure prompt: role instruction,
// slides-as-context instruction, slide text, transcript, summary cue.
func buildPrompt(transcript, slideText string) string {
	parts := []string{
		"You are an expert academic assistant. Your task is to create a well-structured summary, containing all the important information of the provided transcript.",
		"Use the content from the lecture slides as context to better understand the key topics and terminology.",
		"\n--- LECTURE SLIDES CONTENT ---\n",
		slideText,
		"\n--- VIDEO TRANSCRIPT ---\n",
		transcript,
		"\n--- SUMMARY ---\n",
	}
	return strings.Join(parts, "\n")
}
