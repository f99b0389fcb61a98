package transcribe

import (
	"context"

	"github.com/TheCodingCrusade/learning-companion/internal/media"
)

// Segment is one recognized span of speech. Start and End are seconds
// relative to the chunk the segment came from.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Recognizer is a pluggable speech-to-text backend. Implementations are
// created once at boot, hold no per-call state, and must be safe for
// concurrent use by many jobs. The prompt conditions recognition on the
// tail of the previous chunk's text; empty for the first chunk.
type Recognizer interface {
	Recognize(ctx context.Context, chunk media.Chunk, prompt string) ([]Segment, error)
}
