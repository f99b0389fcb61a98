package transcribe

import (
	"fmt"
	"strings"
)

// Paragraph is a sentence-bounded merge of segments, the transcript's
// display unit. Times are chunk-relative until shifted during rendering.
type Paragraph struct {
	Start float64
	End   float64
	Text  string
}

const sentenceEnders = ".?!"

// Combine merges a chunk's segments into paragraphs. The running paragraph
// closes exactly when its accumulated duration reaches maxParagraphSeconds
// AND its trimmed text ends on a sentence boundary; neither condition alone
// suffices. A trailing partial paragraph is always flushed.
func Combine(segments []Segment, maxParagraphSeconds float64) []Paragraph {
	var combined []Paragraph
	var current *Paragraph

	for _, seg := range segments {
		if current == nil {
			current = &Paragraph{Start: seg.Start, End: seg.End, Text: seg.Text}
		} else {
			current.End = seg.End
			current.Text += " " + seg.Text
		}

		longEnough := current.End-current.Start >= maxParagraphSeconds
		sentenceDone := endsSentence(current.Text)
		if longEnough && sentenceDone {
			combined = append(combined, *current)
			current = nil
		}
	}

	if current != nil {
		combined = append(combined, *current)
	}

	return combined
}

func endsSentence(text string) bool {
	trimmed := strings.TrimRight(text, " \t\n\r")
	if trimmed == "" {
		return false
	}
	return strings.ContainsRune(sentenceEnders, rune(trimmed[len(trimmed)-1]))
}

// Render shifts each paragraph by offset seconds into absolute time and
// formats it as a timestamped block followed by a blank line.
func Render(paragraphs []Paragraph, offset float64) string {
	var sb strings.Builder
	for _, p := range paragraphs {
		start := p.Start + offset
		end := p.End + offset
		sb.WriteString(fmt.Sprintf("[%s -> %s]\n%s\n\n",
			formatTimestamp(start),
			formatTimestamp(end),
			strings.TrimSpace(p.Text),
		))
	}
	return sb.String()
}

// formatTimestamp renders seconds as HH:MM:SS, truncating fractions.
func formatTimestamp(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
