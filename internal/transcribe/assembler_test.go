package transcribe

import (
	"strings"
	"testing"
)

func TestCombineClosesOnBothConditions(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 20, Text: "First part of the lecture"},
		{Start: 20, End: 35, Text: "and it ends here."},
		{Start: 35, End: 40, Text: "A new thought begins"},
	}

	paragraphs := Combine(segments, 30)

	if len(paragraphs) != 2 {
		t.Fatalf("paragraph count = %d, want 2", len(paragraphs))
	}
	if paragraphs[0].Start != 0 || paragraphs[0].End != 35 {
		t.Errorf("first paragraph spans [%v, %v], want [0, 35]", paragraphs[0].Start, paragraphs[0].End)
	}
	if !strings.HasSuffix(paragraphs[0].Text, "ends here.") {
		t.Errorf("first paragraph text = %q", paragraphs[0].Text)
	}
}

func TestCombineNeverClosesOnDurationAlone(t *testing.T) {
	// Well over the threshold, but no sentence ender anywhere.
	segments := []Segment{
		{Start: 0, End: 25, Text: "speech without punctuation"},
		{Start: 25, End: 50, Text: "still going"},
		{Start: 50, End: 75, Text: "and going"},
	}

	paragraphs := Combine(segments, 30)

	if len(paragraphs) != 1 {
		t.Fatalf("paragraph count = %d, want 1 (trailing flush only)", len(paragraphs))
	}
	if paragraphs[0].End != 75 {
		t.Errorf("paragraph end = %v, want 75", paragraphs[0].End)
	}
}

func TestCombineNeverClosesOnPunctuationAlone(t *testing.T) {
	// Every segment ends a sentence, but the duration never reaches 30s
	// until the last one lands.
	segments := []Segment{
		{Start: 0, End: 10, Text: "Short sentence."},
		{Start: 10, End: 20, Text: "Another one."},
		{Start: 20, End: 31, Text: "The closer."},
	}

	paragraphs := Combine(segments, 30)

	if len(paragraphs) != 1 {
		t.Fatalf("paragraph count = %d, want 1", len(paragraphs))
	}
	if paragraphs[0].Start != 0 || paragraphs[0].End != 31 {
		t.Errorf("paragraph spans [%v, %v], want [0, 31]", paragraphs[0].Start, paragraphs[0].End)
	}
}

func TestCombineFlushesTrailingPartial(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 5, Text: "Unfinished thought"},
	}

	paragraphs := Combine(segments, 30)

	if len(paragraphs) != 1 {
		t.Fatalf("paragraph count = %d, want 1", len(paragraphs))
	}
}

func TestCombineQuestionAndExclamation(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"question mark", "Does this close the paragraph?"},
		{"exclamation mark", "It certainly does!"},
		{"trailing whitespace after ender", "Trimmed before checking.  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments := []Segment{
				{Start: 0, End: 31, Text: "Filler to satisfy the duration rule"},
				{Start: 31, End: 32, Text: tt.text},
				{Start: 32, End: 33, Text: "leftover"},
			}
			paragraphs := Combine(segments, 30)
			if len(paragraphs) != 2 {
				t.Fatalf("paragraph count = %d, want 2", len(paragraphs))
			}
		})
	}
}

func TestCombineEmptyInput(t *testing.T) {
	if got := Combine(nil, 30); len(got) != 0 {
		t.Errorf("Combine(nil) = %v, want empty", got)
	}
}

func TestCombineMonotonicOrder(t *testing.T) {
	segments := []Segment{
		{Start: 0, End: 18, Text: "One sentence here."},
		{Start: 18, End: 36, Text: "Closing the first block."},
		{Start: 36, End: 60, Text: "Second block begins."},
		{Start: 60, End: 70, Text: "And wraps up."},
	}

	paragraphs := Combine(segments, 30)

	for i, p := range paragraphs {
		if p.End < p.Start {
			t.Errorf("paragraph %d end %v precedes start %v", i, p.End, p.Start)
		}
		if i > 0 && p.Start < paragraphs[i-1].Start {
			t.Errorf("paragraph %d start %v out of order", i, p.Start)
		}
	}
}

func TestRenderShiftsAndFormats(t *testing.T) {
	paragraphs := []Paragraph{
		{Start: 0, End: 65.9, Text: "  Hello from the lecture.  "},
	}

	out := Render(paragraphs, 3600)

	want := "[01:00:00 -> 01:01:05]\nHello from the lecture.\n\n"
	if out != want {
		t.Errorf("Render() = %q, want %q", out, want)
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00"},
		{59.999, "00:00:59"},
		{61, "00:01:01"},
		{3723.4, "01:02:03"},
		{36000, "10:00:00"},
	}

	for _, tt := range tests {
		if got := formatTimestamp(tt.seconds); got != tt.want {
			t.Errorf("formatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
