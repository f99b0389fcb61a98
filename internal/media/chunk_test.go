package media

import (
	"math"
	"testing"
)

func makeWaveform(seconds float64, rate int) *Waveform {
	n := int(seconds * float64(rate))
	samples := make([]int, n)
	for i := range samples {
		samples[i] = i % 32768
	}
	return &Waveform{Samples: samples, SampleRate: rate}
}

func TestSplitNoSampleLoss(t *testing.T) {
	tests := []struct {
		name         string
		seconds      float64
		chunkSeconds int
	}{
		{"exact multiple", 1200, 600},
		{"final partial chunk", 1250, 600},
		{"shorter than one chunk", 90, 600},
		{"one sample over", 600.0000625, 600}, // 600s + 1 sample at 16kHz
		{"small chunks", 7.5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := makeWaveform(tt.seconds, 16000)
			chunks := Split(w, tt.chunkSeconds)

			total := 0
			for _, c := range chunks {
				total += len(c.Samples)
			}
			if total != len(w.Samples) {
				t.Errorf("chunks carry %d samples, want %d", total, len(w.Samples))
			}

			wantCount := int(math.Ceil(w.Duration() / float64(tt.chunkSeconds)))
			if len(chunks) != wantCount {
				t.Errorf("chunk count = %d, want %d", len(chunks), wantCount)
			}

			var durations float64
			for _, c := range chunks {
				durations += c.Duration()
			}
			if math.Abs(durations-w.Duration()) > 1e-9 {
				t.Errorf("summed durations = %v, want %v", durations, w.Duration())
			}
		})
	}
}

func TestSplitStartOffsets(t *testing.T) {
	w := makeWaveform(25, 16000)
	chunks := Split(w, 10)

	if len(chunks) != 3 {
		t.Fatalf("chunk count = %d, want 3", len(chunks))
	}

	wantStarts := []float64{0, 10, 20}
	for i, c := range chunks {
		if c.Start != wantStarts[i] {
			t.Errorf("chunk %d start = %v, want %v", i, c.Start, wantStarts[i])
		}
	}

	if chunks[2].Duration() != 5 {
		t.Errorf("final chunk duration = %v, want 5", chunks[2].Duration())
	}
}

func TestSplitDeterministic(t *testing.T) {
	w := makeWaveform(33, 16000)

	a := Split(w, 10)
	b := Split(w, 10)

	if len(a) != len(b) {
		t.Fatalf("counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Start != b[i].Start || len(a[i].Samples) != len(b[i].Samples) {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestSplitPreservesSampleValues(t *testing.T) {
	w := makeWaveform(3, 16000)
	chunks := Split(w, 1)

	i := 0
	for _, c := range chunks {
		for _, s := range c.Samples {
			if s != w.Samples[i] {
				t.Fatalf("sample %d = %d, want %d", i, s, w.Samples[i])
			}
			i++
		}
	}
}

func TestSplitInvalidChunkLength(t *testing.T) {
	w := makeWaveform(10, 16000)
	if chunks := Split(w, 0); chunks != nil {
		t.Errorf("Split() with zero length = %v, want nil", chunks)
	}
}
