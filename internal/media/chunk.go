package media

// Chunk is a contiguous time-slice of a Waveform. It keeps no reference to
// the parent buffer beyond the shared backing array; chunks are produced
// once and consumed once.
type Chunk struct {
	Start      float64 // seconds from the start of the source video
	Samples    []int
	SampleRate int
}

// Duration returns the chunk length in seconds.
func (c Chunk) Duration() float64 {
	if c.SampleRate == 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// Split cuts a waveform into fixed-length chunks by absolute sample offset,
// so concatenated chunk durations equal the total duration exactly. The
// final chunk may be shorter. Deterministic for a given input and length.
func Split(w *Waveform, chunkSeconds int) []Chunk {
	chunkSamples := chunkSeconds * w.SampleRate
	if chunkSamples <= 0 {
		return nil
	}

	var chunks []Chunk
	for offset := 0; offset < len(w.Samples); offset += chunkSamples {
		end := offset + chunkSamples
		if end > len(w.Samples) {
			end = len(w.Samples)
		}
		chunks = append(chunks, Chunk{
			Start:      float64(offset) / float64(w.SampleRate),
			Samples:    w.Samples[offset:end],
			SampleRate: w.SampleRate,
		})
	}

	return chunks
}
