package media

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Waveform is decoded PCM audio held in memory, owned by a single job.
type Waveform struct {
	Samples    []int
	SampleRate int
}

// Duration returns total length in seconds.
func (w *Waveform) Duration() float64 {
	if w.SampleRate == 0 {
		return 0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}

// DecodeWAV loads a 16kHz mono PCM WAV file into memory. The extractor
// always produces this format; the checks guard against a caller feeding
// in arbitrary audio.
func DecodeWAV(path string) (*Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("audio file is not a valid wav file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read PCM buffer: %w", err)
	}

	if buf.Format.NumChannels != 1 {
		return nil, fmt.Errorf("expected mono audio, got %d channels", buf.Format.NumChannels)
	}

	return &Waveform{
		Samples:    buf.Data,
		SampleRate: buf.Format.SampleRate,
	}, nil
}

// WriteWAV writes 16-bit mono PCM samples to path.
func WriteWAV(path string, samples []int, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav file: %w", err)
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Data:           samples,
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		enc.Close()
		f.Close()
		return fmt.Errorf("write PCM buffer: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalize wav file: %w", err)
	}

	return f.Close()
}
