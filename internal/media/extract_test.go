package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/TheCodingCrusade/learning-companion/internal/logger"
)

type fakeExecutor struct {
	lastName string
	lastArgs []string
	err      error
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.lastName = name
	f.lastArgs = args
	return "", f.err
}

func TestExtractAudioArgs(t *testing.T) {
	exec := &fakeExecutor{}
	e := NewExtractor(exec, logger.NewWithWriter("error", io.Discard))

	audioPath, err := e.ExtractAudio(context.Background(), "/tmp/lecture.mp4")
	if err != nil {
		t.Fatalf("ExtractAudio() error = %v", err)
	}
	defer os.Remove(audioPath)

	if exec.lastName != "ffmpeg" {
		t.Errorf("command = %q, want ffmpeg", exec.lastName)
	}

	want := []string{"-vn", "-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1"}
	got := fmt.Sprint(exec.lastArgs)
	for _, flag := range want {
		found := false
		for _, a := range exec.lastArgs {
			if a == flag {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("args %v missing %q", got, flag)
		}
	}
}

func TestExtractAudioFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("ffmpeg exploded")}
	e := NewExtractor(exec, logger.NewWithWriter("error", io.Discard))

	audioPath, err := e.ExtractAudio(context.Background(), "/tmp/lecture.mp4")
	if err == nil {
		t.Fatal("ExtractAudio() expected error")
	}
	if !errors.Is(err, ErrExtraction) {
		t.Errorf("error = %v, want ErrExtraction", err)
	}
	if audioPath != "" {
		t.Errorf("audioPath = %q, want empty on failure", audioPath)
	}
}
