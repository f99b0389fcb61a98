package summary

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestExtractSlideTextInvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a.pdf")
	if err := os.WriteFile(path, []byte("plain text, not a pdf"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ExtractSlideText(path)
	if !errors.Is(err, ErrDocumentRead) {
		t.Errorf("error = %v, want ErrDocumentRead", err)
	}
}

func TestExtractSlideTextMissingFile(t *testing.T) {
	_, err := ExtractSlideText(filepath.Join(t.TempDir(), "missing.pdf"))
	if !errors.Is(err, ErrDocumentRead) {
		t.Errorf("error = %v, want ErrDocumentRead", err)
	}
}
