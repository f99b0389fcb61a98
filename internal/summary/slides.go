package summary

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrDocumentRead reports an unreadable or invalid slide deck.
	ErrDocumentRead = errors.New("slide deck could not be read")
	// ErrGeneration reports a failed or unauthorized generative call.
	ErrGeneration = errors.New("summary generation failed")
	// ErrRender reports a failed markdown-to-document conversion.
	ErrRender = errors.New("document rendering failed")
)

// ExtractSlideText pulls plain text from a PDF slide deck, page texts in
// order separated by a blank line.
func ExtractSlideText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRead, err)
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", ErrDocumentRead, i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}

	return sb.String(), nil
}
