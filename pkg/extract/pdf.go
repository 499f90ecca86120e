package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"go-jobportal-backend/pkg/logger"
)

// ObjectFetcher resolves a storage key to raw file bytes.
type ObjectFetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// PDFExtractor pulls the text layer out of stored PDF resumes.
type PDFExtractor struct {
	store ObjectFetcher
}

func NewPDFExtractor(store ObjectFetcher) *PDFExtractor {
	return &PDFExtractor{store: store}
}

// ExtractText fetches the object at resumeKey and concatenates the text of
// every page. Scanned image-only PDFs yield empty text and an error so the
// caller can fall back to profile fields.
func (e *PDFExtractor) ExtractText(ctx context.Context, resumeKey string) (string, error) {
	data, err := e.store.Fetch(ctx, resumeKey)
	if err != nil {
		return "", fmt.Errorf("failed to fetch resume %s: %w", resumeKey, err)
	}

	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var fullText strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			logger.Log.Warn("failed to read PDF page", "resume_key", resumeKey, "page", n+1, "error", err)
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText != "" {
			fullText.WriteString(pageText)
			fullText.WriteString("\n\n")
		}
	}

	result := strings.TrimSpace(fullText.String())
	if result == "" {
		return "", fmt.Errorf("no text layer in PDF %s", resumeKey)
	}
	return result, nil
}
