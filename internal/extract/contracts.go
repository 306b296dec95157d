package extract

import (
	"context"
	"time"
)

// TextExtractor is Stage 1: source file -> flat text. Implementations hand
// the engine one string per document, pages joined by a newline, in page
// order.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text     string
	Pages    int
	Method   string // "pdf-text" | "plain-text"
	Duration time.Duration
	Warnings []string
}
