package extract

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// PlainTextExtractor reads already-extracted text files as-is. Used for
// pre-extracted report dumps and in tests.
type PlainTextExtractor struct{}

func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

func (e *PlainTextExtractor) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return TextExtractionResult{}, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("read text file %s: %w", path, err)
	}
	text := string(raw)
	return TextExtractionResult{
		Text:     text,
		Pages:    1 + strings.Count(text, "\f"),
		Method:   "plain-text",
		Duration: time.Since(start),
	}, nil
}
