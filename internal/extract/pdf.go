package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// PDFExtractor pulls page text out of a PDF with ledongthuc/pdf (pure Go,
// no CGO). Layout reconstruction is the library's; the engine downstream
// assumes text from one visual line arrives contiguously but never verifies
// it.
type PDFExtractor struct {
	logger *slog.Logger
}

func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{logger: logger}
}

func (e *PDFExtractor) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			e.logger.Warn("extract.close_failed", "path", path, "error", cerr)
		}
	}()

	var (
		b     strings.Builder
		warns []string
	)
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return TextExtractionResult{}, err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			warns = append(warns, fmt.Sprintf("page %d: null page object", i))
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			warns = append(warns, fmt.Sprintf("page %d: %v", i, err))
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(text)
	}

	res := TextExtractionResult{
		Text:     b.String(),
		Pages:    total,
		Method:   "pdf-text",
		Duration: time.Since(start),
		Warnings: warns,
	}
	e.logger.Info("extract.pdf_ok", "path", path, "pages", total, "bytes", len(res.Text), "warnings", len(warns))
	return res, nil
}
