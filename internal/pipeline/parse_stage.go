package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mfcarvalho/survey-reports/constants"
	"github.com/mfcarvalho/survey-reports/internal/engine"
	"github.com/mfcarvalho/survey-reports/internal/extract"
	"github.com/mfcarvalho/survey-reports/internal/repository"
)

// ParseStage drives one document through extraction and record parsing and,
// when a repository is attached, persists the outcome.
type ParseStage struct {
	Logger     *slog.Logger
	Parser     *engine.Parser
	Extractors map[string]extract.TextExtractor // keyed by format, see constants.MapExtToFormat
	Reports    repository.ReportRepository      // optional; nil skips persistence
}

func NewParseStage(parser *engine.Parser, extractors map[string]extract.TextExtractor, reports repository.ReportRepository, logger *slog.Logger) *ParseStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &ParseStage{
		Logger:     logger,
		Parser:     parser,
		Extractors: extractors,
		Reports:    reports,
	}
}

// Run extracts text from the file at path, parses it into survey records,
// and persists a report row plus its records. The returned report ID is
// uuid.Nil when persistence is skipped.
func (s *ParseStage) Run(ctx context.Context, path string) (uuid.UUID, engine.Result, error) {
	format := constants.MapExtToFormat(filepath.Ext(path))
	if format == "" {
		return uuid.Nil, engine.Result{}, fmt.Errorf("unsupported format: %s", filepath.Ext(path))
	}
	extractor, ok := s.Extractors[format]
	if !ok {
		return uuid.Nil, engine.Result{}, fmt.Errorf("no extractor registered for format %s", format)
	}

	s.Logger.Info("parse.start", "path", path, "format", format)
	start := time.Now()

	res, err := extractor.Extract(ctx, path)
	if err != nil {
		return uuid.Nil, engine.Result{}, fmt.Errorf("extract text: %w", err)
	}

	result := s.Parser.Parse(ctx, res.Text)

	s.Logger.Info("parse.ok",
		"path", path,
		"pages", res.Pages,
		"bytes", len(res.Text),
		"records", len(result.Records),
		"skipped", len(result.Skipped),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if s.Reports == nil {
		return uuid.Nil, result, nil
	}

	rep := &repository.Report{
		ID:           uuid.New(),
		SourcePath:   path,
		Status:       string(constants.JobStatusParsed),
		RecordCount:  len(result.Records),
		SkippedCount: len(result.Skipped),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Reports.SaveReport(ctx, rep, result.Records); err != nil {
		return uuid.Nil, result, fmt.Errorf("save report: %w", err)
	}
	return rep.ID, result, nil
}
