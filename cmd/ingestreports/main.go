package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/mfcarvalho/survey-reports/internal/common"
	"github.com/mfcarvalho/survey-reports/internal/engine"
	"github.com/mfcarvalho/survey-reports/internal/extract"
	"github.com/mfcarvalho/survey-reports/internal/ingest"
	"github.com/mfcarvalho/survey-reports/internal/pipeline"
	"github.com/mfcarvalho/survey-reports/internal/repository"
)

// ingestreports batch-parses every report file under a directory and
// persists the results to the record store.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "ingestreports <directory>")
		os.Exit(2)
	}
	root := os.Args[1]

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	engCfg := engine.DefaultConfig()
	if cfg.Engine.TuningPath != "" {
		var err error
		engCfg, err = engine.LoadConfig(cfg.Engine.TuningPath)
		if err != nil {
			logger.Error("load engine tuning", "path", cfg.Engine.TuningPath, "error", err)
			os.Exit(1)
		}
	}
	engCfg.Workers = cfg.Engine.Workers
	parser := engine.NewParser(engCfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	db, err := repository.Open(ctx, cfg.Store.Path, logger)
	if err != nil {
		logger.Error("open record store", "error", err)
		os.Exit(1)
	}
	defer repository.Close(db, logger)

	reports := repository.NewReportRepository(db, logger)
	extractors := map[string]extract.TextExtractor{
		"PDF": extract.NewPDFExtractor(logger),
		"TXT": extract.NewPlainTextExtractor(),
	}
	stage := pipeline.NewParseStage(parser, extractors, reports, logger)

	ingestor := ingest.NewDirectoryIngestor(stage, logger)
	results, stats, err := ingestor.IngestDirectory(ctx, root, true)
	if err != nil {
		logger.Error("ingest failed", "root", root, "error", err)
		os.Exit(1)
	}

	out := struct {
		Stats   ingest.DirStats     `json:"stats"`
		Results []ingest.FileResult `json:"results"`
	}{Stats: stats, Results: results}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}
}
