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
	"github.com/mfcarvalho/survey-reports/internal/pipeline"
)

// parsereport parses one report file and prints the records as JSON.
// No persistence; this is the offline/debugging entry point.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "parsereport <report.pdf|report.txt>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg := common.LoadConfig()
	engCfg := engine.DefaultConfig()
	if cfg.Engine.TuningPath != "" {
		var err error
		engCfg, err = engine.LoadConfig(cfg.Engine.TuningPath)
		if err != nil {
			logger.Error("load engine tuning", "path", cfg.Engine.TuningPath, "error", err)
			os.Exit(1)
		}
	}
	parser := engine.NewParser(engCfg, logger)

	extractors := map[string]extract.TextExtractor{
		"PDF": extract.NewPDFExtractor(logger),
		"TXT": extract.NewPlainTextExtractor(),
	}
	stage := pipeline.NewParseStage(parser, extractors, nil, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	_, result, err := stage.Run(ctx, path)
	if err != nil {
		logger.Error("parse failed", "path", path, "error", err)
		os.Exit(1)
	}

	out := struct {
		Records  []engine.SurveyRecord    `json:"records"`
		Comments []string                 `json:"comments"`
		Skipped  []engine.BlockDiagnostic `json:"skipped,omitempty"`
	}{
		Records:  result.Records,
		Comments: engine.ExtractComments(result.Records),
		Skipped:  result.Skipped,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}
}
