package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mfcarvalho/survey-reports/internal/common"
	"github.com/mfcarvalho/survey-reports/internal/engine"
	"github.com/mfcarvalho/survey-reports/internal/extract"
	"github.com/mfcarvalho/survey-reports/internal/ingest"
	"github.com/mfcarvalho/survey-reports/internal/pipeline"
	"github.com/mfcarvalho/survey-reports/internal/repository"
	"github.com/mfcarvalho/survey-reports/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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

	if cfg.Ingest.WatchDir != "" {
		events, watchErrs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:    []string{cfg.Ingest.WatchDir},
			Debounce: cfg.Ingest.WatchDebounce,
		}, logger)
		if err != nil {
			logger.Error("start watcher", "dir", cfg.Ingest.WatchDir, "error", err)
			os.Exit(1)
		}
		go func() {
			for {
				select {
				case path, ok := <-events:
					if !ok {
						return
					}
					if _, _, err := stage.Run(ctx, path); err != nil {
						logger.Warn("watch.parse_failed", "path", path, "error", err)
					}
				case werr, ok := <-watchErrs:
					if !ok {
						return
					}
					logger.Error("watch.error", "error", werr)
				}
			}
		}()
		logger.Info("watching drop folder", "dir", cfg.Ingest.WatchDir)
	}

	srv := &http.Server{
		Addr: cfg.Server.HTTPAddr,
		Handler: server.New(parser, stage, reports, server.Config{
			MaxUploadBytes: cfg.Server.MaxUploadBytes,
		}, logger),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	logger.Info("surveyd listening", "addr", cfg.Server.HTTPAddr, "store", cfg.Store.Path)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("serve", "error", err)
		os.Exit(1)
	}
	logger.Info("surveyd stopped")
}
