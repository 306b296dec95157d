package ingest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/mfcarvalho/survey-reports/constants"
	"github.com/mfcarvalho/survey-reports/internal/pipeline"
)

// DirectoryIngestor walks a drop folder and runs every matching report file
// through the parse stage.
type DirectoryIngestor struct {
	Stage  *pipeline.ParseStage
	Logger *slog.Logger
}

func NewDirectoryIngestor(stage *pipeline.ParseStage, logger *slog.Logger) *DirectoryIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirectoryIngestor{Stage: stage, Logger: logger}
}

// IngestDirectory walks root, filters by the allowed report extensions,
// skips hidden entries if requested, and parses each file. Per-file failures
// are collected, never fatal; the walk continues.
func (d *DirectoryIngestor) IngestDirectory(ctx context.Context, root string, skipHidden bool) ([]FileResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root path is required")
	}

	var results []FileResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			results = append(results, FileResult{Path: path, Err: walkErr.Error()})
			stats.Failed++
			return nil // continue walking
		}
		if skipHidden && isHidden(path) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			return nil
		}
		if constants.MapExtToFormat(filepath.Ext(path)) == "" {
			return nil
		}
		stats.Matched++

		reportID, result, err := d.Stage.Run(ctx, path)
		if err != nil {
			d.Logger.Warn("ingest.file_failed", "path", path, "error", err)
			results = append(results, FileResult{Path: path, Err: err.Error()})
			stats.Failed++
			return nil
		}
		results = append(results, FileResult{
			Path:        path,
			ReportID:    reportID.String(),
			RecordCount: len(result.Records),
		})
		stats.Succeeded++
		return nil
	})

	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	d.Logger.Info("ingest.dir_done", "root", root, "matched", stats.Matched, "succeeded", stats.Succeeded, "failed", stats.Failed)
	return results, stats, nil
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".")
}
