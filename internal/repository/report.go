package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mfcarvalho/survey-reports/internal/common"
	"github.com/mfcarvalho/survey-reports/internal/engine"
)

// Report is one parsed source document.
type Report struct {
	ID           uuid.UUID `json:"id"`
	SourcePath   string    `json:"source_path"`
	Status       string    `json:"status"`
	RecordCount  int       `json:"record_count"`
	SkippedCount int       `json:"skipped_count"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReportRepository interface {
	SaveReport(ctx context.Context, report *Report, records []engine.SurveyRecord) error
	GetReport(ctx context.Context, id uuid.UUID) (*Report, error)
	ListReports(ctx context.Context) ([]*Report, error)
	// ListRecords returns the report's records in original document order.
	ListRecords(ctx context.Context, reportID uuid.UUID) ([]engine.SurveyRecord, error)
}

type reportRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewReportRepository(db *sql.DB, logger *slog.Logger) ReportRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &reportRepository{db: db, logger: logger}
}

func (r *reportRepository) SaveReport(ctx context.Context, report *Report, records []engine.SurveyRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reports (id, source_path, status, record_count, skipped_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		report.ID.String(), report.SourcePath, report.Status,
		report.RecordCount, report.SkippedCount, report.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO survey_records (report_id, position, survey_id, unit_code, score, comment, leader_feedback)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, rec := range records {
		var score sql.NullInt64
		if rec.Score != nil {
			score = sql.NullInt64{Int64: int64(*rec.Score), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, report.ID.String(), i, rec.ID, rec.UnitCode, score, rec.Comment, rec.LeaderFeedback); err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	r.logger.Info("report saved", "report_id", report.ID, "records", len(records))
	return nil
}

func (r *reportRepository) GetReport(ctx context.Context, id uuid.UUID) (*Report, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, source_path, status, record_count, skipped_count, created_at
		 FROM reports WHERE id = ?`, id.String())
	rep, err := scanReport(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get report: %w", err)
	}
	return rep, nil
}

func (r *reportRepository) ListReports(ctx context.Context) ([]*Report, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source_path, status, record_count, skipped_count, created_at
		 FROM reports ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *reportRepository) ListRecords(ctx context.Context, reportID uuid.UUID) ([]engine.SurveyRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT survey_id, unit_code, score, comment, leader_feedback
		 FROM survey_records WHERE report_id = ? ORDER BY position`, reportID.String())
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []engine.SurveyRecord
	for rows.Next() {
		var (
			rec   engine.SurveyRecord
			score sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &rec.UnitCode, &score, &rec.Comment, &rec.LeaderFeedback); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if score.Valid {
			n := int(score.Int64)
			rec.Score = &n
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*Report, error) {
	var (
		rep Report
		id  string
	)
	if err := row.Scan(&id, &rep.SourcePath, &rep.Status, &rep.RecordCount, &rep.SkippedCount, &rep.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	rep.ID = parsed
	return &rep, nil
}
