package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mfcarvalho/survey-reports/constants"
	"github.com/mfcarvalho/survey-reports/internal/common"
	"github.com/mfcarvalho/survey-reports/internal/engine"
	"github.com/mfcarvalho/survey-reports/internal/report"
)

// handleParse parses a raw text body and returns the result without
// persisting anything. Useful for tuning heuristics against a new report
// layout.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, s.maxUploadBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("read body: %w", err))
		return
	}
	if len(body) == 0 {
		s.writeError(w, http.StatusBadRequest, errors.New("empty body"))
		return
	}
	result := s.parser.Parse(r.Context(), string(body))
	s.writeJSON(w, http.StatusOK, result)
}

type uploadResponse struct {
	ReportID     string `json:"report_id"`
	RecordCount  int    `json:"record_count"`
	SkippedCount int    `json:"skipped_count"`
}

// handleUploadReport accepts a multipart upload ("file"), runs the parse
// stage, and persists the outcome.
func (s *Server) handleUploadReport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("parse multipart form: %w", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("missing file field: %w", err))
		return
	}
	defer func() { _ = file.Close() }()

	ext := filepath.Ext(header.Filename)
	if constants.MapExtToFormat(ext) == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("unsupported file extension %q", ext))
		return
	}

	// The PDF reader needs a seekable file, so stage the upload on disk.
	tmp, err := os.CreateTemp("", "survey-upload-*"+ext)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("stage upload: %w", err))
		return
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("stage upload: %w", err))
		return
	}
	if err := tmp.Close(); err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("stage upload: %w", err))
		return
	}

	reportID, result, err := s.stage.Run(r.Context(), tmp.Name())
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, uploadResponse{
		ReportID:     reportID.String(),
		RecordCount:  len(result.Records),
		SkippedCount: len(result.Skipped),
	})
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.reports.ListReports(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, engine.ExtractComments(records))
}

func (s *Server) handleListUnits(w http.ResponseWriter, r *http.Request) {
	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, report.GroupByUnit(records))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}
	data, err := report.ExportXLSX(records, s.logger)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="survey-records.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// loadRecords resolves {reportID} and fetches the report's records, writing
// the error response itself when something is off.
func (s *Server) loadRecords(w http.ResponseWriter, r *http.Request) ([]engine.SurveyRecord, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "reportID"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid report id: %w", err))
		return nil, false
	}
	if _, err := s.reports.GetReport(r.Context(), id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, fmt.Errorf("report %s not found", id))
		} else {
			s.writeError(w, http.StatusInternalServerError, err)
		}
		return nil, false
	}
	records, err := s.reports.ListRecords(r.Context(), id)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return records, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("request failed", "status", status, "error", err)
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
