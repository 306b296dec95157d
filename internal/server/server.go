package server

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/mfcarvalho/survey-reports/internal/engine"
	"github.com/mfcarvalho/survey-reports/internal/pipeline"
	"github.com/mfcarvalho/survey-reports/internal/repository"
)

// Server is the HTTP surface over the extraction engine and the record
// store.
type Server struct {
	router         chi.Router
	logger         *slog.Logger
	parser         *engine.Parser
	stage          *pipeline.ParseStage
	reports        repository.ReportRepository
	maxUploadBytes int64
}

type Config struct {
	MaxUploadBytes int64
}

func New(parser *engine.Parser, stage *pipeline.ParseStage, reports repository.ReportRepository, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 32 << 20
	}
	s := &Server{
		router:         chi.NewRouter(),
		logger:         logger,
		parser:         parser,
		stage:          stage,
		reports:        reports,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Post("/v1/parse", s.handleParse)
	s.router.Post("/v1/reports", s.handleUploadReport)
	s.router.Get("/v1/reports", s.handleListReports)
	s.router.Get("/v1/reports/{reportID}/records", s.handleListRecords)
	s.router.Get("/v1/reports/{reportID}/comments", s.handleListComments)
	s.router.Get("/v1/reports/{reportID}/units", s.handleListUnits)
	s.router.Get("/v1/reports/{reportID}/export", s.handleExport)
}
