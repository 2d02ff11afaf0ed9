// Package web provides the HTTP surface: upload, session CRUD and
// the head-to-head comparison endpoints.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/race50/race50-service-go/log"
	"github.com/race50/race50-service-go/pkg/service"
)

type Server struct {
	pool    *pgxpool.Pool
	router  *chi.Mux
	logger  *log.Logger
	upload  *service.UploadService
	session *service.SessionService
	compare *service.CompareService
}

type Option func(*Server)

func WithPool(p *pgxpool.Pool) Option {
	return func(srv *Server) {
		srv.pool = p
		srv.upload = service.NewUploadService(p)
		srv.session = service.NewSessionService(p)
		srv.compare = service.NewCompareService(p)
	}
}

func WithLogger(l *log.Logger) Option {
	return func(srv *Server) {
		srv.logger = l
	}
}

func NewServer(opts ...Option) *Server {
	srv := &Server{router: chi.NewRouter(), logger: log.GetLogger("web")}
	for _, opt := range opts {
		opt(srv)
	}
	srv.setupRoutes()
	return srv
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(chimiddleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(s.apiKeyAuth)
		r.Post("/upload", s.handleUpload)
		r.Get("/sessions", s.handleListSessions)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Delete("/sessions/{id}", s.handleDeleteSession)
		r.Get("/sessions/{id}/compare", s.handleCompare)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
