package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/skillsphere/learner-store/internal/catalog"
	"github.com/skillsphere/learner-store/internal/config"
	"github.com/skillsphere/learner-store/internal/storage"
)

// Server represents the HTTP API server
type Server struct {
	config  config.ServerConfig
	router  *chi.Mux
	driver  storage.Driver
	catalog *catalog.Loader
	events  *Hub
	locks   *lockSet
	now     func() time.Time
}

// NewServer creates a new API server
func NewServer(cfg config.ServerConfig, driver storage.Driver, loader *catalog.Loader) *Server {
	s := &Server{
		config:  cfg,
		driver:  driver,
		catalog: loader,
		events:  NewHub(),
		locks:   newLockSet(),
		now:     time.Now,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// Events returns the hub that learner change events are published to
func (s *Server) Events() *Hub {
	return s.events
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", progressStatusHeader},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/courses", s.handleListCourses)
			r.Get("/courses/{courseID}", s.handleGetCourse)
			r.Get("/categories", s.handleListCategories)
		})

		r.Route("/learners/{learnerID}", func(r chi.Router) {
			r.Use(s.learnerMiddleware)

			// long-lived, must not hold the learner lock
			r.Get("/events", s.handleEvents)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(60 * time.Second))
				r.Use(s.serializeLearner)

				r.Route("/progress", func(r chi.Router) {
					r.Get("/", s.handleGetProgress)
					r.Get("/enrollments", s.handleListEnrollments)
					r.Post("/enrollments", s.handleEnroll)
					r.Delete("/enrollments/{courseID}", s.handleCancelEnrollment)
					r.Post("/certifications", s.handleAddCertification)
				})

				r.Route("/projects", func(r chi.Router) {
					r.Get("/", s.handleListProjects)
					r.Put("/", s.handleSaveProjects)
					r.Post("/", s.handleCreateProject)
					r.Get("/summary", s.handleProjectSummary)
					r.Post("/from-course/{courseID}", s.handleCreateProjectFromCourse)
					r.Put("/{projectID}", s.handleUpdateProject)
					r.Delete("/{projectID}", s.handleDeleteProject)
				})

				r.Route("/learnings", func(r chi.Router) {
					r.Get("/", s.handleListLearnings)
					r.Post("/", s.handleAddLearning)
				})
			})
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
