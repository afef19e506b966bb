package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skillsphere/learner-store/internal/catalog"
	"github.com/skillsphere/learner-store/internal/models"
)

// Catalog handlers

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind := models.CourseKind(q.Get("kind"))
	if kind != "" && !kind.Valid() {
		respondError(w, http.StatusBadRequest, "validation_error", "kind must be free or paid")
		return
	}

	courses := s.catalog.List(catalog.Filter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Language: q.Get("language"),
		Kind:     kind,
	})
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"courses": courses,
		"total":   len(courses),
	})
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	course := s.catalog.Get(chi.URLParam(r, "courseID"))
	if course == nil {
		respondError(w, http.StatusNotFound, "not_found", "course not found")
		return
	}
	respondJSON(w, http.StatusOK, course)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": s.catalog.Categories(),
	})
}
