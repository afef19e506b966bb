package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/skillsphere/learner-store/internal/models"
	"github.com/skillsphere/learner-store/internal/progress"
)

const progressStatusHeader = "X-Progress-Status"

// EnrollRequest enrolls either a catalog course by ID or a caller-supplied course
type EnrollRequest struct {
	CourseID string                 `json:"courseId,omitempty"`
	Course   *models.EnrolledCourse `json:"course,omitempty"`
}

// CertificationRequest adjusts the certification counter; Delta defaults to 1
type CertificationRequest struct {
	Delta *int `json:"delta,omitempty"`
}

// MutationResponse carries a store result with the record after the call
type MutationResponse struct {
	Result   progress.Result        `json:"result"`
	Progress *models.ProgressRecord `json:"progress"`
}

func (s *Server) progressStore(r *http.Request) *progress.Store {
	return progress.NewStore(s.learnerBackend(r))
}

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	record, status, err := s.progressStore(r).Inspect(r.Context())
	if err != nil {
		respondInternal(w, r, err, "failed to load progress")
		return
	}

	w.Header().Set(progressStatusHeader, string(status))
	respondJSON(w, http.StatusOK, record)
}

func (s *Server) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	courses, err := s.progressStore(r).EnrolledCourses(r.Context())
	if err != nil {
		respondInternal(w, r, err, "failed to load enrollments")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"courses": courses,
		"total":   len(courses),
	})
}

func (s *Server) handleEnroll(w http.ResponseWriter, r *http.Request) {
	var req EnrollRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	var course models.EnrolledCourse
	switch {
	case req.CourseID != "" && req.Course != nil:
		respondError(w, http.StatusBadRequest, "validation_error", "provide either courseId or course, not both")
		return
	case req.CourseID != "":
		c := s.catalog.Get(req.CourseID)
		if c == nil {
			respondError(w, http.StatusNotFound, "course_not_found", "course not found in catalog")
			return
		}
		course = c.Enrolled()
	case req.Course != nil:
		if strings.TrimSpace(req.Course.ID) == "" || strings.TrimSpace(req.Course.Title) == "" {
			respondError(w, http.StatusBadRequest, "validation_error", "course id and title are required")
			return
		}
		if req.Course.DurationHours < 0 {
			respondError(w, http.StatusBadRequest, "validation_error", "durationHours must not be negative")
			return
		}
		course = *req.Course
	default:
		respondError(w, http.StatusBadRequest, "validation_error", "courseId or course is required")
		return
	}

	store := s.progressStore(r)
	result, err := store.Enroll(r.Context(), course)
	if err != nil {
		respondInternal(w, r, err, "failed to enroll course")
		return
	}
	if !result.Success {
		respondError(w, http.StatusConflict, string(result.Code), result.Message)
		return
	}

	s.respondMutation(w, r, store, http.StatusCreated, result)
}

func (s *Server) handleCancelEnrollment(w http.ResponseWriter, r *http.Request) {
	store := s.progressStore(r)
	result, err := store.Cancel(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		respondInternal(w, r, err, "failed to cancel enrollment")
		return
	}
	if !result.Success {
		respondError(w, http.StatusNotFound, string(result.Code), result.Message)
		return
	}

	s.respondMutation(w, r, store, http.StatusOK, result)
}

func (s *Server) handleAddCertification(w http.ResponseWriter, r *http.Request) {
	var req CertificationRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	delta := 1
	if req.Delta != nil {
		delta = *req.Delta
	}

	record, err := s.progressStore(r).AddCertification(r.Context(), delta)
	if err != nil {
		respondInternal(w, r, err, "failed to update certifications")
		return
	}

	s.publish(r, EventProgressUpdated, record)
	respondJSON(w, http.StatusOK, record)
}

// respondMutation answers a successful enroll or cancel with the saved record
func (s *Server) respondMutation(w http.ResponseWriter, r *http.Request, store *progress.Store, status int, result progress.Result) {
	record, err := store.Load(r.Context())
	if err != nil {
		respondInternal(w, r, err, "failed to load progress")
		return
	}

	s.publish(r, EventProgressUpdated, record)
	respondJSON(w, status, MutationResponse{Result: result, Progress: record})
}
