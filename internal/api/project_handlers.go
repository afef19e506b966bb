package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skillsphere/learner-store/internal/models"
	"github.com/skillsphere/learner-store/internal/projects"
)

// ProjectRequest creates or edits a project. TagsText is a comma
// separated alternative to Tags.
type ProjectRequest struct {
	projects.Draft
	TagsText string `json:"tagsText,omitempty"`
}

func (p ProjectRequest) draft() projects.Draft {
	d := p.Draft
	if d.Tags == nil && p.TagsText != "" {
		d.Tags = projects.ParseTags(p.TagsText)
	}
	return d
}

// FromCourseRequest optionally overrides the title and description of a course project
type FromCourseRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

func (s *Server) projectStore(r *http.Request) *projects.Store {
	return projects.NewStore(s.learnerBackend(r))
}

func respondProjects(w http.ResponseWriter, status int, list []models.ProjectRecord) {
	respondJSON(w, status, map[string]interface{}{
		"projects": list,
		"total":    len(list),
	})
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	list, err := s.projectStore(r).Load(r.Context())
	if err != nil {
		respondInternal(w, r, err, "failed to load projects")
		return
	}
	respondProjects(w, http.StatusOK, list)
}

// handleSaveProjects replaces the whole list with the request body as given
func (s *Server) handleSaveProjects(w http.ResponseWriter, r *http.Request) {
	var list []models.ProjectRecord
	if !decodeJSON(w, r, &list, false) {
		return
	}

	if !s.saveProjects(w, r, list) {
		return
	}
	respondProjects(w, http.StatusOK, list)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	draft := req.draft()
	if err := draft.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	s.prependProject(w, r, projects.New(draft, s.now()))
}

func (s *Server) handleCreateProjectFromCourse(w http.ResponseWriter, r *http.Request) {
	course := s.catalog.Get(chi.URLParam(r, "courseID"))
	if course == nil {
		respondError(w, http.StatusNotFound, "course_not_found", "course not found in catalog")
		return
	}

	var req FromCourseRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	s.prependProject(w, r, projects.FromCourse(course, req.Title, req.Description, s.now()))
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	draft := req.draft()
	if err := draft.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	list, err := s.projectStore(r).Load(r.Context())
	if err != nil {
		respondInternal(w, r, err, "failed to load projects")
		return
	}

	existing, ok := projects.Find(list, chi.URLParam(r, "projectID"))
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "project not found")
		return
	}

	updated := projects.Apply(existing, draft)
	list, _ = projects.Replace(list, updated)
	if !s.saveProjects(w, r, list) {
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	list, err := s.projectStore(r).Load(r.Context())
	if err != nil {
		respondInternal(w, r, err, "failed to load projects")
		return
	}

	list, ok := projects.Remove(list, chi.URLParam(r, "projectID"))
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "project not found")
		return
	}

	if !s.saveProjects(w, r, list) {
		return
	}
	respondProjects(w, http.StatusOK, list)
}

func (s *Server) handleProjectSummary(w http.ResponseWriter, r *http.Request) {
	list, err := s.projectStore(r).Load(r.Context())
	if err != nil {
		respondInternal(w, r, err, "failed to load projects")
		return
	}
	respondJSON(w, http.StatusOK, projects.Summarize(list))
}

func (s *Server) prependProject(w http.ResponseWriter, r *http.Request, p models.ProjectRecord) {
	list, err := s.projectStore(r).Load(r.Context())
	if err != nil {
		respondInternal(w, r, err, "failed to load projects")
		return
	}

	if !s.saveProjects(w, r, projects.Prepend(list, p)) {
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

func (s *Server) saveProjects(w http.ResponseWriter, r *http.Request, list []models.ProjectRecord) bool {
	if err := s.projectStore(r).Save(r.Context(), list); err != nil {
		respondInternal(w, r, err, "failed to save projects")
		return false
	}

	s.publish(r, EventProjectsUpdated, map[string]int{"total": len(list)})
	return true
}
