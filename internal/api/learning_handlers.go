package api

import (
	"errors"
	"net/http"

	"github.com/skillsphere/learner-store/internal/learnings"
)

// LearningRequest records a journal note
type LearningRequest struct {
	Text   string `json:"text"`
	Course string `json:"course,omitempty"`
}

func (s *Server) handleListLearnings(w http.ResponseWriter, r *http.Request) {
	entries, err := learnings.NewStore(s.learnerBackend(r)).Load(r.Context())
	if err != nil {
		respondInternal(w, r, err, "failed to load learnings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"learnings": entries,
		"total":     len(entries),
	})
}

func (s *Server) handleAddLearning(w http.ResponseWriter, r *http.Request) {
	var req LearningRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	entry, err := learnings.NewStore(s.learnerBackend(r)).Add(r.Context(), req.Text, req.Course)
	if err != nil {
		if errors.Is(err, learnings.ErrEmptyText) {
			respondError(w, http.StatusBadRequest, "validation_error", "text is required")
			return
		}
		respondInternal(w, r, err, "failed to add learning")
		return
	}

	s.publish(r, EventLearningAdded, entry)
	respondJSON(w, http.StatusCreated, entry)
}
