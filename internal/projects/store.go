// Package projects persists the learner's project list. The list is
// always written whole; callers build the complete list before saving.
package projects

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/skillsphere/learner-store/internal/models"
	"github.com/skillsphere/learner-store/internal/storage"
)

// Key is the backend key holding the project list
const Key = "ss_user_projects_v1"

// Store loads and saves the project list
type Store struct {
	backend storage.Backend
}

// NewStore creates a project store over backend
func NewStore(backend storage.Backend) *Store {
	return &Store{backend: backend}
}

// Load returns the stored list. Absent or unparseable data yields an
// empty list and nothing is written.
func (s *Store) Load(ctx context.Context) ([]models.ProjectRecord, error) {
	raw, err := s.backend.Get(ctx, Key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []models.ProjectRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}

	var list []models.ProjectRecord
	if err := json.Unmarshal(raw, &list); err != nil {
		slog.Warn("ignoring unreadable project list", "error", err, "bytes", len(raw))
		return []models.ProjectRecord{}, nil
	}

	if list == nil {
		list = []models.ProjectRecord{}
	}
	return list, nil
}

// Save replaces the stored list with list as given
func (s *Store) Save(ctx context.Context, list []models.ProjectRecord) error {
	if list == nil {
		list = []models.ProjectRecord{}
	}

	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal projects: %w", err)
	}

	if err := s.backend.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("failed to write projects: %w", err)
	}
	return nil
}
