// Package learnings keeps a learner's journal of short study notes,
// newest first.
package learnings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skillsphere/learner-store/internal/models"
	"github.com/skillsphere/learner-store/internal/storage"
)

// Key is the backend key holding the journal
const Key = "ss_user_learnings_v1"

// ErrEmptyText is returned when a note has no text
var ErrEmptyText = errors.New("learning text is empty")

// Store reads and appends journal entries
type Store struct {
	backend storage.Backend
	now     func() time.Time
}

// NewStore creates a journal store over backend
func NewStore(backend storage.Backend) *Store {
	return &Store{backend: backend, now: time.Now}
}

// Load returns the journal; absent or unreadable data is an empty journal
func (s *Store) Load(ctx context.Context) ([]models.LearningEntry, error) {
	raw, err := s.backend.Get(ctx, Key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return []models.LearningEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read learnings: %w", err)
	}

	var entries []models.LearningEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		slog.Warn("ignoring unreadable learnings journal", "error", err)
		return []models.LearningEntry{}, nil
	}
	if entries == nil {
		entries = []models.LearningEntry{}
	}
	return entries, nil
}

// Add records text, optionally tied to a course title, at the front of the journal
func (s *Store) Add(ctx context.Context, text, course string) (models.LearningEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.LearningEntry{}, ErrEmptyText
	}

	entries, err := s.Load(ctx)
	if err != nil {
		return models.LearningEntry{}, err
	}

	entry := models.LearningEntry{
		ID:     uuid.New().String(),
		Text:   text,
		At:     s.now().UTC(),
		Course: strings.TrimSpace(course),
	}

	out := make([]models.LearningEntry, 0, len(entries)+1)
	out = append(out, entry)
	out = append(out, entries...)

	data, err := json.Marshal(out)
	if err != nil {
		return models.LearningEntry{}, fmt.Errorf("failed to marshal learnings: %w", err)
	}
	if err := s.backend.Set(ctx, Key, data); err != nil {
		return models.LearningEntry{}, fmt.Errorf("failed to write learnings: %w", err)
	}

	return entry, nil
}
