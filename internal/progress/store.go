// Package progress persists a learner's enrollments, learned hours and
// certification count as one JSON record in a key-value backend.
package progress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/skillsphere/learner-store/internal/models"
	"github.com/skillsphere/learner-store/internal/storage"
)

// Key is the backend key holding the progress record
const Key = "ss_user_progress_v1"

// LoadStatus tells how Inspect obtained the record
type LoadStatus string

const (
	StatusExisting    LoadStatus = "existing"    // persisted record decoded
	StatusInitialized LoadStatus = "initialized" // nothing stored yet
	StatusRecovered   LoadStatus = "recovered"   // stored record was unreadable and got replaced
)

// Store reads and mutates the progress record.
// It does not serialize concurrent callers; each mutation is one read
// followed by one full write.
type Store struct {
	backend storage.Backend
}

// NewStore creates a progress store over backend
func NewStore(backend storage.Backend) *Store {
	return &Store{backend: backend}
}

// Load returns the current record, creating and persisting a zeroed one
// when nothing usable is stored. Only backend failures are errors.
func (s *Store) Load(ctx context.Context) (*models.ProgressRecord, error) {
	record, _, err := s.Inspect(ctx)
	return record, err
}

// Inspect is Load that also reports whether the record was just created
// or recovered from corrupt data.
func (s *Store) Inspect(ctx context.Context) (*models.ProgressRecord, LoadStatus, error) {
	raw, err := s.backend.Get(ctx, Key)
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return s.initialize(ctx, StatusInitialized)
		}
		return nil, "", fmt.Errorf("failed to read progress: %w", err)
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return s.initialize(ctx, StatusInitialized)
	}

	record, err := decode(raw)
	if err != nil {
		slog.Warn("discarding corrupt progress record", "error", err, "bytes", len(raw))
		return s.initialize(ctx, StatusRecovered)
	}

	return record, StatusExisting, nil
}

// Enroll prepends course to the enrollments. It is rejected when the
// learner already has MaxEnrollments courses or is enrolled in course.ID,
// checked in that order.
func (s *Store) Enroll(ctx context.Context, course models.EnrolledCourse) (Result, error) {
	record, err := s.Load(ctx)
	if err != nil {
		return Result{}, err
	}

	if len(record.EnrolledCourses) >= models.MaxEnrollments {
		return rejected(OutcomeEnrollmentLimitReached,
			fmt.Sprintf("You can only enroll in up to %d courses.", models.MaxEnrollments)), nil
	}

	if record.IsEnrolled(course.ID) {
		return rejected(OutcomeAlreadyEnrolled, "Course already enrolled."), nil
	}

	courses := make([]models.EnrolledCourse, 0, len(record.EnrolledCourses)+1)
	courses = append(courses, course)
	record.EnrolledCourses = append(courses, record.EnrolledCourses...)

	if err := s.save(ctx, record); err != nil {
		return Result{}, err
	}

	slog.Debug("course enrolled", "course_id", course.ID, "total_hours", record.TotalHours)
	return succeeded(OutcomeEnrolled, "Course enrolled successfully."), nil
}

// Cancel removes the enrollment with courseID
func (s *Store) Cancel(ctx context.Context, courseID string) (Result, error) {
	record, err := s.Load(ctx)
	if err != nil {
		return Result{}, err
	}

	remaining := make([]models.EnrolledCourse, 0, len(record.EnrolledCourses))
	for _, c := range record.EnrolledCourses {
		if c.ID != courseID {
			remaining = append(remaining, c)
		}
	}

	if len(remaining) == len(record.EnrolledCourses) {
		return rejected(OutcomeNotFound, "Course not found in enrollments."), nil
	}

	record.EnrolledCourses = remaining
	if err := s.save(ctx, record); err != nil {
		return Result{}, err
	}

	slog.Debug("enrollment cancelled", "course_id", courseID, "total_hours", record.TotalHours)
	return succeeded(OutcomeCancelled, "Enrollment cancelled."), nil
}

// AddCertification adds delta to the certification counter, never going
// below zero, and returns the saved record.
func (s *Store) AddCertification(ctx context.Context, delta int) (*models.ProgressRecord, error) {
	record, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	record.Certifications += delta
	if err := s.save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// EnrolledCourses returns the enrollments, newest first
func (s *Store) EnrolledCourses(ctx context.Context) ([]models.EnrolledCourse, error) {
	record, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return record.EnrolledCourses, nil
}

func (s *Store) initialize(ctx context.Context, status LoadStatus) (*models.ProgressRecord, LoadStatus, error) {
	record := models.NewProgressRecord()
	if err := s.save(ctx, record); err != nil {
		return nil, "", err
	}
	return record, status, nil
}

// save restores the derived fields and writes the whole record
func (s *Store) save(ctx context.Context, record *models.ProgressRecord) error {
	if record.EnrolledCourses == nil {
		record.EnrolledCourses = []models.EnrolledCourse{}
	}
	record.Recalculate()
	if record.Certifications < 0 {
		record.Certifications = 0
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}

	if err := s.backend.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("failed to write progress: %w", err)
	}
	return nil
}

func decode(raw []byte) (*models.ProgressRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	if trimmed[0] != '{' {
		return nil, errors.New("progress record is not a JSON object")
	}

	var record models.ProgressRecord
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return nil, err
	}

	if record.EnrolledCourses == nil {
		record.EnrolledCourses = []models.EnrolledCourse{}
	}
	return &record, nil
}
