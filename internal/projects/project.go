package projects

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skillsphere/learner-store/internal/models"
)

// DateLayout is the calendar date format of CreatedDate and DueDate
const DateLayout = "2006-01-02"

// Draft holds the user-editable fields of a project
type Draft struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status,omitempty"`
	DueDate     string               `json:"dueDate,omitempty"`
	Thumbnail   string               `json:"thumbnail,omitempty"`
	Tags        []string             `json:"tags,omitempty"`
	Progress    int                  `json:"progress,omitempty"`
}

// Validate checks a draft before it becomes a project
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if d.Status != "" && !d.Status.Valid() {
		return fmt.Errorf("invalid status: %q", d.Status)
	}
	if d.DueDate != "" {
		if _, err := time.Parse(DateLayout, d.DueDate); err != nil {
			return fmt.Errorf("dueDate must be YYYY-MM-DD: %q", d.DueDate)
		}
	}
	if d.Progress < 0 || d.Progress > 100 {
		return fmt.Errorf("progress must be between 0 and 100: %d", d.Progress)
	}
	return nil
}

// New creates a project from d with a fresh ID, created on now.
// Status defaults to in-progress.
func New(d Draft, now time.Time) models.ProjectRecord {
	status := d.Status
	if status == "" {
		status = models.ProjectInProgress
	}

	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}

	return models.ProjectRecord{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(d.Title),
		Description: d.Description,
		Status:      status,
		CreatedDate: now.Format(DateLayout),
		DueDate:     d.DueDate,
		Thumbnail:   d.Thumbnail,
		Tags:        tags,
		Progress:    d.Progress,
	}
}

// FromCourse creates a project seeded from a catalog course. Empty title
// and description fall back to the course.
func FromCourse(c *models.CatalogCourse, title, description string, now time.Time) models.ProjectRecord {
	if strings.TrimSpace(title) == "" {
		title = c.Title
	}
	if description == "" {
		description = "Project based on " + c.Title
	}

	tags := []string{}
	if c.Category != "" {
		tags = append(tags, c.Category)
	}
	switch c.Kind {
	case models.CourseFree:
		tags = append(tags, "Free Course")
	case models.CoursePaid:
		tags = append(tags, "Paid Course")
	}

	return New(Draft{
		Title:       title,
		Description: description,
		Thumbnail:   c.Image,
		Tags:        tags,
	}, now)
}

// ParseTags splits a comma separated tag string, dropping blanks
func ParseTags(s string) []string {
	tags := []string{}
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Prepend returns a new list with p first
func Prepend(list []models.ProjectRecord, p models.ProjectRecord) []models.ProjectRecord {
	out := make([]models.ProjectRecord, 0, len(list)+1)
	out = append(out, p)
	return append(out, list...)
}

// Remove returns list without the project id and whether it was present
func Remove(list []models.ProjectRecord, id string) ([]models.ProjectRecord, bool) {
	out := make([]models.ProjectRecord, 0, len(list))
	for _, p := range list {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out, len(out) != len(list)
}

// Replace returns a new list with the project sharing p.ID swapped for p,
// keeping its position. It reports false when no project has that ID.
func Replace(list []models.ProjectRecord, p models.ProjectRecord) ([]models.ProjectRecord, bool) {
	out := make([]models.ProjectRecord, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == p.ID {
			out[i] = p
			return out, true
		}
	}
	return list, false
}

// Find returns the project with id
func Find(list []models.ProjectRecord, id string) (models.ProjectRecord, bool) {
	for _, p := range list {
		if p.ID == id {
			return p, true
		}
	}
	return models.ProjectRecord{}, false
}

// Apply copies the draft's editable fields onto p. ID and CreatedDate are kept.
func Apply(p models.ProjectRecord, d Draft) models.ProjectRecord {
	p.Title = strings.TrimSpace(d.Title)
	p.Description = d.Description
	if d.Status != "" {
		p.Status = d.Status
	}
	p.DueDate = d.DueDate
	if d.Thumbnail != "" {
		p.Thumbnail = d.Thumbnail
	}
	if d.Tags != nil {
		p.Tags = d.Tags
	}
	p.Progress = d.Progress
	return p
}

// Summarize counts projects per status and averages their progress
func Summarize(list []models.ProjectRecord) models.ProjectSummary {
	var sum models.ProjectSummary
	total := 0
	for _, p := range list {
		sum.Total++
		total += p.Progress
		switch p.Status {
		case models.ProjectInProgress:
			sum.InProgress++
		case models.ProjectCompleted:
			sum.Completed++
		case models.ProjectPaused:
			sum.Paused++
		}
	}
	if sum.Total > 0 {
		sum.AverageProgress = float64(total) / float64(sum.Total)
	}
	return sum
}
