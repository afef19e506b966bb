package models

import "strings"

// CourseKind distinguishes free catalog courses from paid ones
type CourseKind string

const (
	CourseFree CourseKind = "free"
	CoursePaid CourseKind = "paid"
)

// Valid reports whether k is a known course kind
func (k CourseKind) Valid() bool {
	return k == CourseFree || k == CoursePaid
}

// EnrolledCourse is a course snapshot stored in a learner's progress record.
// Two courses are the same enrollment when their IDs match.
type EnrolledCourse struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Instructor    string  `json:"instructor,omitempty"`
	Category      string  `json:"category,omitempty"`
	Language      string  `json:"language,omitempty"` // English | Hindi
	DurationHours float64 `json:"durationHours"`
	Image         string  `json:"image,omitempty"`
	Link          string  `json:"link"`
}

// CatalogCourse is a course offered by the platform catalog
type CatalogCourse struct {
	ID            string     `json:"id" yaml:"id"`
	Title         string     `json:"title" yaml:"title"`
	Description   string     `json:"description,omitempty" yaml:"description"`
	Instructor    string     `json:"instructor,omitempty" yaml:"instructor"`
	Category      string     `json:"category,omitempty" yaml:"category"`
	Language      string     `json:"language,omitempty" yaml:"language"`
	DurationHours float64    `json:"durationHours" yaml:"duration_hours"`
	Image         string     `json:"image,omitempty" yaml:"image"`
	Link          string     `json:"link" yaml:"link"`
	Kind          CourseKind `json:"kind" yaml:"kind"`
}

// Enrolled returns the snapshot stored when a learner enrolls in c
func (c *CatalogCourse) Enrolled() EnrolledCourse {
	return EnrolledCourse{
		ID:            c.ID,
		Title:         c.Title,
		Instructor:    c.Instructor,
		Category:      c.Category,
		Language:      c.Language,
		DurationHours: c.DurationHours,
		Image:         c.Image,
		Link:          c.Link,
	}
}

// Matches reports whether the lowercase query occurs in the title,
// instructor or category. An empty query matches everything.
func (c *CatalogCourse) Matches(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Title), query) ||
		strings.Contains(strings.ToLower(c.Instructor), query) ||
		strings.Contains(strings.ToLower(c.Category), query)
}
