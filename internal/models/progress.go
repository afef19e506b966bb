package models

// MaxEnrollments caps the number of simultaneously enrolled courses
const MaxEnrollments = 4

// ProgressRecord is the single persisted progress state of a learner
type ProgressRecord struct {
	EnrolledCourses []EnrolledCourse `json:"enrolledCourses"`
	TotalHours      float64          `json:"totalHours"`
	Certifications  int              `json:"certifications"`
}

// NewProgressRecord returns the zeroed record used for new learners
func NewProgressRecord() *ProgressRecord {
	return &ProgressRecord{EnrolledCourses: []EnrolledCourse{}}
}

// IsEnrolled reports whether a course with the given ID is enrolled
func (p *ProgressRecord) IsEnrolled(courseID string) bool {
	for _, c := range p.EnrolledCourses {
		if c.ID == courseID {
			return true
		}
	}
	return false
}

// Recalculate sets TotalHours to the sum over EnrolledCourses
func (p *ProgressRecord) Recalculate() {
	p.TotalHours = SumHours(p.EnrolledCourses)
}

// SumHours adds DurationHours in list order
func SumHours(courses []EnrolledCourse) float64 {
	var total float64
	for _, c := range courses {
		total += c.DurationHours
	}
	return total
}
