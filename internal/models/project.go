package models

// ProjectStatus represents the state of a learner project
type ProjectStatus string

const (
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectPaused     ProjectStatus = "paused"
)

// Valid reports whether s is one of the known statuses
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectInProgress, ProjectCompleted, ProjectPaused:
		return true
	}
	return false
}

// ProjectRecord is a user-created project
type ProjectRecord struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	CreatedDate string        `json:"createdDate"`       // YYYY-MM-DD
	DueDate     string        `json:"dueDate,omitempty"` // YYYY-MM-DD
	Thumbnail   string        `json:"thumbnail,omitempty"`
	Tags        []string      `json:"tags"`
	Progress    int           `json:"progress"` // 0-100
}

// ProjectSummary aggregates a project list by status
type ProjectSummary struct {
	Total           int     `json:"total"`
	InProgress      int     `json:"inProgress"`
	Completed       int     `json:"completed"`
	Paused          int     `json:"paused"`
	AverageProgress float64 `json:"averageProgress"`
}
