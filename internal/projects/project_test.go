package projects

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsphere/learner-store/internal/models"
)

var now = time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)

func TestNew(t *testing.T) {
	p := New(Draft{Title: "  Weather App ", Description: "Forecasts"}, now)

	_, err := uuid.Parse(p.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Weather App", p.Title)
	assert.Equal(t, models.ProjectInProgress, p.Status)
	assert.Equal(t, "2024-03-09", p.CreatedDate)
	assert.Equal(t, []string{}, p.Tags)
	assert.Zero(t, p.Progress)

	other := New(Draft{Title: "Weather App"}, now)
	assert.NotEqual(t, p.ID, other.ID)
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		draft   Draft
		wantErr string
	}{
		{name: "ok", draft: Draft{Title: "T", Status: models.ProjectPaused, DueDate: "2024-05-01", Progress: 30}},
		{name: "missing title", draft: Draft{Title: "  "}, wantErr: "title is required"},
		{name: "bad status", draft: Draft{Title: "T", Status: "done"}, wantErr: "invalid status"},
		{name: "bad due date", draft: Draft{Title: "T", DueDate: "05/01/2024"}, wantErr: "dueDate"},
		{name: "progress too high", draft: Draft{Title: "T", Progress: 101}, wantErr: "progress"},
		{name: "progress negative", draft: Draft{Title: "T", Progress: -1}, wantErr: "progress"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestFromCourse(t *testing.T) {
	c := &models.CatalogCourse{
		ID:       "free-py",
		Title:    "Python Basics",
		Category: "Programming",
		Image:    "https://images.example.com/py.jpg",
		Kind:     models.CourseFree,
	}

	p := FromCourse(c, "", "", now)
	assert.Equal(t, "Python Basics", p.Title)
	assert.Equal(t, "Project based on Python Basics", p.Description)
	assert.Equal(t, "https://images.example.com/py.jpg", p.Thumbnail)
	assert.Equal(t, []string{"Programming", "Free Course"}, p.Tags)
	assert.Equal(t, models.ProjectInProgress, p.Status)

	named := FromCourse(c, "Scraper", "Scrape the news", now)
	assert.Equal(t, "Scraper", named.Title)
	assert.Equal(t, "Scrape the news", named.Description)
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"React", "Node.js", "MongoDB"}, ParseTags("React, Node.js,,  MongoDB ,"))
	assert.Equal(t, []string{}, ParseTags(""))
}

func TestListHelpers(t *testing.T) {
	list := sampleProjects()
	fresh := New(Draft{Title: "New"}, now)

	prepended := Prepend(list, fresh)
	require.Len(t, prepended, 3)
	assert.Equal(t, fresh.ID, prepended[0].ID)
	assert.Len(t, list, 2, "input list is not modified")

	found, ok := Find(prepended, "p1")
	require.True(t, ok)
	assert.Equal(t, "Portfolio Website", found.Title)

	_, ok = Find(prepended, "nope")
	assert.False(t, ok)

	edited := Apply(found, Draft{Title: "Portfolio v2", Status: models.ProjectInProgress, Progress: 60})
	replaced, ok := Replace(prepended, edited)
	require.True(t, ok)
	assert.Equal(t, "Portfolio v2", replaced[2].Title)
	assert.Equal(t, "2023-11-15", replaced[2].CreatedDate)
	assert.Equal(t, "Portfolio Website", prepended[2].Title, "input list is not modified")

	_, ok = Replace(prepended, models.ProjectRecord{ID: "nope"})
	assert.False(t, ok)

	removed, ok := Remove(replaced, "p2")
	require.True(t, ok)
	assert.Len(t, removed, 2)

	_, ok = Remove(removed, "p2")
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	list := append(sampleProjects(), New(Draft{Title: "x", Progress: 15}, now))

	sum := Summarize(list)
	assert.Equal(t, models.ProjectSummary{
		Total:           3,
		InProgress:      1,
		Completed:       1,
		Paused:          1,
		AverageProgress: 160.0 / 3.0,
	}, sum)

	assert.Equal(t, models.ProjectSummary{}, Summarize(nil))
}
