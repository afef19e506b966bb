package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsphere/learner-store/internal/models"
	"github.com/skillsphere/learner-store/internal/projects"
)

type projectList struct {
	Projects []models.ProjectRecord `json:"projects"`
	Total    int                    `json:"total"`
}

func TestProjects_CreateUpdateDelete(t *testing.T) {
	s, _ := newTestServer(t)
	path := learnerPath + "/projects"

	var list projectList
	rec, env := do(t, s, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, env, &list)
	assert.Zero(t, list.Total)
	assert.NotNil(t, list.Projects)

	var created models.ProjectRecord
	rec, env = do(t, s, http.MethodPost, path, ProjectRequest{
		Draft:    projects.Draft{Title: "Portfolio", Description: "Personal site"},
		TagsText: "web, , design",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decodeData(t, env, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "2026-03-14", created.CreatedDate)
	assert.Equal(t, models.ProjectInProgress, created.Status)
	assert.Equal(t, []string{"web", "design"}, created.Tags)

	var updated models.ProjectRecord
	rec, env = do(t, s, http.MethodPut, path+"/"+created.ID, ProjectRequest{
		Draft: projects.Draft{Title: "Portfolio v2", Status: models.ProjectCompleted, Progress: 100},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, env, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.CreatedDate, updated.CreatedDate)
	assert.Equal(t, "Portfolio v2", updated.Title)
	assert.Equal(t, []string{"web", "design"}, updated.Tags)

	var summary models.ProjectSummary
	_, env = do(t, s, http.MethodGet, path+"/summary", nil)
	decodeData(t, env, &summary)
	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 100.0, summary.AverageProgress)

	rec, _ = do(t, s, http.MethodPut, path+"/missing", ProjectRequest{Draft: projects.Draft{Title: "x"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = do(t, s, http.MethodDelete, path+"/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, env, &list)
	assert.Zero(t, list.Total)

	rec, _ = do(t, s, http.MethodDelete, path+"/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjects_CreateValidation(t *testing.T) {
	s, _ := newTestServer(t)
	path := learnerPath + "/projects"

	for name, draft := range map[string]projects.Draft{
		"no title":     {},
		"bad status":   {Title: "x", Status: "archived"},
		"bad due date": {Title: "x", DueDate: "14/03/2026"},
		"bad progress": {Title: "x", Progress: 101},
	} {
		t.Run(name, func(t *testing.T) {
			rec, env := do(t, s, http.MethodPost, path, ProjectRequest{Draft: draft})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "validation_error", env.Error.Code)
		})
	}
}

func TestProjects_SaveIsVerbatim(t *testing.T) {
	s, _ := newTestServer(t)
	path := learnerPath + "/projects"

	// duplicate IDs and out-of-range progress are kept as given
	body := []models.ProjectRecord{
		{ID: "p1", Title: "One", Status: models.ProjectPaused, CreatedDate: "2026-01-01", Tags: []string{}, Progress: 150},
		{ID: "p1", Title: "One again", Status: models.ProjectCompleted, CreatedDate: "2026-01-02", Tags: []string{"x"}, Progress: 10},
	}

	rec, _ := do(t, s, http.MethodPut, path, body)
	require.Equal(t, http.StatusOK, rec.Code)

	var list projectList
	_, env := do(t, s, http.MethodGet, path, nil)
	decodeData(t, env, &list)
	assert.Equal(t, body, list.Projects)

	rec, env = do(t, s, http.MethodPut, path, `{"not":"a list"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", env.Error.Code)
}

func TestProjects_FromCourse(t *testing.T) {
	s, _ := newTestServer(t)
	path := learnerPath + "/projects/from-course/"

	var created models.ProjectRecord
	rec, env := do(t, s, http.MethodPost, path+"css", nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decodeData(t, env, &created)
	assert.Equal(t, "CSS Layouts", created.Title)
	assert.Equal(t, []string{"Web Development", "Free Course"}, created.Tags)

	rec, env = do(t, s, http.MethodPost, path+"react", FromCourseRequest{Title: "Todo app"})
	require.Equal(t, http.StatusCreated, rec.Code)
	decodeData(t, env, &created)
	assert.Equal(t, "Todo app", created.Title)
	assert.Equal(t, []string{"Web Development", "Paid Course"}, created.Tags)

	var list projectList
	_, env = do(t, s, http.MethodGet, learnerPath+"/projects", nil)
	decodeData(t, env, &list)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "Todo app", list.Projects[0].Title)

	rec, _ = do(t, s, http.MethodPost, path+"nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLearnings(t *testing.T) {
	s, _ := newTestServer(t)
	path := learnerPath + "/learnings"

	rec, env := do(t, s, http.MethodPost, path, LearningRequest{Text: "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", env.Error.Code)

	var entry models.LearningEntry
	rec, env = do(t, s, http.MethodPost, path, LearningRequest{Text: " flexbox gap ", Course: "CSS Layouts"})
	require.Equal(t, http.StatusCreated, rec.Code)
	decodeData(t, env, &entry)
	assert.Equal(t, "flexbox gap", entry.Text)

	_, _ = do(t, s, http.MethodPost, path, LearningRequest{Text: "grid areas"})

	var list struct {
		Learnings []models.LearningEntry `json:"learnings"`
		Total     int                    `json:"total"`
	}
	_, env = do(t, s, http.MethodGet, path, nil)
	decodeData(t, env, &list)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "grid areas", list.Learnings[0].Text)
}
