package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/skillsphere/learner-store/internal/models"
	"github.com/skillsphere/learner-store/internal/progress"
)

// Client is a Go SDK for the learner-store API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new learner-store client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is a non-2xx answer from the API
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error %d: %s - %s", e.Status, e.Code, e.Message)
}

// IsCode reports whether err is an *APIError with code
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// Progress is a learner's progress record with how the server obtained it
type Progress struct {
	models.ProgressRecord
	Status progress.LoadStatus
}

// EnrollmentResult is returned by successful enroll and cancel calls
type EnrollmentResult struct {
	Result   progress.Result        `json:"result"`
	Progress *models.ProgressRecord `json:"progress"`
}

// CourseFilter narrows ListCourses. Empty fields match everything.
type CourseFilter struct {
	Query    string
	Category string
	Language string
	Kind     models.CourseKind
}

// ProjectInput creates a project
type ProjectInput struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status,omitempty"`
	DueDate     string               `json:"dueDate,omitempty"`
	Thumbnail   string               `json:"thumbnail,omitempty"`
	Tags        []string             `json:"tags,omitempty"`
	TagsText    string               `json:"tagsText,omitempty"`
	Progress    int                  `json:"progress,omitempty"`
}

func learnerPath(learnerID, suffix string) string {
	return "/api/v1/learners/" + url.PathEscape(learnerID) + suffix
}

// GetProgress returns the learner's progress record
func (c *Client) GetProgress(ctx context.Context, learnerID string) (*Progress, error) {
	var p Progress
	header, err := c.call(ctx, http.MethodGet, learnerPath(learnerID, "/progress"), nil, &p.ProgressRecord)
	if err != nil {
		return nil, err
	}
	p.Status = progress.LoadStatus(header.Get("X-Progress-Status"))
	return &p, nil
}

// Enroll enrolls the learner in a catalog course. Rejections come back
// as *APIError with code enrollment_limit_reached or already_enrolled.
func (c *Client) Enroll(ctx context.Context, learnerID, courseID string) (*EnrollmentResult, error) {
	return c.enroll(ctx, learnerID, map[string]string{"courseId": courseID})
}

// EnrollCourse enrolls the learner in a course that is not in the catalog
func (c *Client) EnrollCourse(ctx context.Context, learnerID string, course models.EnrolledCourse) (*EnrollmentResult, error) {
	return c.enroll(ctx, learnerID, map[string]interface{}{"course": course})
}

func (c *Client) enroll(ctx context.Context, learnerID string, body interface{}) (*EnrollmentResult, error) {
	var result EnrollmentResult
	if _, err := c.call(ctx, http.MethodPost, learnerPath(learnerID, "/progress/enrollments"), body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CancelEnrollment removes an enrollment
func (c *Client) CancelEnrollment(ctx context.Context, learnerID, courseID string) (*EnrollmentResult, error) {
	var result EnrollmentResult
	path := learnerPath(learnerID, "/progress/enrollments/"+url.PathEscape(courseID))
	if _, err := c.call(ctx, http.MethodDelete, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AddCertification adjusts the certification counter by delta
func (c *Client) AddCertification(ctx context.Context, learnerID string, delta int) (*models.ProgressRecord, error) {
	var record models.ProgressRecord
	body := map[string]int{"delta": delta}
	if _, err := c.call(ctx, http.MethodPost, learnerPath(learnerID, "/progress/certifications"), body, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

type projectList struct {
	Projects []models.ProjectRecord `json:"projects"`
}

// ListProjects returns the learner's projects
func (c *Client) ListProjects(ctx context.Context, learnerID string) ([]models.ProjectRecord, error) {
	var list projectList
	if _, err := c.call(ctx, http.MethodGet, learnerPath(learnerID, "/projects"), nil, &list); err != nil {
		return nil, err
	}
	return list.Projects, nil
}

// SaveProjects replaces the learner's whole project list
func (c *Client) SaveProjects(ctx context.Context, learnerID string, list []models.ProjectRecord) error {
	if list == nil {
		list = []models.ProjectRecord{}
	}
	_, err := c.call(ctx, http.MethodPut, learnerPath(learnerID, "/projects"), list, nil)
	return err
}

// CreateProject adds a new project in front of the list
func (c *Client) CreateProject(ctx context.Context, learnerID string, in ProjectInput) (*models.ProjectRecord, error) {
	var p models.ProjectRecord
	if _, err := c.call(ctx, http.MethodPost, learnerPath(learnerID, "/projects"), in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProject removes a project
func (c *Client) DeleteProject(ctx context.Context, learnerID, projectID string) error {
	_, err := c.call(ctx, http.MethodDelete, learnerPath(learnerID, "/projects/"+url.PathEscape(projectID)), nil, nil)
	return err
}

// ListLearnings returns the learner's journal, newest first
func (c *Client) ListLearnings(ctx context.Context, learnerID string) ([]models.LearningEntry, error) {
	var list struct {
		Learnings []models.LearningEntry `json:"learnings"`
	}
	if _, err := c.call(ctx, http.MethodGet, learnerPath(learnerID, "/learnings"), nil, &list); err != nil {
		return nil, err
	}
	return list.Learnings, nil
}

// AddLearning records a journal note
func (c *Client) AddLearning(ctx context.Context, learnerID, text, course string) (*models.LearningEntry, error) {
	var entry models.LearningEntry
	body := map[string]string{"text": text, "course": course}
	if _, err := c.call(ctx, http.MethodPost, learnerPath(learnerID, "/learnings"), body, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListCourses returns catalog courses matching f
func (c *Client) ListCourses(ctx context.Context, f CourseFilter) ([]models.CatalogCourse, error) {
	params := url.Values{}
	if f.Query != "" {
		params.Set("q", f.Query)
	}
	if f.Category != "" {
		params.Set("category", f.Category)
	}
	if f.Language != "" {
		params.Set("language", f.Language)
	}
	if f.Kind != "" {
		params.Set("kind", string(f.Kind))
	}

	path := "/api/v1/catalog/courses"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var list struct {
		Courses []models.CatalogCourse `json:"courses"`
	}
	if _, err := c.call(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list.Courses, nil
}

// Health checks the API health
func (c *Client) Health(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodGet, "/health", nil, nil)
	return err
}

// call sends in as the JSON body and decodes the envelope's data into out
func (c *Client) call(ctx context.Context, method, path string, in, out interface{}) (http.Header, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	status, header, respBody, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	var result struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Error   *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		if status >= 400 {
			return nil, &APIError{Status: status, Code: "http_error", Message: string(respBody)}
		}
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if !result.Success || status >= 400 {
		apiErr := &APIError{Status: status, Code: "unknown_error"}
		if result.Error != nil {
			apiErr.Code = result.Error.Code
			apiErr.Message = result.Error.Message
		}
		return nil, apiErr
	}

	if out != nil && len(result.Data) > 0 {
		if err := json.Unmarshal(result.Data, out); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response data: %w", err)
		}
	}

	return header, nil
}

// doRequest performs an HTTP request
func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) (int, http.Header, []byte, error) {
	endpoint := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, resp.Header, respBody, nil
}
