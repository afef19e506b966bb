package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/skillsphere/learner-store/internal/models"
)

// Loader manages loading and caching of catalog courses
type Loader struct {
	mu      sync.RWMutex
	courses map[string]*models.CatalogCourse
}

// Filter narrows List results. Empty fields match everything.
type Filter struct {
	Query    string
	Category string
	Language string
	Kind     models.CourseKind
}

// catalogFile is the on-disk YAML layout
type catalogFile struct {
	Kind    models.CourseKind      `yaml:"kind"`
	Courses []models.CatalogCourse `yaml:"courses"`
}

// NewLoader creates an empty catalog
func NewLoader() *Loader {
	return &Loader{
		courses: make(map[string]*models.CatalogCourse),
	}
}

// LoadFromDir loads every YAML file in dir. Files that fail to parse are
// skipped and logged.
func (l *Loader) LoadFromDir(dir string) error {
	slog.Info("loading course catalog", "dir", dir)

	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("failed to read catalog directory: %w", err)
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	loaded := 0
	for _, file := range files {
		n, err := l.LoadFromFile(file)
		if err != nil {
			slog.Warn("failed to load catalog file", "file", file, "error", err)
			continue
		}
		loaded += n
	}

	slog.Info("course catalog loaded", "courses", loaded, "files", len(files))
	return nil
}

// LoadFromFile loads the courses of one YAML file and returns how many were added
func (l *Loader) LoadFromFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}

	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return 0, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cf.Kind != "" && !cf.Kind.Valid() {
		return 0, fmt.Errorf("unknown course kind %q", cf.Kind)
	}

	added := 0
	for i := range cf.Courses {
		course := cf.Courses[i]
		if course.Kind == "" {
			course.Kind = cf.Kind
		}
		if err := validate(&course); err != nil {
			slog.Warn("skipping catalog course", "file", path, "index", i, "error", err)
			continue
		}
		l.Add(&course)
		added++
	}

	return added, nil
}

func validate(c *models.CatalogCourse) error {
	if c.ID == "" {
		return fmt.Errorf("course id is required")
	}
	if c.Title == "" {
		return fmt.Errorf("course %s: title is required", c.ID)
	}
	if c.DurationHours < 0 {
		return fmt.Errorf("course %s: negative duration", c.ID)
	}
	if !c.Kind.Valid() {
		return fmt.Errorf("course %s: unknown kind %q", c.ID, c.Kind)
	}
	return nil
}

// Add programmatically adds or replaces a course
func (l *Loader) Add(course *models.CatalogCourse) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.courses[course.ID] = course
}

// Get retrieves a course by ID
func (l *Loader) Get(id string) *models.CatalogCourse {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.courses[id]
}

// List returns the courses matching f, sorted by ID
func (l *Loader) List(f Filter) []*models.CatalogCourse {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	l.mu.RLock()
	result := make([]*models.CatalogCourse, 0, len(l.courses))
	for _, c := range l.courses {
		if f.Kind != "" && c.Kind != f.Kind {
			continue
		}
		if f.Category != "" && !strings.EqualFold(c.Category, f.Category) {
			continue
		}
		if f.Language != "" && !strings.EqualFold(c.Language, f.Language) {
			continue
		}
		if !c.Matches(query) {
			continue
		}
		result = append(result, c)
	}
	l.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Categories returns the distinct non-empty categories, sorted
func (l *Loader) Categories() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[string]bool)
	categories := []string{}
	for _, c := range l.courses {
		if c.Category != "" && !seen[c.Category] {
			seen[c.Category] = true
			categories = append(categories, c.Category)
		}
	}
	sort.Strings(categories)
	return categories
}

// Len returns the number of loaded courses
func (l *Loader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.courses)
}
