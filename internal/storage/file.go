package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

const coursesFile = "courses.json"

type courseFile struct {
	Courses   []teetime.Course `json:"courses"`
	UpdatedAt string           `json:"updated_at,omitempty"`
}

// FileStore keeps courses in a JSON file
type FileStore struct {
	mu      sync.Mutex
	dataDir string
}

// NewFileStore creates a FileStore rooted at dataDir, creating the directory if needed
func NewFileStore(dataDir string) (*FileStore, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &FileStore{dataDir: dataDir}, nil
}

// Path returns the location of the courses file
func (s *FileStore) Path() string {
	return filepath.Join(s.dataDir, coursesFile)
}

// List returns courses in registration order
func (s *FileStore) List(_ context.Context) ([]teetime.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// Get finds a course by name, ignoring case
func (s *FileStore) Get(_ context.Context, name string) (teetime.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	courses, err := s.load()
	if err != nil {
		return teetime.Course{}, err
	}
	if i := indexOf(courses, name); i >= 0 {
		return courses[i], nil
	}
	return teetime.Course{}, ErrCourseNotFound
}

// Add registers a new course
func (s *FileStore) Add(_ context.Context, course teetime.Course) error {
	course, err := Validate(course)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	courses, err := s.load()
	if err != nil {
		return err
	}
	if indexOf(courses, course.Name) >= 0 {
		return ErrCourseExists
	}
	return s.save(append(courses, course))
}

// Remove deletes a course by name, ignoring case
func (s *FileStore) Remove(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	courses, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(courses, name)
	if i < 0 {
		return ErrCourseNotFound
	}
	return s.save(append(courses[:i], courses[i+1:]...))
}

func (s *FileStore) load() ([]teetime.Course, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			// Nothing registered yet
			return []teetime.Course{}, nil
		}
		return nil, fmt.Errorf("reading courses: %w", err)
	}

	var file courseFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing courses: %w", err)
	}
	if file.Courses == nil {
		file.Courses = []teetime.Course{}
	}
	return file.Courses, nil
}

// save writes through a temp file so a crash never leaves a truncated list.
func (s *FileStore) save(courses []teetime.Course) error {
	data, err := json.MarshalIndent(courseFile{
		Courses:   courses,
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding courses: %w", err)
	}

	tmp := s.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing courses: %w", err)
	}
	if err := os.Rename(tmp, s.Path()); err != nil {
		return fmt.Errorf("replacing courses: %w", err)
	}
	return nil
}

func indexOf(courses []teetime.Course, name string) int {
	key := nameKey(name)
	for i, c := range courses {
		if nameKey(c.Name) == key {
			return i
		}
	}
	return -1
}
