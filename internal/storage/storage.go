package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

var (
	ErrCourseExists   = errors.New("course already exists")
	ErrCourseNotFound = errors.New("course not found")
)

// CourseStore manages registered courses
type CourseStore interface {
	List(ctx context.Context) ([]teetime.Course, error)
	Get(ctx context.Context, name string) (teetime.Course, error)
	Add(ctx context.Context, course teetime.Course) error
	Remove(ctx context.Context, name string) error
}

// InvalidCourseError reports a course rejected by Validate.
type InvalidCourseError struct {
	Field   string
	Message string
}

func (e *InvalidCourseError) Error() string {
	return e.Message
}

// Validate trims the course and checks it can be stored.
func Validate(course teetime.Course) (teetime.Course, error) {
	course.Name = strings.TrimSpace(course.Name)
	course.URL = strings.TrimSpace(course.URL)

	if course.Name == "" {
		return course, &InvalidCourseError{Field: "name", Message: "course name is required"}
	}
	if course.URL == "" {
		return course, &InvalidCourseError{Field: "url", Message: "course url is required"}
	}
	u, err := url.Parse(course.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return course, &InvalidCourseError{Field: "url", Message: fmt.Sprintf("course url %q must be an absolute http(s) url", course.URL)}
	}
	return course, nil
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

var (
	_ CourseStore = (*FileStore)(nil)
	_ CourseStore = (*PostgresStore)(nil)
)
