package adapter

import (
	"errors"
	"testing"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

func TestRegistryResolve(t *testing.T) {
	first := &stubAdapter{name: "first"}
	second := &stubAdapter{name: "second"}

	r := NewRegistry()
	r.Register(first, Match{Names: []string{"Pine Valley"}, URLContains: []string{"example.com"}})
	r.Register(second, Match{Names: []string{"Oak Hill"}, URLContains: []string{"example.com", "other.org"}})

	tests := []struct {
		name   string
		course teetime.Course
		want   string
	}{
		{"exact name", teetime.Course{Name: "Pine Valley"}, "first"},
		{"name is case-insensitive", teetime.Course{Name: "  oak HILL "}, "second"},
		{"name beats url", teetime.Course{Name: "Oak Hill", URL: "https://example.com/x"}, "second"},
		{"url substring", teetime.Course{Name: "Other", URL: "https://book.other.org/"}, "second"},
		{"url tie goes to first registered", teetime.Course{Name: "Other", URL: "https://EXAMPLE.com/"}, "first"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Resolve(tt.course)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got.Name() != tt.want {
				t.Errorf("Resolve() = %s, want %s", got.Name(), tt.want)
			}
		})
	}
}

func TestRegistryResolve_Unsupported(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubAdapter{name: "only"}, Match{URLContains: []string{"example.com"}})

	_, err := r.Resolve(teetime.Course{Name: "Nowhere", URL: "https://unknown.test"})
	if !IsUnsupported(err) {
		t.Fatalf("Resolve() error = %v, want UnsupportedCourseError", err)
	}
	var target *UnsupportedCourseError
	if !errors.As(err, &target) || target.Course != "Nowhere" {
		t.Errorf("error course = %+v, want Nowhere", target)
	}
	if err.Error() != "unsupported course" {
		t.Errorf("Error() = %q, want %q", err.Error(), "unsupported course")
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry(Options{})

	if got := r.Names(); len(got) != 4 {
		t.Fatalf("Names() = %v, want 4 adapters", got)
	}

	tests := []struct {
		course teetime.Course
		want   string
	}{
		{teetime.Course{Name: "Neshanic"}, KennaName},
		{teetime.Course{Name: "Galloping Hill"}, EZLinksName},
		{teetime.Course{Name: "Francis Byrne"}, ForeUpName},
		{teetime.Course{Name: "X", URL: "https://somerset-group-v2.book.teeitup.com/?course=7083"}, KennaName},
		{teetime.Course{Name: "X", URL: "https://phx-api-be-east-1b.kenna.io/v2/tee-times"}, KennaName},
		{teetime.Course{Name: "X", URL: "https://gallopinghillgolf.ezlinksgolf.com/"}, EZLinksName},
		{teetime.Course{Name: "X", URL: "https://foreupsoftware.com/index.php/booking/1/2"}, ForeUpName},
		{teetime.Course{Name: "X", URL: "https://bethpage.quick18.com/teetimes/searchmatrix"}, Quick18Name},
	}
	for _, tt := range tests {
		got, err := r.Resolve(tt.course)
		if err != nil {
			t.Errorf("Resolve(%+v) error = %v", tt.course, err)
			continue
		}
		if got.Name() != tt.want {
			t.Errorf("Resolve(%+v) = %s, want %s", tt.course, got.Name(), tt.want)
		}
	}

	if _, err := r.Resolve(teetime.Course{Name: "Unknown Links"}); !IsUnsupported(err) {
		t.Errorf("Resolve(unknown) error = %v, want UnsupportedCourseError", err)
	}
}
