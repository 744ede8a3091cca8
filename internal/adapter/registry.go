package adapter

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pfrederiksen/teetime-scanner/internal/metrics"
	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

// Match declares which courses an adapter serves.
type Match struct {
	Names       []string // exact course names, case-insensitive
	URLContains []string // substrings of the course URL, case-insensitive
}

type registration struct {
	adapter Adapter
	names   map[string]bool
	urls    []string
}

// Registry resolves courses to adapters. Registering a new adapter never
// requires touching an existing one.
type Registry struct {
	mu      sync.RWMutex
	entries []registration
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an adapter. Earlier registrations win URL ties.
func (r *Registry) Register(a Adapter, m Match) {
	reg := registration{adapter: a, names: make(map[string]bool)}
	for _, n := range m.Names {
		reg.names[nameKey(n)] = true
	}
	for _, u := range m.URLContains {
		reg.urls = append(reg.urls, strings.ToLower(u))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, reg)
}

// Resolve returns the adapter for course: an exact name match first, then the
// first URL substring match in registration order.
func (r *Registry) Resolve(course teetime.Course) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := nameKey(course.Name)
	for _, e := range r.entries {
		if e.names[name] {
			return e.adapter, nil
		}
	}

	courseURL := strings.ToLower(course.URL)
	if courseURL != "" {
		for _, e := range r.entries {
			for _, sub := range e.urls {
				if strings.Contains(courseURL, sub) {
					return e.adapter, nil
				}
			}
		}
	}

	return nil, &UnsupportedCourseError{Course: course.Name}
}

// Names lists registered adapter names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.adapter.Name())
	}
	return names
}

// Options configures the built-in adapters.
type Options struct {
	HTTPClient    *http.Client   // shared client; built from Timeout when nil
	Timeout       time.Duration  // per upstream call
	Location      *time.Location // zone for absolute upstream timestamps
	RetryAttempts int            // total attempts per fetch, <= 1 disables retry
	RetryDelay    time.Duration
	CacheTTL      time.Duration // <= 0 disables caching
	Metrics       *metrics.Recorder
}

// DefaultRegistry wires the built-in adapters and their decorators.
func DefaultRegistry(opts Options) *Registry {
	client := newHTTPClient(opts.HTTPClient, opts.Timeout)

	wrap := func(a Adapter) Adapter {
		a = WithMetrics(a, opts.Metrics)
		a = WithRetry(a, opts.RetryAttempts, opts.RetryDelay)
		return WithCache(a, opts.CacheTTL)
	}

	kenna := NewKenna(client, opts.Location)
	ezlinks := NewEZLinks(client, opts.Location)
	foreup := NewForeUp(client, opts.Location)
	quick18 := NewQuick18(client, opts.Location)

	r := NewRegistry()
	r.Register(wrap(kenna), Match{
		Names:       kenna.knownNames(),
		URLContains: []string{"teeitup.com", "teeitup.golf", "kenna.io"},
	})
	r.Register(wrap(ezlinks), Match{
		Names:       ezlinks.knownNames(),
		URLContains: []string{"ezlinksgolf.com"},
	})
	r.Register(wrap(foreup), Match{
		Names:       foreup.knownNames(),
		URLContains: []string{"foreupsoftware.com"},
	})
	r.Register(wrap(quick18), Match{
		URLContains: []string{"quick18.com"},
	})
	return r
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func knownNames[T any](known map[string]T) []string {
	names := make([]string, 0, len(known))
	for n := range known {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
