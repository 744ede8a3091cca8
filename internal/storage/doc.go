// Package storage persists the registered course list.
//
// Two CourseStore implementations share one contract: FileStore keeps a JSON
// file (courses.json) in the data directory, defaulting to
// ~/.local/share/teetime-scanner/, and PostgresStore keeps a courses table whose
// schema is applied from embedded goose migrations. Course names are unique
// without regard to case.
package storage
