package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pfrederiksen/teetime-scanner/internal/teetime"
)

//go:embed migrations/*.sql
var migrations embed.FS

// PostgresStore keeps courses in Postgres
type PostgresStore struct {
	db *pgxpool.Pool
}

// OpenPostgres connects to dsn, applies pending migrations and returns a store.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if err := Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return NewPostgresStore(pool), nil
}

// NewPostgresStore wraps an existing pool. The schema must already be migrated.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate applies the embedded goose migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("opening migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("creating migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Close releases the pool.
func (s *PostgresStore) Close() {
	s.db.Close()
}

func (s *PostgresStore) List(ctx context.Context) ([]teetime.Course, error) {
	rows, err := s.db.Query(ctx, `SELECT name, url FROM courses ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	courses, err := pgx.CollectRows(rows, scanCourse)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	if courses == nil {
		courses = []teetime.Course{}
	}
	return courses, nil
}

func (s *PostgresStore) Get(ctx context.Context, name string) (teetime.Course, error) {
	var c teetime.Course
	err := s.db.QueryRow(ctx, `SELECT name, url FROM courses WHERE lower(name) = $1`, nameKey(name)).Scan(&c.Name, &c.URL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return teetime.Course{}, ErrCourseNotFound
		}
		return teetime.Course{}, fmt.Errorf("getting course: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) Add(ctx context.Context, course teetime.Course) error {
	course, err := Validate(course)
	if err != nil {
		return err
	}

	const insertSQL = `
		INSERT INTO courses (name, url, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT ((lower(name))) DO NOTHING`

	tag, err := s.db.Exec(ctx, insertSQL, course.Name, course.URL)
	if err != nil {
		return fmt.Errorf("adding course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCourseExists
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, name string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM courses WHERE lower(name) = $1`, nameKey(name))
	if err != nil {
		return fmt.Errorf("removing course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCourseNotFound
	}
	return nil
}

func scanCourse(row pgx.CollectableRow) (teetime.Course, error) {
	var c teetime.Course
	err := row.Scan(&c.Name, &c.URL)
	return c, err
}
