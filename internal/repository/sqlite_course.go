package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/domain"
)

// SQLiteCourseRepo implements CourseRepo using a SQLite database.
type SQLiteCourseRepo struct {
	db db.DBTX
}

// NewSQLiteCourseRepo creates a new SQLiteCourseRepo.
func NewSQLiteCourseRepo(conn db.DBTX) *SQLiteCourseRepo {
	return &SQLiteCourseRepo{db: conn}
}

const courseColumns = `code, title, duration, start_kinds, prerequisites, corequisites, exclusions`

func (r *SQLiteCourseRepo) Upsert(ctx context.Context, catalogID string, c *domain.Course) error {
	prereq, err := jsonOrNull(c.Prerequisites)
	if err != nil {
		return fmt.Errorf("encoding prerequisites of %s: %w", c.Code, err)
	}
	coreq, err := jsonOrNull(c.Corequisites)
	if err != nil {
		return fmt.Errorf("encoding corequisites of %s: %w", c.Code, err)
	}
	var exclusions any
	if len(c.Exclusions) > 0 {
		if exclusions, err = jsonOrNull(c.Exclusions); err != nil {
			return fmt.Errorf("encoding exclusions of %s: %w", c.Code, err)
		}
	}

	query := `INSERT INTO courses (code, catalog_id, title, duration, start_kinds, prerequisites, corequisites, exclusions, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET
			catalog_id = excluded.catalog_id,
			title = excluded.title,
			duration = excluded.duration,
			start_kinds = excluded.start_kinds,
			prerequisites = excluded.prerequisites,
			corequisites = excluded.corequisites,
			exclusions = excluded.exclusions,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		c.Code,
		catalogID,
		c.Title,
		string(c.Duration),
		startKindsToString(c.StartKinds),
		prereq,
		coreq,
		exclusions,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting course %s: %w", c.Code, err)
	}
	return nil
}

func (r *SQLiteCourseRepo) GetByCode(ctx context.Context, code string) (*domain.Course, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+courseColumns+` FROM courses WHERE code = ?`, domain.NormalizeCode(code))
	c, err := scanCourse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("course %s: %w", code, ErrNotFound)
	}
	return c, err
}

func (r *SQLiteCourseRepo) List(ctx context.Context) ([]*domain.Course, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+courseColumns+` FROM courses ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*domain.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}
	return courses, nil
}

func (r *SQLiteCourseRepo) Snapshot(ctx context.Context) (map[string]*domain.Course, error) {
	courses, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*domain.Course, len(courses))
	for _, c := range courses {
		out[c.Code] = c
	}
	return out, nil
}

func (r *SQLiteCourseRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting courses: %w", err)
	}
	return n, nil
}

func (r *SQLiteCourseRepo) DeleteMissing(ctx context.Context, catalogID string, keep []string) (int, error) {
	query := `DELETE FROM courses WHERE catalog_id = ?`
	args := []any{catalogID}
	if len(keep) > 0 {
		query += ` AND code NOT IN (?` + strings.Repeat(`, ?`, len(keep)-1) + `)`
		for _, code := range keep {
			args = append(args, code)
		}
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting stale courses: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted courses: %w", err)
	}
	return int(n), nil
}

func scanCourse(row rowScanner) (*domain.Course, error) {
	var c domain.Course
	var duration, startKinds string
	var prereq, coreq, exclusions sql.NullString

	if err := row.Scan(&c.Code, &c.Title, &duration, &startKinds, &prereq, &coreq, &exclusions); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning course: %w", err)
	}
	c.Duration = domain.Duration(duration)
	c.StartKinds = parseStartKinds(startKinds)

	if err := decodeNullableJSON(prereq, &c.Prerequisites); err != nil {
		return nil, fmt.Errorf("decoding prerequisites of %s: %w", c.Code, err)
	}
	if err := decodeNullableJSON(coreq, &c.Corequisites); err != nil {
		return nil, fmt.Errorf("decoding corequisites of %s: %w", c.Code, err)
	}
	if err := decodeNullableJSON(exclusions, &c.Exclusions); err != nil {
		return nil, fmt.Errorf("decoding exclusions of %s: %w", c.Code, err)
	}
	return &c, nil
}
