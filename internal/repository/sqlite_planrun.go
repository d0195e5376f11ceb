package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/termplan/internal/db"
	"github.com/alexanderramin/termplan/internal/domain"
)

// SQLitePlanRunRepo implements PlanRunRepo using a SQLite database.
type SQLitePlanRunRepo struct {
	db db.DBTX
}

// NewSQLitePlanRunRepo creates a new SQLitePlanRunRepo.
func NewSQLitePlanRunRepo(conn db.DBTX) *SQLitePlanRunRepo {
	return &SQLitePlanRunRepo{db: conn}
}

// runTimeLayout has a fixed width so created_at sorts as text.
const runTimeLayout = "2006-01-02T15:04:05.000000Z07:00"

const planRunColumns = `id, fingerprint, targets, completed, max_terms, max_per_term, status,
	schedule, finish_term, course_count, duration_ms, created_at`

func (r *SQLitePlanRunRepo) Create(ctx context.Context, run *domain.PlanRun) error {
	targets, err := json.Marshal(nonNil(run.Targets))
	if err != nil {
		return fmt.Errorf("encoding targets: %w", err)
	}
	completed, err := json.Marshal(nonNil(run.Completed))
	if err != nil {
		return fmt.Errorf("encoding completed: %w", err)
	}
	var schedule any
	if len(run.Schedule) > 0 {
		if schedule, err = jsonOrNull(run.Schedule); err != nil {
			return fmt.Errorf("encoding schedule: %w", err)
		}
	}

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO plan_runs (` + planRunColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		run.ID,
		run.Fingerprint,
		string(targets),
		string(completed),
		run.MaxTerms,
		run.MaxPerTerm,
		run.Status,
		schedule,
		run.FinishTerm,
		run.CourseCount,
		run.DurationMs,
		run.CreatedAt.UTC().Format(runTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting plan run: %w", err)
	}
	return nil
}

func (r *SQLitePlanRunRepo) GetByID(ctx context.Context, id string) (*domain.PlanRun, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+planRunColumns+` FROM plan_runs
		 WHERE id = ? OR substr(id, 1, length(?)) = ?
		 ORDER BY id = ? DESC LIMIT 2`,
		id, id, id, id)
	if err != nil {
		return nil, fmt.Errorf("querying plan run: %w", err)
	}
	defer rows.Close()

	var matches []*domain.PlanRun
	for rows.Next() {
		run, err := scanPlanRun(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan runs: %w", err)
	}

	switch {
	case len(matches) == 0:
		return nil, fmt.Errorf("plan run %s: %w", id, ErrNotFound)
	case matches[0].ID == id || len(matches) == 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("plan run prefix %q is ambiguous", id)
	}
}

func (r *SQLitePlanRunRepo) ListRecent(ctx context.Context, limit int) ([]*domain.PlanRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+planRunColumns+` FROM plan_runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing plan runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.PlanRun
	for rows.Next() {
		run, err := scanPlanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan runs: %w", err)
	}
	return runs, nil
}

func scanPlanRun(row rowScanner) (*domain.PlanRun, error) {
	var run domain.PlanRun
	var targets, completed, createdAt string
	var schedule sql.NullString

	err := row.Scan(
		&run.ID, &run.Fingerprint, &targets, &completed,
		&run.MaxTerms, &run.MaxPerTerm, &run.Status,
		&schedule, &run.FinishTerm, &run.CourseCount, &run.DurationMs,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning plan run: %w", err)
	}

	if err := json.Unmarshal([]byte(targets), &run.Targets); err != nil {
		return nil, fmt.Errorf("decoding targets: %w", err)
	}
	if err := json.Unmarshal([]byte(completed), &run.Completed); err != nil {
		return nil, fmt.Errorf("decoding completed: %w", err)
	}
	if err := decodeNullableJSON(schedule, &run.Schedule); err != nil {
		return nil, fmt.Errorf("decoding schedule: %w", err)
	}

	t, err := time.Parse(runTimeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	run.CreatedAt = t
	return &run, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
