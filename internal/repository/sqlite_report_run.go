package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/google/uuid"
)

// SQLiteReportRunRepo implements ReportRunRepo using a SQLite database.
type SQLiteReportRunRepo struct {
	db *sql.DB
}

func NewSQLiteReportRunRepo(db *sql.DB) *SQLiteReportRunRepo {
	return &SQLiteReportRunRepo{db: db}
}

func (r *SQLiteReportRunRepo) Create(ctx context.Context, run *domain.ReportRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.GeneratedAt.IsZero() {
		run.GeneratedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO report_runs (id, week_start, output_path, task_count, generated_at)
		VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.WeekStart.String(), run.OutputPath, run.TaskCount,
		run.GeneratedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting report run: %w", err)
	}
	return nil
}

func (r *SQLiteReportRunRepo) LatestForWeek(ctx context.Context, weekStart domain.Date) (*domain.ReportRun, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, week_start, output_path, task_count, generated_at
		FROM report_runs WHERE week_start = ?
		ORDER BY generated_at DESC, rowid DESC LIMIT 1`, weekStart.String())
	return scanReportRun(row)
}

func (r *SQLiteReportRunRepo) ListRecent(ctx context.Context, limit int) ([]*domain.ReportRun, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, week_start, output_path, task_count, generated_at
		FROM report_runs ORDER BY generated_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing report runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.ReportRun
	for rows.Next() {
		run, err := scanReportRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating report runs: %w", err)
	}
	return runs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReportRun(row rowScanner) (*domain.ReportRun, error) {
	var run domain.ReportRun
	var weekStr, generatedStr string
	if err := row.Scan(&run.ID, &weekStr, &run.OutputPath, &run.TaskCount, &generatedStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("report run: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning report run: %w", err)
	}

	var err error
	if run.WeekStart, err = parseDateColumn("week_start", weekStr); err != nil {
		return nil, err
	}
	if run.GeneratedAt, err = time.Parse(time.RFC3339, generatedStr); err != nil {
		return nil, fmt.Errorf("parsing generated_at: %w", err)
	}
	return &run, nil
}
