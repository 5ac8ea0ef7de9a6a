package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/alexanderramin/diarist/internal/db"
	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/google/uuid"
)

// SQLiteHistoryRepo stores task histories in three tables: task_histories,
// history_segments (ordered by seq) and daywise_descriptions.
type SQLiteHistoryRepo struct {
	db  *sql.DB
	uow db.UnitOfWork
}

var _ HistoryRepo = (*SQLiteHistoryRepo)(nil)

// NewSQLiteHistoryRepo creates a new SQLiteHistoryRepo.
func NewSQLiteHistoryRepo(database *sql.DB) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{db: database, uow: db.NewSQLiteUnitOfWork(database)}
}

// NewSQLiteHistoryRepoWithUoW lets callers supply the transaction runner used by SaveAll.
func NewSQLiteHistoryRepoWithUoW(database *sql.DB, uow db.UnitOfWork) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{db: database, uow: uow}
}

func (r *SQLiteHistoryRepo) LoadAll(ctx context.Context) (map[string]*domain.TaskHistory, error) {
	entries := map[string]*domain.TaskHistory{}

	rows, err := r.db.QueryContext(ctx, `SELECT task_name FROM task_histories`)
	if err != nil {
		return nil, fmt.Errorf("listing task histories: %w", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning task history: %w", err)
		}
		entries[name] = domain.NewTaskHistory()
	}
	if err := closeRows(rows, "task histories"); err != nil {
		return nil, err
	}

	if err := r.loadSegments(ctx, entries); err != nil {
		return nil, err
	}
	if err := r.loadDaywise(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *SQLiteHistoryRepo) loadSegments(ctx context.Context, entries map[string]*domain.TaskHistory) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT task_name, start_date, end_date, description
		FROM history_segments ORDER BY task_name, seq`)
	if err != nil {
		return fmt.Errorf("listing history segments: %w", err)
	}
	for rows.Next() {
		var name, startStr, endStr, description string
		if err := rows.Scan(&name, &startStr, &endStr, &description); err != nil {
			rows.Close()
			return fmt.Errorf("scanning history segment: %w", err)
		}
		start, err := parseDateColumn("start_date", startStr)
		if err != nil {
			rows.Close()
			return err
		}
		end, err := parseDateColumn("end_date", endStr)
		if err != nil {
			rows.Close()
			return err
		}
		h, ok := entries[name]
		if !ok {
			h = domain.NewTaskHistory()
			entries[name] = h
		}
		h.History = append(h.History, domain.Segment{Start: start, End: end, Description: description})
	}
	return closeRows(rows, "history segments")
}

func (r *SQLiteHistoryRepo) loadDaywise(ctx context.Context, entries map[string]*domain.TaskHistory) error {
	rows, err := r.db.QueryContext(ctx, `SELECT task_name, day, description FROM daywise_descriptions`)
	if err != nil {
		return fmt.Errorf("listing daywise descriptions: %w", err)
	}
	for rows.Next() {
		var name, day, description string
		if err := rows.Scan(&name, &day, &description); err != nil {
			rows.Close()
			return fmt.Errorf("scanning daywise description: %w", err)
		}
		h, ok := entries[name]
		if !ok {
			h = domain.NewTaskHistory()
			entries[name] = h
		}
		h.Daywise[day] = description
	}
	return closeRows(rows, "daywise descriptions")
}

func closeRows(rows *sql.Rows, what string) error {
	iterErr := rows.Err()
	rows.Close()
	if iterErr != nil {
		return fmt.Errorf("iterating %s: %w", what, iterErr)
	}
	return nil
}

// SaveAll writes entries in one transaction. Segments already stored are
// left alone and only the tail past the stored count is inserted; daywise
// rows that already exist keep their original text.
func (r *SQLiteHistoryRepo) SaveAll(ctx context.Context, entries map[string]*domain.TaskHistory) error {
	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)

	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		now := nowUTC()
		for _, name := range names {
			h := entries[name]
			if h == nil {
				continue
			}
			if err := upsertTask(ctx, tx, name, now); err != nil {
				return err
			}
			if err := appendSegments(ctx, tx, name, h.History, now); err != nil {
				return err
			}
			if err := insertDaywise(ctx, tx, name, h.Daywise, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsertTask(ctx context.Context, tx db.DBTX, name, now string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO task_histories (task_name, created_at, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(task_name) DO UPDATE SET updated_at = excluded.updated_at`,
		name, now, now)
	if err != nil {
		return fmt.Errorf("upserting task history %q: %w", name, err)
	}
	return nil
}

func appendSegments(ctx context.Context, tx db.DBTX, name string, segments []domain.Segment, now string) error {
	var stored int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM history_segments WHERE task_name = ?`, name).Scan(&stored)
	if err != nil {
		return fmt.Errorf("counting segments for %q: %w", name, err)
	}

	for seq := stored; seq < len(segments); seq++ {
		seg := segments[seq]
		_, err := tx.ExecContext(ctx,
			`INSERT INTO history_segments (id, task_name, seq, start_date, end_date, description, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(), name, seq, seg.Start.String(), seg.End.String(), seg.Description, now)
		if err != nil {
			return fmt.Errorf("inserting segment %d for %q: %w", seq, name, err)
		}
	}
	return nil
}

func insertDaywise(ctx context.Context, tx db.DBTX, name string, daywise map[string]string, now string) error {
	days := make([]string, 0, len(daywise))
	for day := range daywise {
		days = append(days, day)
	}
	slices.Sort(days)

	for _, day := range days {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO daywise_descriptions (task_name, day, description, created_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(task_name, day) DO NOTHING`,
			name, day, daywise[day], now)
		if err != nil {
			return fmt.Errorf("inserting daywise %s for %q: %w", day, name, err)
		}
	}
	return nil
}
