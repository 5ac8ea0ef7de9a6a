package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/alexanderramin/diarist/internal/history"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// HistoryRepo is the SQLite rendition of the history store's backend.
// Rows are only ever inserted; task histories are never deleted.
type HistoryRepo interface {
	history.Backend
}

type ReportRunRepo interface {
	Create(ctx context.Context, r *domain.ReportRun) error
	LatestForWeek(ctx context.Context, weekStart domain.Date) (*domain.ReportRun, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.ReportRun, error)
}
