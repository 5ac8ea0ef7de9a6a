// Package synth derives per-day diary text from a task's history segments.
package synth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/alexanderramin/diarist/internal/history"
)

// Slicer produces one day's share of a multi-day description.
type Slicer interface {
	DaySlice(ctx context.Context, description string, ordinal, total int) (string, error)
}

// DayError reports a day whose partial could not be produced.
type DayError struct {
	Date domain.Date
	Err  error
}

func (e *DayError) Error() string {
	return fmt.Sprintf("partial for %s: %v", e.Date, e.Err)
}

func (e *DayError) Unwrap() error { return e.Err }

// Synthesizer fills the day-wise partial cache.
type Synthesizer struct {
	slicer Slicer
	logger *slog.Logger
}

func NewSynthesizer(slicer Slicer, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{slicer: slicer, logger: logger}
}

// Synthesize asks for a partial for every day in missing that some segment
// covers. Day i is presented as ordinal i+1 of len(missing). The first
// segment in history order whose range contains the day is used. Days with
// no covering segment are skipped silently; days whose call fails are left
// out of the result and reported as *DayError.
func (s *Synthesizer) Synthesize(ctx context.Context, segments []domain.Segment, missing []domain.Date) (map[domain.Date]string, []error) {
	out := make(map[domain.Date]string, len(missing))
	h := &domain.TaskHistory{History: segments}
	total := len(missing)

	var errs []error
	for i, day := range missing {
		if err := ctx.Err(); err != nil {
			errs = append(errs, &DayError{Date: day, Err: err})
			continue
		}
		seg, ok := h.SegmentFor(day)
		if !ok {
			continue
		}
		text, err := s.slicer.DaySlice(ctx, seg.Description, i+1, total)
		if err != nil {
			s.logger.Warn("day partial failed", "date", day.String(), "error", err)
			errs = append(errs, &DayError{Date: day, Err: err})
			continue
		}
		if text == "" {
			continue
		}
		out[day] = text
	}
	return out, errs
}

// Fill synthesizes partials for the days of task name that have none yet and
// stores them. Existing partials are never touched. It returns how many
// partials were added.
func (s *Synthesizer) Fill(ctx context.Context, store *history.Store, name string, days []domain.Date) (int, []error) {
	missing := store.MissingDays(name, days)
	if len(missing) == 0 {
		return 0, nil
	}

	partials, errs := s.Synthesize(ctx, store.History(name), missing)
	added := 0
	for _, day := range missing {
		text, ok := partials[day]
		if !ok {
			continue
		}
		if store.SetDaywise(name, day, text) {
			added++
		}
	}
	s.logger.Debug("day partials filled", "task", name, "missing", len(missing), "added", added, "failed", len(errs))
	return added, errs
}
