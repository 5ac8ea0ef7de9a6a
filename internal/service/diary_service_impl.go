package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/alexanderramin/diarist/internal/history"
	"github.com/alexanderramin/diarist/internal/intelligence"
	"github.com/alexanderramin/diarist/internal/report"
	"github.com/alexanderramin/diarist/internal/repository"
	"github.com/alexanderramin/diarist/internal/synth"
)

// DiaryDeps wires a DiaryService. Assistant and Runs may be nil: without an
// assistant the service asks fixed questions, stores answers as typed and
// fills days from the recorded segment text; without Runs nothing is logged.
type DiaryDeps struct {
	Store     *history.Store
	Assistant intelligence.DiaryAssistant
	Renderer  report.Renderer
	Runs      repository.ReportRunRepo
	OutputDir string
	Extension string
	Logger    *slog.Logger
}

type diaryService struct {
	store     *history.Store
	assistant intelligence.DiaryAssistant
	synth     *synth.Synthesizer
	renderer  report.Renderer
	runs      repository.ReportRunRepo
	outputDir string
	ext       string
	logger    *slog.Logger
	observer  UseCaseObserver
}

func NewDiaryService(deps DiaryDeps, observers ...UseCaseObserver) DiaryService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ext := deps.Extension
	if ext == "" {
		ext = ".md"
	}
	s := &diaryService{
		store:     deps.Store,
		assistant: deps.Assistant,
		renderer:  deps.Renderer,
		runs:      deps.Runs,
		outputDir: deps.OutputDir,
		ext:       ext,
		logger:    logger,
		observer:  useCaseObserverOrNoop(observers),
	}
	if deps.Assistant != nil {
		s.synth = synth.NewSynthesizer(deps.Assistant, logger)
	}
	return s
}

func (s *diaryService) Question(ctx context.Context, task string) (string, bool) {
	if s.assistant == nil {
		return intelligence.DeterministicQuestion(task), false
	}
	q, err := s.assistant.Question(ctx, task)
	if err != nil {
		s.logger.WarnContext(ctx, "question fallback", "task", task, "error", err)
		return intelligence.DeterministicQuestion(task), false
	}
	return q, true
}

func (s *diaryService) RecordAnswer(ctx context.Context, week domain.WeekBucket, task, answer string) (rec *RecordedAnswer, err error) {
	fields := map[string]any{"week": week.Label(), "task": task}
	defer observe(ctx, s.observer, "record-answer", fields)(&err)

	first, last, ok := week.TaskSpan(task)
	if !ok {
		return nil, fmt.Errorf("%q in %s: %w", task, week.Label(), ErrTaskNotInWeek)
	}
	text := strings.TrimSpace(answer)
	if text == "" {
		fields["skipped"] = true
		return nil, nil
	}

	rec = &RecordedAnswer{Task: task, Text: text, Start: first, End: last}
	if s.assistant != nil {
		refined, rerr := s.assistant.Refine(ctx, text)
		switch {
		case rerr != nil:
			s.logger.WarnContext(ctx, "refine failed, keeping answer as typed", "task", task, "error", rerr)
		case refined != "":
			rec.Text = refined
			rec.Refined = true
		}
	}

	rec.Appended = s.store.RecordSegment(task, first, last, rec.Text)
	fields["appended"] = rec.Appended
	fields["refined"] = rec.Refined
	return rec, nil
}

func (s *diaryService) Compose(ctx context.Context, req ComposeRequest) (res *ComposeResult, err error) {
	week := req.Week
	fields := map[string]any{"week": week.Label(), "dry_run": req.DryRun}
	defer observe(ctx, s.observer, "compose-report", fields)(&err)

	res = &ComposeResult{}
	tasks := week.UniqueTasks()
	if s.synth != nil {
		for _, task := range tasks {
			added, errs := s.synth.Fill(ctx, s.store, task, week.TaskDays(task))
			res.PartialsAdded += added
			for _, e := range errs {
				res.Warnings = append(res.Warnings, fmt.Errorf("%s: %w", task, e))
			}
		}
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	descriptions := s.describeDays(week)

	opts := req.Options
	opts.Notes = strings.TrimSpace(req.Notes)
	if opts.Notes == "" {
		notes, nerr := s.summarize(ctx, req.Answers)
		if nerr != nil {
			res.Warnings = append(res.Warnings, fmt.Errorf("weekly notes: %w", nerr))
		}
		opts.Notes = notes
	}
	res.Report = report.FromWeek(week, descriptions, opts)

	if err = s.store.Flush(ctx); err != nil {
		return nil, err
	}

	fields["task_count"] = len(tasks)
	fields["partials_added"] = res.PartialsAdded
	fields["warnings"] = len(res.Warnings)
	if req.DryRun {
		return res, nil
	}

	res.OutputPath = filepath.Join(s.outputDir, report.OutputFileName(week.Label(), s.ext))
	if err = s.renderer.Render(ctx, res.Report, res.OutputPath); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", res.OutputPath, err)
	}

	if s.runs != nil {
		run := &domain.ReportRun{
			WeekStart:   week.Start,
			OutputPath:  res.OutputPath,
			TaskCount:   len(tasks),
			GeneratedAt: time.Now().UTC(),
		}
		if rerr := s.runs.Create(ctx, run); rerr != nil {
			res.Warnings = append(res.Warnings, fmt.Errorf("recording report run: %w", rerr))
		}
	}
	return res, nil
}

// describeDays joins the per-task text for every listed day. Cached partials
// win; without an assistant the covering segment's text is used as is and
// nothing is cached.
func (s *diaryService) describeDays(week domain.WeekBucket) map[domain.Date]string {
	out := make(map[domain.Date]string, len(week.Days))
	entries := make(map[string]*domain.TaskHistory)
	for _, day := range week.Days {
		var parts []string
		for _, task := range day.Tasks {
			if text, ok := s.store.Daywise(task, day.Date); ok {
				parts = appendDistinct(parts, text)
				continue
			}
			if s.assistant != nil {
				continue
			}
			h, seen := entries[task]
			if !seen {
				h, _ = s.store.Entry(task)
				entries[task] = h
			}
			if seg, ok := h.SegmentFor(day.Date); ok {
				parts = appendDistinct(parts, seg.Description)
			}
		}
		if len(parts) > 0 {
			out[day.Date] = strings.Join(parts, "\n")
		}
	}
	return out
}

func appendDistinct(parts []string, text string) []string {
	text = strings.TrimSpace(text)
	if text == "" || slices.Contains(parts, text) {
		return parts
	}
	return append(parts, text)
}

func (s *diaryService) summarize(ctx context.Context, answers map[string]string) (string, error) {
	if s.assistant == nil || len(answers) == 0 {
		return "", nil
	}
	tasks := make([]string, 0, len(answers))
	for task := range answers {
		tasks = append(tasks, task)
	}
	slices.Sort(tasks)

	entries := make([]intelligence.NoteEntry, 0, len(tasks))
	for _, task := range tasks {
		entries = append(entries, intelligence.NoteEntry{Task: task, Text: answers[task]})
	}
	return s.assistant.Summarize(ctx, entries)
}

func (s *diaryService) RecentReports(ctx context.Context, limit int) ([]*domain.ReportRun, error) {
	if s.runs == nil {
		return nil, ErrReportLogUnavailable
	}
	runs, err := s.runs.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing report runs: %w", err)
	}
	return runs, nil
}
