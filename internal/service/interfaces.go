package service

import (
	"context"
	"errors"
	"io"

	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/alexanderramin/diarist/internal/report"
	"github.com/alexanderramin/diarist/internal/schedule"
)

var (
	// ErrTaskNotInWeek is returned when an answer names a task the week does not list.
	ErrTaskNotInWeek = errors.New("task does not occur in this week")
	// ErrReportLogUnavailable is returned when no report run repository is configured.
	ErrReportLogUnavailable = errors.New("report log requires the sqlite store")
)

// PlanRequest describes how to turn a schedule file into weeks.
type PlanRequest struct {
	Path            string
	InternshipStart domain.Date
	ExcludeWeekends bool
	SevenDay        bool
	Leave           domain.LeaveSet
}

// WeekPlan is a loaded schedule and its week buckets.
type WeekPlan struct {
	Schedule *schedule.Schedule
	Anchor   domain.Date
	Weeks    []domain.WeekBucket
}

type ScheduleService interface {
	Plan(ctx context.Context, req PlanRequest) (*WeekPlan, error)
}

// RecordedAnswer is what was stored for one task's answer.
type RecordedAnswer struct {
	Task     string
	Text     string
	Refined  bool
	Appended bool
	Start    domain.Date
	End      domain.Date
}

// ComposeRequest asks for the diary of one week.
type ComposeRequest struct {
	Week    domain.WeekBucket
	Answers map[string]string
	Options report.Options

	// Notes replaces the generated weekly summary when set.
	Notes string

	// DryRun builds the report without writing a file or a report run.
	DryRun bool
}

// ComposeResult is the assembled report and where it went.
type ComposeResult struct {
	Report        report.WeeklyReport
	OutputPath    string
	PartialsAdded int

	// Warnings are non-fatal failures, such as a day the model could not slice.
	Warnings []error
}

type DiaryService interface {
	// Question returns the prompt for task and whether the model wrote it.
	Question(ctx context.Context, task string) (string, bool)
	RecordAnswer(ctx context.Context, week domain.WeekBucket, task, answer string) (*RecordedAnswer, error)
	Compose(ctx context.Context, req ComposeRequest) (*ComposeResult, error)
	RecentReports(ctx context.Context, limit int) ([]*domain.ReportRun, error)
}

// TaskSummary is one line of the history listing.
type TaskSummary struct {
	Name     string
	Segments int
	Partials int
	First    domain.Date
	Last     domain.Date
}

// ImportResult counts what an import added.
type ImportResult struct {
	Tasks    int
	Segments int
	Partials int
}

type HistoryService interface {
	List(ctx context.Context) ([]TaskSummary, error)
	Show(ctx context.Context, name string) (*domain.TaskHistory, error)
	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, r io.Reader) (*ImportResult, error)
}
