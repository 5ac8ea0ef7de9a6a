// Package report builds the weekly diary document from a bucketed week and
// the text gathered for each day.
package report

import (
	"context"
	"strings"

	"github.com/alexanderramin/diarist/internal/domain"
)

// NoTask is written for a day that has nothing recorded.
const NoTask = "No task"

// Renderer produces a diary artifact for one week at outputPath.
type Renderer interface {
	Render(ctx context.Context, r WeeklyReport, outputPath string) error
}

// DayEntry is one row of the daily breakdown.
type DayEntry struct {
	Weekday     string
	Date        domain.Date
	Description string
	OnLeave     bool
}

// People pairs a student value with a supervisor value.
type People struct {
	Student    string
	Supervisor string
}

// WeeklyReport is everything a renderer needs for one week.
type WeeklyReport struct {
	Label        string
	WeekStart    domain.Date
	WeekEnding   domain.Date
	Days         []DayEntry
	Notes        string
	TrainingMode string
	Signatures   People // image paths
	Designations People
	Leave        []domain.LeaveRecord
}

// Options carries the per-user fields that do not come from the schedule.
type Options struct {
	Notes        string
	TrainingMode string
	Signatures   People
	Designations People
	Leave        domain.LeaveSet
}

// FromWeek lays out all seven days of bucket. A day on leave reads
// "Leave: <reason>", a day without text reads NoTask, and any other day
// carries descriptions[day].
func FromWeek(bucket domain.WeekBucket, descriptions map[domain.Date]string, opts Options) WeeklyReport {
	r := WeeklyReport{
		Label:        bucket.Label(),
		WeekStart:    bucket.Start,
		WeekEnding:   bucket.Start.AddDays(6),
		Notes:        opts.Notes,
		TrainingMode: opts.TrainingMode,
		Signatures:   opts.Signatures,
		Designations: opts.Designations,
		Leave:        opts.Leave.Within(bucket.Start, bucket.Start.AddDays(6)),
		Days:         make([]DayEntry, 0, 7),
	}

	for i := 0; i < 7; i++ {
		day := bucket.Start.AddDays(i)
		entry := DayEntry{Weekday: day.Weekday().String(), Date: day}
		if reason, onLeave := opts.Leave.Reason(day); onLeave {
			entry.OnLeave = true
			entry.Description = leaveText(reason)
		} else if text := strings.TrimSpace(descriptions[day]); text != "" {
			entry.Description = text
		} else {
			entry.Description = NoTask
		}
		r.Days = append(r.Days, entry)
	}
	return r
}

func leaveText(reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "Leave"
	}
	return "Leave: " + reason
}

// OutputFileName is the file name for a week's diary, e.g.
// "Diary_2025-01-06to2025-01-12.md".
func OutputFileName(label, ext string) string {
	name := strings.ReplaceAll(label, " ", "")
	name = strings.ReplaceAll(name, ":", "-")
	return "Diary_" + name + ext
}
