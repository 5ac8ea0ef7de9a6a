package domain

import "time"

// ReportRun records one rendered weekly diary.
type ReportRun struct {
	ID          string
	WeekStart   Date
	OutputPath  string
	TaskCount   int
	GeneratedAt time.Time
}
