// Package schedule loads the task list a diary is generated from.
package schedule

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/araddon/dateparse"
)

// Column names every schedule must carry.
const (
	ColumnTaskName     = "Task Name"
	ColumnStartDate    = "Start Date"
	ColumnDueDate      = "Due Date"
	ColumnAssignee     = "Assignee"
	ColumnLinkedEntity = "Linked Entity"
)

// RequiredColumns lists the columns in the order they are reported when missing.
var RequiredColumns = []string{ColumnTaskName, ColumnStartDate, ColumnDueDate, ColumnAssignee, ColumnLinkedEntity}

var (
	ErrMissingColumns = errors.New("missing required columns")
	ErrEmptySchedule  = errors.New("schedule has no header row")
)

// MissingColumnsError names every required column absent from the header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Unwrap() error { return ErrMissingColumns }

// DroppedRow describes a data row that was skipped. Line is 1-based and
// counts the header.
type DroppedRow struct {
	Line   int
	Reason string
}

// Schedule is the validated task list, sorted by start date.
type Schedule struct {
	Tasks   []domain.Task
	Dropped []DroppedRow
}

// LoadFile opens path and parses it with Load.
func LoadFile(path string) (*Schedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schedule: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a comma-separated schedule. Header names are trimmed before
// matching. A missing required column fails the whole load; rows whose dates
// do not parse, or whose start is after their due date, are dropped.
// Tasks are stable-sorted by start date.
func Load(r io.Reader) (*Schedule, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptySchedule
		}
		return nil, fmt.Errorf("reading schedule header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		name := strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	s := &Schedule{}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("reading schedule line %d: %w", line, err)
		}

		field := func(col string) string {
			i := index[col]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		start, err := ParseDate(field(ColumnStartDate))
		if err != nil {
			s.Dropped = append(s.Dropped, DroppedRow{Line: line, Reason: fmt.Sprintf("start date: %v", err)})
			continue
		}
		due, err := ParseDate(field(ColumnDueDate))
		if err != nil {
			s.Dropped = append(s.Dropped, DroppedRow{Line: line, Reason: fmt.Sprintf("due date: %v", err)})
			continue
		}
		if start.After(due) {
			s.Dropped = append(s.Dropped, DroppedRow{Line: line, Reason: fmt.Sprintf("start %s is after due %s", start, due)})
			continue
		}

		s.Tasks = append(s.Tasks, domain.Task{
			Name:         field(ColumnTaskName),
			StartDate:    start,
			DueDate:      due,
			Assignee:     field(ColumnAssignee),
			LinkedEntity: normalizeOptional(field(ColumnLinkedEntity)),
		})
	}

	slices.SortStableFunc(s.Tasks, func(a, b domain.Task) int {
		return a.StartDate.Compare(b.StartDate)
	})
	return s, nil
}

// ParseDate accepts the usual spreadsheet date spellings (ISO, 1/6/2025,
// "Jan 6, 2025", timestamps) and keeps only the calendar date.
func ParseDate(value string) (domain.Date, error) {
	if value == "" || isNullMarker(value) {
		return domain.Date{}, errors.New("empty")
	}
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return domain.Date{}, err
	}
	return domain.DateOf(t), nil
}

func normalizeOptional(v string) string {
	if isNullMarker(v) {
		return ""
	}
	return v
}

func isNullMarker(v string) bool {
	switch strings.ToLower(v) {
	case "nan", "null", "none", "n/a":
		return true
	}
	return false
}

// Summary is the preview shown before a diary is generated.
type Summary struct {
	TaskCount     int
	EarliestStart domain.Date
	LatestDue     domain.Date
	Dropped       int
}

func (s *Schedule) Summary() Summary {
	sum := Summary{TaskCount: len(s.Tasks), Dropped: len(s.Dropped)}
	for i, t := range s.Tasks {
		if i == 0 || t.StartDate.Before(sum.EarliestStart) {
			sum.EarliestStart = t.StartDate
		}
		if i == 0 || t.DueDate.After(sum.LatestDue) {
			sum.LatestDue = t.DueDate
		}
	}
	return sum
}

// Head returns at most n tasks from the front of the schedule.
func (s *Schedule) Head(n int) []domain.Task {
	if n >= len(s.Tasks) {
		return s.Tasks
	}
	return s.Tasks[:n]
}
