package domain

// Segment is one full description of a task captured while answering the
// diary question for one week, together with the days it covers.
type Segment struct {
	Start       Date   `json:"start_date"`
	End         Date   `json:"end_date"`
	Description string `json:"description"`
}

// Contains reports whether d lies in [Start, End].
func (s Segment) Contains(d Date) bool {
	return !d.Before(s.Start) && !d.After(s.End)
}

// TaskHistory is the persisted state for one task name. History is
// append-only; Daywise is a derived cache keyed by YYYY-MM-DD whose entries are
// never overwritten once written.
type TaskHistory struct {
	History []Segment         `json:"history"`
	Daywise map[string]string `json:"daywise_descriptions"`
}

// NewTaskHistory returns an empty, ready-to-use history entry.
func NewTaskHistory() *TaskHistory {
	return &TaskHistory{Daywise: make(map[string]string)}
}

// Clone returns a deep copy.
func (h *TaskHistory) Clone() *TaskHistory {
	if h == nil {
		return nil
	}
	c := &TaskHistory{
		History: make([]Segment, len(h.History)),
		Daywise: make(map[string]string, len(h.Daywise)),
	}
	copy(c.History, h.History)
	for k, v := range h.Daywise {
		c.Daywise[k] = v
	}
	return c
}

// SegmentFor returns the first segment, in history order, whose range contains d.
func (h *TaskHistory) SegmentFor(d Date) (Segment, bool) {
	if h == nil {
		return Segment{}, false
	}
	for _, s := range h.History {
		if s.Contains(d) {
			return s, true
		}
	}
	return Segment{}, false
}
