package domain

import (
	"slices"
)

type LeaveRecord struct {
	Date   Date
	Reason string
}

// LeaveSet maps a leave day to the reason given for it. A nil LeaveSet is
// empty and safe to query.
type LeaveSet map[Date]string

func NewLeaveSet(records ...LeaveRecord) LeaveSet {
	set := make(LeaveSet, len(records))
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		set[r.Date] = r.Reason
	}
	return set
}

func (s LeaveSet) Contains(d Date) bool {
	_, ok := s[d]
	return ok
}

func (s LeaveSet) Reason(d Date) (string, bool) {
	r, ok := s[d]
	return r, ok
}

// Records returns the leave days in chronological order.
func (s LeaveSet) Records() []LeaveRecord {
	out := make([]LeaveRecord, 0, len(s))
	for d, r := range s {
		out = append(out, LeaveRecord{Date: d, Reason: r})
	}
	slices.SortFunc(out, func(a, b LeaveRecord) int { return a.Date.Compare(b.Date) })
	return out
}

// Within returns the leave records falling inside [from, to].
func (s LeaveSet) Within(from, to Date) []LeaveRecord {
	var out []LeaveRecord
	for _, r := range s.Records() {
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		out = append(out, r)
	}
	return out
}
