package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/diarist/internal/schedule"
	"github.com/alexanderramin/diarist/internal/scheduler"
)

type scheduleService struct {
	observer UseCaseObserver
}

func NewScheduleService(observers ...UseCaseObserver) ScheduleService {
	return &scheduleService{observer: useCaseObserverOrNoop(observers)}
}

func (s *scheduleService) Plan(ctx context.Context, req PlanRequest) (plan *WeekPlan, err error) {
	fields := map[string]any{"path": req.Path}
	defer observe(ctx, s.observer, "plan-weeks", fields)(&err)

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	var sched *schedule.Schedule
	sched, err = schedule.LoadFile(req.Path)
	if err != nil {
		return nil, fmt.Errorf("loading schedule: %w", err)
	}

	anchor := scheduler.ResolveAnchor(req.InternshipStart, sched.Tasks)
	weeks := scheduler.BucketWeeks(sched.Tasks, scheduler.BucketOptions{
		Anchor:          anchor,
		ExcludeWeekends: req.ExcludeWeekends,
		Leave:           req.Leave,
		SevenDay:        req.SevenDay,
	})

	fields["task_count"] = len(sched.Tasks)
	fields["dropped_rows"] = len(sched.Dropped)
	fields["week_count"] = len(weeks)

	return &WeekPlan{Schedule: sched, Anchor: anchor, Weeks: weeks}, nil
}
