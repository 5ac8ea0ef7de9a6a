package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/alexanderramin/diarist/internal/schedule"
	"github.com/alexanderramin/diarist/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Task Name,Start Date,Due Date,Assignee,Linked Entity
Design Review,2025-01-08,2025-01-14,Ana,API
Kickoff,2025-01-06,2025-01-06,Ana,
Broken,not a date,2025-01-07,Ana,
`

func TestPlan_BucketsScheduleFromFile(t *testing.T) {
	obs := &recordingObserver{}
	svc := NewScheduleService(obs)

	plan, err := svc.Plan(context.Background(), PlanRequest{
		Path:            writeCSV(t, sampleCSV),
		ExcludeWeekends: true,
	})
	require.NoError(t, err)

	assert.Len(t, plan.Schedule.Tasks, 2)
	assert.Len(t, plan.Schedule.Dropped, 1)
	assert.Equal(t, testutil.Day("2025-01-06"), plan.Anchor)
	require.Len(t, plan.Weeks, 2)
	assert.Equal(t, "2025-01-13 to 2025-01-19", plan.Weeks[1].Label())

	tasks, _ := plan.Weeks[0].TasksOn(testutil.Day("2025-01-08"))
	assert.Equal(t, []string{"Design Review (API)"}, tasks)

	ev := obs.last()
	assert.Equal(t, "plan-weeks", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 2, ev.Fields["week_count"])
}

func TestPlan_InternshipStartExtendsAnchor(t *testing.T) {
	plan, err := NewScheduleService().Plan(context.Background(), PlanRequest{
		Path:            writeCSV(t, sampleCSV),
		InternshipStart: testutil.Day("2024-12-30"),
	})
	require.NoError(t, err)

	assert.Equal(t, testutil.Day("2024-12-30"), plan.Anchor)
	require.Len(t, plan.Weeks, 3)
	assert.True(t, plan.Weeks[0].IsEmpty())
}

func TestPlan_LeaveRemovesAssignments(t *testing.T) {
	leave := domain.NewLeaveSet(domain.LeaveRecord{Date: testutil.Day("2025-01-06"), Reason: "Sick"})
	plan, err := NewScheduleService().Plan(context.Background(), PlanRequest{
		Path:            writeCSV(t, sampleCSV),
		ExcludeWeekends: true,
		Leave:           leave,
	})
	require.NoError(t, err)

	tasks, _ := plan.Weeks[0].TasksOn(testutil.Day("2025-01-06"))
	assert.Empty(t, tasks)
}

func TestPlan_MissingColumnsFailsFast(t *testing.T) {
	obs := &recordingObserver{}
	_, err := NewScheduleService(obs).Plan(context.Background(), PlanRequest{
		Path: writeCSV(t, "Task Name,Start Date\nA,2025-01-06\n"),
	})

	assert.ErrorIs(t, err, schedule.ErrMissingColumns)
	assert.False(t, obs.last().Success)
}
