package scheduler

import (
	"testing"

	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/alexanderramin/diarist/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketWeeks_SingleWeekWeekdaysOnly(t *testing.T) {
	tasks := []domain.Task{testutil.NewTestTask("Design Review", "2025-01-06", "2025-01-10")}

	weeks := BucketWeeks(tasks, BucketOptions{
		Anchor:          testutil.Day("2025-01-06"),
		ExcludeWeekends: true,
	})

	require.Len(t, weeks, 1)
	w := weeks[0]
	assert.Equal(t, "2025-01-06 to 2025-01-12", w.Label())
	require.Len(t, w.Days, 5, "weekends are not materialized in five-day mode")
	for _, day := range w.Days {
		assert.Equal(t, []string{"Design Review"}, day.Tasks, day.Date.String())
	}
	_, ok := w.TasksOn(testutil.Day("2025-01-11"))
	assert.False(t, ok)
	_, ok = w.TasksOn(testutil.Day("2025-01-12"))
	assert.False(t, ok)
}

func TestBucketWeeks_LeaveDayEmptiesThatDayOnly(t *testing.T) {
	tasks := []domain.Task{testutil.NewTestTask("Design Review", "2025-01-06", "2025-01-10")}
	leave := domain.NewLeaveSet(domain.LeaveRecord{Date: testutil.Day("2025-01-08"), Reason: "Sick"})

	weeks := BucketWeeks(tasks, BucketOptions{
		Anchor:          testutil.Day("2025-01-06"),
		ExcludeWeekends: true,
		Leave:           leave,
	})

	require.Len(t, weeks, 1)
	w := weeks[0]
	onLeave, ok := w.TasksOn(testutil.Day("2025-01-08"))
	require.True(t, ok, "leave day keeps its skeleton entry")
	assert.Empty(t, onLeave)
	assert.Len(t, w.TaskDays("Design Review"), 4)
}

func TestBucketWeeks_TaskSpanningTwoWeeksIsClipped(t *testing.T) {
	tasks := []domain.Task{testutil.NewTestTask("Migration", "2025-01-09", "2025-01-14")}

	weeks := BucketWeeks(tasks, BucketOptions{
		Anchor:          testutil.Day("2025-01-06"),
		ExcludeWeekends: true,
	})

	require.Len(t, weeks, 2)
	assert.Equal(t, "2025-01-06 to 2025-01-12", weeks[0].Label())
	assert.Equal(t, "2025-01-13 to 2025-01-19", weeks[1].Label())

	assert.Equal(t, []domain.Date{testutil.Day("2025-01-09"), testutil.Day("2025-01-10")},
		weeks[0].TaskDays("Migration"))
	assert.Equal(t, []domain.Date{testutil.Day("2025-01-13"), testutil.Day("2025-01-14")},
		weeks[1].TaskDays("Migration"))
}

func TestBucketWeeks_SingleDayTask(t *testing.T) {
	tasks := []domain.Task{
		testutil.NewTestTask("Kickoff", "2025-01-15", "2025-01-15"),
		testutil.NewTestTask("Onboarding", "2025-01-06", "2025-01-07"),
	}

	weeks := BucketWeeks(tasks, BucketOptions{ExcludeWeekends: true})

	require.Len(t, weeks, 2)
	assert.Empty(t, weeks[0].TaskDays("Kickoff"))
	assert.Equal(t, []domain.Date{testutil.Day("2025-01-15")}, weeks[1].TaskDays("Kickoff"))
}

func TestBucketWeeks_EmptyWeeksInsideRangeStillPresent(t *testing.T) {
	tasks := []domain.Task{
		testutil.NewTestTask("A", "2025-01-06", "2025-01-06"),
		testutil.NewTestTask("B", "2025-01-27", "2025-01-28"),
	}

	weeks := BucketWeeks(tasks, BucketOptions{ExcludeWeekends: true})

	require.Len(t, weeks, 4)
	assert.True(t, weeks[1].IsEmpty())
	assert.True(t, weeks[2].IsEmpty())
	assert.Len(t, weeks[1].Days, 5, "empty weeks keep the weekday skeleton")
}

func TestBucketWeeks_AnchorBeforeEarliestTaskAddsLeadingWeeks(t *testing.T) {
	tasks := []domain.Task{testutil.NewTestTask("A", "2025-01-15", "2025-01-16")}

	weeks := BucketWeeks(tasks, BucketOptions{Anchor: testutil.Day("2025-01-01")})

	require.Len(t, weeks, 3)
	assert.Equal(t, "2024-12-30 to 2025-01-05", weeks[0].Label())
}

func TestBucketWeeks_PreservesTaskOrderWithinDay(t *testing.T) {
	tasks := []domain.Task{
		testutil.NewTestTask("Zeta", "2025-01-06", "2025-01-06"),
		testutil.NewTestTask("Alpha", "2025-01-06", "2025-01-06", testutil.WithLinkedEntity("JIRA-7")),
	}

	weeks := BucketWeeks(tasks, BucketOptions{})

	got, _ := weeks[0].TasksOn(testutil.Day("2025-01-06"))
	assert.Equal(t, []string{"Zeta", "Alpha (JIRA-7)"}, got)
}

func TestBucketWeeks_SevenDayModeMaterializesWeekends(t *testing.T) {
	tasks := []domain.Task{testutil.NewTestTask("On call", "2025-01-10", "2025-01-13")}

	t.Run("weekends excluded from assignment", func(t *testing.T) {
		weeks := BucketWeeks(tasks, BucketOptions{ExcludeWeekends: true, SevenDay: true})
		require.Len(t, weeks, 2)
		require.Len(t, weeks[0].Days, 7)
		sat, ok := weeks[0].TasksOn(testutil.Day("2025-01-11"))
		assert.True(t, ok)
		assert.Empty(t, sat)
	})

	t.Run("weekends included in assignment", func(t *testing.T) {
		weeks := BucketWeeks(tasks, BucketOptions{SevenDay: true})
		sun, ok := weeks[0].TasksOn(testutil.Day("2025-01-12"))
		assert.True(t, ok)
		assert.Equal(t, []string{"On call"}, sun)
	})

	t.Run("five-day mode keeps assigned weekend days", func(t *testing.T) {
		weeks := BucketWeeks(tasks, BucketOptions{})
		assert.Len(t, weeks[0].Days, 7)
		assert.Len(t, weeks[1].Days, 5)
	})
}

func TestBucketWeeks_NoTasks(t *testing.T) {
	assert.Nil(t, BucketWeeks(nil, BucketOptions{Anchor: testutil.Day("2025-01-06")}))
}

func TestFirstMondayLastSunday(t *testing.T) {
	assert.Equal(t, testutil.Day("2025-01-06"), FirstMonday(testutil.Day("2025-01-06")))
	assert.Equal(t, testutil.Day("2025-01-06"), FirstMonday(testutil.Day("2025-01-12")))
	assert.Equal(t, testutil.Day("2025-01-12"), LastSunday(testutil.Day("2025-01-06")))
	assert.Equal(t, testutil.Day("2025-01-12"), LastSunday(testutil.Day("2025-01-12")))
}

func TestResolveAnchor(t *testing.T) {
	tasks := []domain.Task{testutil.NewTestTask("A", "2025-01-08", "2025-01-09")}

	assert.Equal(t, testutil.Day("2025-01-08"), ResolveAnchor(domain.Date{}, tasks))
	assert.Equal(t, testutil.Day("2025-01-01"), ResolveAnchor(testutil.Day("2025-01-01"), tasks))
	assert.Equal(t, testutil.Day("2025-01-08"), ResolveAnchor(testutil.Day("2025-02-01"), tasks))
	assert.Equal(t, testutil.Day("2025-02-01"), ResolveAnchor(testutil.Day("2025-02-01"), nil))
}

func TestParseWeekLabel(t *testing.T) {
	start, end, err := ParseWeekLabel("2025-01-06 to 2025-01-12")
	require.NoError(t, err)
	assert.Equal(t, testutil.Day("2025-01-06"), start)
	assert.Equal(t, testutil.Day("2025-01-12"), end)

	for _, bad := range []string{"", "2025-01-06", "2025-01-07 to 2025-01-13", "2025-01-06 to 2025-01-11", "x to y"} {
		_, _, err := ParseWeekLabel(bad)
		assert.ErrorIs(t, err, ErrInvalidWeekLabel, bad)
	}
}

func TestFindWeek(t *testing.T) {
	tasks := []domain.Task{testutil.NewTestTask("A", "2025-01-06", "2025-01-20")}
	weeks := BucketWeeks(tasks, BucketOptions{})

	w, ok := FindWeek(weeks, "2025-01-13 to 2025-01-19")
	require.True(t, ok)
	assert.Equal(t, testutil.Day("2025-01-13"), w.Start)

	w, ok = FindWeek(weeks, "2025-01-21")
	require.True(t, ok)
	assert.Equal(t, testutil.Day("2025-01-20"), w.Start)

	_, ok = FindWeek(weeks, "2026-01-01")
	assert.False(t, ok)
}
