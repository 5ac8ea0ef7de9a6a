package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/diarist/internal/domain"
	"github.com/alexanderramin/diarist/internal/scheduler"
	"github.com/alexanderramin/diarist/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWeek(t *testing.T, leave domain.LeaveSet) domain.WeekBucket {
	t.Helper()
	weeks := scheduler.BucketWeeks(
		[]domain.Task{testutil.NewTestTask("Design Review", "2025-01-06", "2025-01-10")},
		scheduler.BucketOptions{Anchor: testutil.Day("2025-01-06"), ExcludeWeekends: true, Leave: leave},
	)
	require.Len(t, weeks, 1)
	return weeks[0]
}

func TestFromWeek_SevenDaysWithFallbacks(t *testing.T) {
	leave := domain.NewLeaveSet(domain.LeaveRecord{Date: testutil.Day("2025-01-08"), Reason: "Sick"})
	week := testWeek(t, leave)

	r := FromWeek(week, map[domain.Date]string{
		testutil.Day("2025-01-06"): "Read the proposal",
		testutil.Day("2025-01-07"): "  ",
		testutil.Day("2025-01-08"): "ignored because of leave",
	}, Options{Notes: "Good week", TrainingMode: "Onsite", Leave: leave})

	require.Len(t, r.Days, 7)
	assert.Equal(t, "2025-01-06 to 2025-01-12", r.Label)
	assert.Equal(t, testutil.Day("2025-01-12"), r.WeekEnding)

	assert.Equal(t, "Monday", r.Days[0].Weekday)
	assert.Equal(t, "Read the proposal", r.Days[0].Description)
	assert.Equal(t, NoTask, r.Days[1].Description, "blank text falls back")
	assert.Equal(t, "Leave: Sick", r.Days[2].Description)
	assert.True(t, r.Days[2].OnLeave)
	assert.Equal(t, "Sunday", r.Days[6].Weekday)
	assert.Equal(t, NoTask, r.Days[6].Description)

	require.Len(t, r.Leave, 1)
	assert.Equal(t, "Sick", r.Leave[0].Reason)
}

func TestFromWeek_LeaveWithoutReason(t *testing.T) {
	leave := domain.NewLeaveSet(domain.LeaveRecord{Date: testutil.Day("2025-01-07")})
	r := FromWeek(testWeek(t, leave), nil, Options{Leave: leave})
	assert.Equal(t, "Leave", r.Days[1].Description)
}

func TestFromWeek_LeaveOutsideWeekIsNotListed(t *testing.T) {
	leave := domain.NewLeaveSet(domain.LeaveRecord{Date: testutil.Day("2025-02-03"), Reason: "Trip"})
	r := FromWeek(testWeek(t, leave), nil, Options{Leave: leave})
	assert.Empty(t, r.Leave)
}

func TestOutputFileName(t *testing.T) {
	assert.Equal(t, "Diary_2025-01-06to2025-01-12.md", OutputFileName("2025-01-06 to 2025-01-12", ".md"))
	assert.Equal(t, "Diary_a-b.md", OutputFileName("a:b", ".md"))
}

func TestMarkdownRenderer_Render(t *testing.T) {
	leave := domain.NewLeaveSet(domain.LeaveRecord{Date: testutil.Day("2025-01-08"), Reason: "Sick"})
	r := FromWeek(testWeek(t, leave), map[domain.Date]string{
		testutil.Day("2025-01-06"): "Design Review: read the proposal\nKickoff: met the team | intro",
	}, Options{
		Notes:        "I learned how reviews run.",
		TrainingMode: "Remote",
		Designations: People{Student: "Intern", Supervisor: "Lead Engineer"},
		Signatures:   People{Student: "sig/student.png"},
		Leave:        leave,
	})

	path := filepath.Join(t.TempDir(), "out", OutputFileName(r.Label, ".md"))
	require.NoError(t, NewMarkdownRenderer().Render(context.Background(), r, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := string(raw)

	assert.Contains(t, doc, "**FOR THE WEEK ENDING Sunday: 2025-01-12**")
	assert.Contains(t, doc, "Training mode: Remote")
	assert.Contains(t, doc, `| Monday | 2025-01-06 | Design Review: read the proposal<br>Kickoff: met the team \| intro |`)
	assert.Contains(t, doc, "| Wednesday | 2025-01-08 | Leave: Sick |")
	assert.Contains(t, doc, "| Sunday | 2025-01-12 | No task |")
	assert.Contains(t, doc, "I learned how reviews run.")
	assert.Contains(t, doc, "- 2025-01-08: Sick")
	assert.Contains(t, doc, "| Designation | Intern | Lead Engineer |")
	assert.Contains(t, doc, "![student signature](sig/student.png)")
	assert.NotContains(t, doc, "supervisor signature")
}

func TestMarkdownRenderer_NoNotes(t *testing.T) {
	r := FromWeek(testWeek(t, nil), nil, Options{})
	path := filepath.Join(t.TempDir(), "d.md")
	require.NoError(t, NewMarkdownRenderer().Render(context.Background(), r, path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "## Notes\n\nNone")
	assert.NotContains(t, string(raw), "## Leave")
	assert.NotContains(t, string(raw), "Training mode")
}

func TestMarkdownRenderer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "d.md")

	err := NewMarkdownRenderer().Render(ctx, FromWeek(testWeek(t, nil), nil, Options{}), path)
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
