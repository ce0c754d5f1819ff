package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daycare/internal/apperr"
	"daycare/internal/attendance"
	"daycare/internal/child"
	"daycare/internal/dates"
	"daycare/internal/mood"
)

type fixture struct {
	svc        *Service
	children   *child.MemoryRepository
	attendance *attendance.MemoryRepository
	moods      *mood.MemoryRepository
	kofi       child.Profile
}

var today = time.Date(2025, 11, 3, 9, 30, 0, 0, time.Local)

func setup(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		children:   child.NewMemoryRepository(),
		attendance: attendance.NewMemoryRepository(attendance.Child),
		moods:      mood.NewMemoryRepository(),
	}
	var err error
	f.kofi, err = f.children.Create(context.Background(), child.Profile{UserID: 10, Name: "Kofi"})
	require.NoError(t, err)
	f.svc = NewService(child.NewResolver(f.children), f.attendance, f.moods)
	f.svc.now = func() time.Time { return today }
	return f
}

func (f fixture) addAttendance(t *testing.T, day int, entries attendance.Entries) attendance.Record {
	t.Helper()
	rec, err := f.attendance.Create(context.Background(), attendance.Record{Date: dates.New(2025, 10, day), Entries: entries})
	require.NoError(t, err)
	return rec
}

func (f fixture) addMood(t *testing.T, d dates.Date, entries ...mood.Entry) mood.Record {
	t.Helper()
	rec, err := f.moods.Create(context.Background(), mood.Record{Date: d, Entries: entries})
	require.NoError(t, err)
	return rec
}

func TestRate(t *testing.T) {
	assert.Equal(t, 0.0, Rate(0, 0))
	assert.Equal(t, 75.0, Rate(3, 4))
	assert.Equal(t, 66.67, Rate(2, 3))
	assert.Equal(t, 100.0, Rate(5, 5))
}

func TestAttendanceRate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	got, err := f.svc.AttendanceRate(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, AttendanceRate{ChildProfileID: f.kofi.ID}, got)

	other := f.kofi.ID + 100
	f.addAttendance(t, 1, attendance.Entries{f.kofi.ID: attendance.StatusPresent})
	f.addAttendance(t, 2, attendance.Entries{f.kofi.ID: attendance.StatusPresent, other: attendance.StatusAbsent})
	absent := f.addAttendance(t, 3, attendance.Entries{f.kofi.ID: attendance.StatusAbsent})
	f.addAttendance(t, 4, attendance.Entries{f.kofi.ID: attendance.StatusPresent})
	f.addAttendance(t, 5, attendance.Entries{other: attendance.StatusPresent})

	got, err = f.svc.AttendanceRate(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, AttendanceRate{ChildProfileID: f.kofi.ID, TotalDays: 4, Present: 3, Absent: 1, Rate: 75}, got)

	require.NoError(t, f.attendance.Delete(ctx, absent.ID))
	got, err = f.svc.AttendanceRate(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TotalDays)
	assert.Equal(t, 100.0, got.Rate)
}

func TestResolverUsesLatestProfile(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	newer, err := f.children.Create(ctx, child.Profile{UserID: 10, Name: "Kofi (2025)"})
	require.NoError(t, err)
	f.addAttendance(t, 1, attendance.Entries{f.kofi.ID: attendance.StatusPresent})

	got, err := f.svc.AttendanceRate(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ChildProfileID)
	assert.Zero(t, got.TotalDays)
}

func TestUnknownUser(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.AttendanceRate(ctx, 99)
	assert.True(t, apperr.IsNotFound(err))
	assert.EqualError(t, err, "Child profile not found for this user")

	_, err = f.svc.TodayMood(ctx, 99)
	assert.EqualError(t, err, "Child profile not found for this user")

	_, err = f.svc.MoodHistogram(ctx, 99)
	assert.True(t, apperr.IsNotFound(err))
}

func TestTodayMood(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.TodayMood(ctx, 10)
	assert.EqualError(t, err, "No mood records found for today")

	yesterday := dates.New(2025, 11, 2)
	f.addMood(t, yesterday, mood.Entry{ChildProfileID: f.kofi.ID, Mood: mood.Sad})
	f.addMood(t, dates.Of(today),
		mood.Entry{ChildProfileID: f.kofi.ID, Mood: mood.Calm},
		mood.Entry{ChildProfileID: f.kofi.ID, Mood: mood.Angry})
	f.addMood(t, dates.Of(today), mood.Entry{ChildProfileID: f.kofi.ID, Mood: mood.Tired})

	got, err := f.svc.TodayMood(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, TodayMood{Date: dates.New(2025, 11, 3), ChildProfileID: f.kofi.ID, Mood: mood.Calm}, got)
}

func TestTodayMoodOnlyReadsFirstRecordOfDay(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	f.addMood(t, dates.Of(today), mood.Entry{ChildProfileID: f.kofi.ID + 1, Mood: mood.Sad})
	f.addMood(t, dates.Of(today), mood.Entry{ChildProfileID: f.kofi.ID, Mood: mood.Tired})

	_, err := f.svc.TodayMood(ctx, 10)
	assert.True(t, apperr.IsNotFound(err))
	assert.EqualError(t, err, "No mood found for this child today")
}

func TestMoodHistogram(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	empty, err := f.svc.MoodHistogram(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, mood.Values(), empty.Labels)
	assert.Equal(t, make([]int, 10), empty.Data)

	f.addMood(t, dates.New(2024, 1, 5),
		mood.Entry{ChildProfileID: f.kofi.ID, Mood: mood.Happy},
		mood.Entry{ChildProfileID: f.kofi.ID, Mood: "unknown"})
	f.addMood(t, dates.Of(today),
		mood.Entry{ChildProfileID: f.kofi.ID, Mood: mood.Happy},
		mood.Entry{ChildProfileID: f.kofi.ID, Mood: mood.Energetic},
		mood.Entry{ChildProfileID: f.kofi.ID + 1, Mood: mood.Sad})

	h, err := f.svc.MoodHistogram(ctx, 10)
	require.NoError(t, err)
	require.Len(t, h.Labels, 10)
	require.Len(t, h.Data, 10)
	assert.Equal(t, []int{2, 0, 0, 0, 0, 0, 0, 0, 0, 1}, h.Data)
}
