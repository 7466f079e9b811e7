package companion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/companion/internal/model"
)

func TestToggleTaskTwiceIsIdentity(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, nil)

	orig, err := app.AddTask(ctx, "Call abuela", "high")
	require.NoError(t, err)

	once, err := app.ToggleTask(ctx, orig.ID)
	require.NoError(t, err)
	assert.True(t, once.Completed)

	twice, err := app.ToggleTask(ctx, orig.ID)
	require.NoError(t, err)
	assert.Equal(t, orig, twice)
}

func TestTaskFiltersAndStats(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, nil)

	_, err := app.AddTask(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = app.AddTask(ctx, "x", "urgent")
	assert.ErrorIs(t, err, ErrInvalid)

	a, err := app.AddTask(ctx, "One", "")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPriority, a.Priority)
	b, err := app.AddTask(ctx, "Two", "low")
	require.NoError(t, err)
	_, err = app.AddTask(ctx, "Three", "high")
	require.NoError(t, err)
	_, err = app.ToggleTask(ctx, b.ID)
	require.NoError(t, err)

	active, err := app.FilterTasks(FilterActive)
	require.NoError(t, err)
	assert.Len(t, active, 2)
	done, err := app.FilterTasks(FilterCompleted)
	require.NoError(t, err)
	require.Len(t, done, 1)
	assert.Equal(t, b.ID, done[0].ID)
	_, err = app.FilterTasks("someday")
	assert.ErrorIs(t, err, ErrInvalid)

	assert.Equal(t, TaskStats{Total: 3, Active: 2, Completed: 1}, app.TaskStats())

	require.NoError(t, app.DeleteTask(ctx, a.ID))
	all, _ := app.FilterTasks(FilterAll)
	assert.Len(t, all, 2)
}

func TestNoteLifecycle(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	app := newTestApp(t, nil, WithClock(clock.Now))

	n, err := app.CreateNote(ctx, "Groceries", "")
	require.NoError(t, err)
	created := n.Timestamp

	clock.Advance(10 * time.Minute)
	_, err = app.EditNote(ctx, n.ID, "Groceries", "Milk, eggs")
	require.NoError(t, err)

	notes := app.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, "Groceries", notes[0].Title)
	assert.Equal(t, "Milk, eggs", notes[0].Content)
	assert.Equal(t, model.MillisOf(clock.Now()), notes[0].Timestamp)
	assert.NotEqual(t, created, notes[0].Timestamp)
}

func TestNotesDefaultsAndSearch(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, nil)

	n, err := app.CreateNote(ctx, "", "rice and gandules for Sunday")
	require.NoError(t, err)
	assert.Equal(t, DefaultNoteTitle, n.Title)
	_, err = app.CreateNote(ctx, "Shopping", "rice")
	require.NoError(t, err)

	assert.Len(t, app.SearchNotes("RICE"), 2)
	assert.Len(t, app.SearchNotes("shop"), 1)
	assert.Len(t, app.SearchNotes(""), 2)

	require.NoError(t, app.DeleteNote(ctx, n.ID))
	assert.Len(t, app.Notes(), 1)
}

func TestMemories(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	app := newTestApp(t, nil, WithClock(clock.Now))

	_, err := app.AddMemory(ctx, "Title only", "")
	assert.ErrorIs(t, err, ErrInvalid)

	m, err := app.AddMemory(ctx, "Diet", "Low sugar suggestions")
	require.NoError(t, err)
	clock.Advance(time.Hour)
	m, err = app.UpdateMemory(ctx, m.ID, "Diet", "No sugar suggestions")
	require.NoError(t, err)
	assert.Equal(t, model.MillisOf(clock.Now()), m.Timestamp)
	assert.Equal(t, "No sugar suggestions", app.Memories()[0].Instructions)

	require.NoError(t, app.DeleteMemory(ctx, m.ID))
	assert.Empty(t, app.Memories())
}

func TestRemindersSortedByDue(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, nil)
	base := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	_, err := app.AddReminder(ctx, " ", base, "")
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = app.AddReminder(ctx, "x", base, "hourly")
	assert.ErrorIs(t, err, ErrInvalid)

	late, err := app.AddReminder(ctx, "Dentist", base.Add(48*time.Hour), "")
	require.NoError(t, err)
	assert.Equal(t, model.RepeatOnce, late.Repeat)
	early, err := app.AddReminder(ctx, "Insulin", base, model.RepeatDaily)
	require.NoError(t, err)

	got := app.Reminders()
	require.Len(t, got, 2)
	assert.Equal(t, early.ID, got[0].ID)
	assert.Equal(t, late.ID, got[1].ID)

	moved, err := app.UpdateReminder(ctx, late.ID, "Dentist", base.Add(-time.Hour), model.RepeatWeekly)
	require.NoError(t, err)
	assert.Equal(t, model.RepeatWeekly, moved.Repeat)
	assert.Equal(t, late.ID, app.Reminders()[0].ID)

	require.NoError(t, app.DeleteReminder(ctx, early.ID))
	assert.Len(t, app.Reminders(), 1)
}
