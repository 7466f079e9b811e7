package companion

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/companion/internal/model"
	"github.com/rcliao/companion/internal/record"
)

func populate(t *testing.T, app *App) {
	t.Helper()
	ctx := context.Background()
	conv := app.Conversations()[0]
	_, err := app.Send(ctx, conv.ID, "Hello")
	require.NoError(t, err)
	f, err := app.CreateFolder(ctx, "Family", model.AccessSealed)
	require.NoError(t, err)
	_, err = app.AddFile(ctx, f.ID, "photo.jpg", "image/jpeg", "placeholder")
	require.NoError(t, err)
	_, err = app.AttachConversation(ctx, f.ID, conv.ID)
	require.NoError(t, err)
	_, err = app.LogReading(ctx, "glucose", 104)
	require.NoError(t, err)
	_, err = app.StartTrip(ctx)
	require.NoError(t, err)
	_, err = app.AddSpiritualEntry(ctx, "prayer", "Peace", "John 14:27")
	require.NoError(t, err)
	_, err = app.AddMediaEntry(ctx, "music", "Album", "Artist", 10, "Beautiful")
	require.NoError(t, err)
	_, err = app.AddTask(ctx, "Walk", "low")
	require.NoError(t, err)
	_, err = app.CreateNote(ctx, "Groceries", "Milk")
	require.NoError(t, err)
	_, err = app.AddMemory(ctx, "Units", "Metric")
	require.NoError(t, err)
	_, err = app.AddReminder(ctx, "Pills", app.now(), model.RepeatDaily)
	require.NoError(t, err)
	_, err = app.CreateAgent(ctx, "Coach", "plan workouts", "")
	require.NoError(t, err)
	_, err = app.UpdateSettings(ctx, func(s *model.AppSettings) { s.FontSize = 1.2 })
	require.NoError(t, err)
	_, err = app.UpdateAdvanced(ctx, func(s *model.AdvancedSettings) { s.TopP = 0.5 })
	require.NoError(t, err)
	require.NoError(t, app.SetProviderKey(ctx, model.ProviderOpenAI, "sk-test"))
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestApp(t, nil)
	populate(t, src)

	exported, err := src.Export(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(exported), "{\n  \""), "two-space indent")

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(exported, &doc))
	assert.Len(t, doc, len(src.Keys()))

	dst := newTestApp(t, nil)
	report, err := dst.Import(ctx, exported)
	require.NoError(t, err)
	assert.Len(t, report.Restored, len(src.Keys()))
	assert.Empty(t, report.Unknown)

	again, err := dst.Export(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, string(exported), string(again))

	assert.Equal(t, src.Conversations(), dst.Conversations())
	assert.Equal(t, src.Folders(), dst.Folders())
	assert.Equal(t, src.Agents(), dst.Agents())
	assert.Equal(t, src.ProviderKeys(), dst.ProviderKeys())
}

func TestImportLegacyKeys(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, nil)

	legacy := `{
	  "fredo_conversations": [{"id":"1700000000000","title":"Old chat","lastUpdate":1700000000000,
	    "messages":[{"id":"1","role":"model","content":"hola","timestamp":1700000000000}],
	    "mode":"default","agentId":"fredo"}],
	  "@fredo_folders": [{"id":"f1","name":"Work","conversationIds":["1700000000000"],
	    "files":[{"id":"x","name":"a.txt","data":"","mimeType":"text/plain","timestamp":1}]}],
	  "@fredo_advanced_settings": {"temperature":1.1},
	  "tasks": [{"id":"t1","title":"Old task","completed":false,"timestamp":5}],
	  "unknown_key": []
	}`
	report, err := app.Import(ctx, []byte(legacy))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{KeyConversations, KeyFolders, KeyAdvancedSettings, KeyTasks}, report.Restored)
	assert.Equal(t, []string{"unknown_key"}, report.Unknown)

	conv, err := app.Conversation("1700000000000")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAssistant, conv.Messages[0].Role)

	f, err := app.Folder("f1")
	require.NoError(t, err)
	assert.Equal(t, model.AccessOpen, f.ThreadAccess)
	access, err := app.FileAccess("f1", "x")
	require.NoError(t, err)
	assert.Equal(t, model.AccessOpen, access)

	assert.Equal(t, 1.1, app.Advanced().Temperature)
	assert.Equal(t, 2048, app.Advanced().MaxTokens)

	tasks, _ := app.FilterTasks(FilterAll)
	assert.Equal(t, model.DefaultPriority, tasks[0].Priority)
}

func TestImportRejectsMalformedValues(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, nil)
	_, err := app.AddTask(ctx, "Keep me", "")
	require.NoError(t, err)

	report, err := app.Import(ctx, []byte(`{"tasks":{"not":"a list"},"notes":[]}`))
	assert.ErrorIs(t, err, record.ErrCorrupt)
	assert.Contains(t, report.Failed, "tasks")
	assert.Equal(t, []string{KeyNotes}, report.Restored)
	assert.Equal(t, 1, app.TaskStats().Total)

	_, err = app.Import(ctx, []byte(`[1,2]`))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestImportSkipsNullValues(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, nil)
	_, err := app.AddTask(ctx, "Keep me", "")
	require.NoError(t, err)

	report, err := app.Import(ctx, []byte(`{"tasks":null,"notes":[]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"tasks"}, report.Skipped)
	assert.Equal(t, []string{KeyNotes}, report.Restored)
	assert.Equal(t, 1, app.TaskStats().Total)
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	kv := newTestStore(t)
	app := newTestApp(t, kv)
	populate(t, app)

	require.NoError(t, app.ClearAll(ctx))

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	d := app.Dashboard()
	assert.Zero(t, d.Conversations)
	assert.Zero(t, d.Tasks.Total)
	assert.Zero(t, d.Notes)
	assert.False(t, d.ActiveTrip)
	assert.Equal(t, model.ProviderKeys{}, app.ProviderKeys())
	assert.Equal(t, model.DefaultAdvancedSettings(), app.Advanced())

	next := newTestApp(t, kv)
	assert.Len(t, next.Conversations(), 1, "seed returns on next session")
}

func TestDashboard(t *testing.T) {
	app := newTestApp(t, nil)
	populate(t, app)

	d := app.Dashboard()
	assert.Equal(t, 1, d.Conversations)
	assert.Equal(t, 3, d.Messages)
	assert.Equal(t, 1, d.HealthReadings)
	assert.Equal(t, 1, d.SpiritualEntries)
	assert.Equal(t, 1, d.MediaItems)
	assert.Equal(t, 1, d.Tasks.Total)
	assert.Equal(t, 1, d.Notes)
	assert.Equal(t, 1, d.Folders)
	assert.True(t, d.ActiveTrip)
	assert.Empty(t, d.Unsaved)
}
