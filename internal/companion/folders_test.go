package companion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/companion/internal/model"
)

func TestCreateFolder(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, nil)

	_, err := app.CreateFolder(ctx, "  ", "")
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = app.CreateFolder(ctx, "Work", model.AccessInherit)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Empty(t, app.Folders())

	a, err := app.CreateFolder(ctx, "Work", "")
	require.NoError(t, err)
	assert.Equal(t, model.AccessOpen, a.ThreadAccess)
	b, err := app.CreateFolder(ctx, "Private", model.AccessSealed)
	require.NoError(t, err)

	folders := app.Folders()
	require.Len(t, folders, 2)
	assert.Equal(t, a.ID, folders[0].ID, "folders are appended")
	assert.Equal(t, b.ID, folders[1].ID)
}

func TestFolderDeleteDoesNotCascade(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, nil)
	conv, err := app.NewConversation(ctx)
	require.NoError(t, err)

	f, err := app.CreateFolder(ctx, "Trips", "")
	require.NoError(t, err)
	_, err = app.AttachConversation(ctx, f.ID, conv.ID)
	require.NoError(t, err)

	require.NoError(t, app.DeleteFolder(ctx, f.ID))
	assert.Empty(t, app.Folders())

	_, err = app.Conversation(conv.ID)
	assert.NoError(t, err)
	assert.Len(t, app.Conversations(), 2)
}

func TestAttachDetach(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, nil)
	conv := app.Conversations()[0]
	f, err := app.CreateFolder(ctx, "Inbox", "")
	require.NoError(t, err)

	_, err = app.AttachConversation(ctx, f.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = app.AttachConversation(ctx, f.ID, conv.ID)
	require.NoError(t, err)
	f, err = app.AttachConversation(ctx, f.ID, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{conv.ID}, f.ConversationIDs)

	f, err = app.DetachConversation(ctx, f.ID, conv.ID)
	require.NoError(t, err)
	assert.Empty(t, f.ConversationIDs)
}

func TestFileAccessResolution(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, nil)

	f, err := app.CreateFolder(ctx, "Vault", model.AccessSealed)
	require.NoError(t, err)
	file, err := app.AddFile(ctx, f.ID, "notes.pdf", "application/pdf", "placeholder")
	require.NoError(t, err)
	assert.Equal(t, model.AccessInherit, file.ThreadAccess)

	got, err := app.FileAccess(f.ID, file.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AccessSealed, got)

	_, err = app.SetFileAccess(ctx, f.ID, file.ID, model.AccessOpen)
	require.NoError(t, err)
	got, err = app.FileAccess(f.ID, file.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AccessOpen, got)

	_, err = app.SetFileAccess(ctx, f.ID, file.ID, "secret")
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = app.UpdateFolder(ctx, f.ID, "", model.AccessOpen)
	require.NoError(t, err)
	_, err = app.SetFileAccess(ctx, f.ID, file.ID, model.AccessInherit)
	require.NoError(t, err)
	got, _ = app.FileAccess(f.ID, file.ID)
	assert.Equal(t, model.AccessOpen, got)

	require.NoError(t, app.DeleteFile(ctx, f.ID, file.ID))
	_, err = app.FileAccess(f.ID, file.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateFolder(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, nil)
	f, err := app.CreateFolder(ctx, "Old", "")
	require.NoError(t, err)

	f, err = app.UpdateFolder(ctx, f.ID, "New", "")
	require.NoError(t, err)
	assert.Equal(t, "New", f.Name)
	assert.Equal(t, model.AccessOpen, f.ThreadAccess)

	f, err = app.SetFolderCollapsed(ctx, f.ID, true)
	require.NoError(t, err)
	assert.True(t, f.IsCollapsed)
}
