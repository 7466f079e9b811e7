package companion

import (
	"context"
	"slices"
	"strings"

	"github.com/rcliao/companion/internal/model"
)

func folderByID(id string) func(model.Folder) bool {
	return func(f model.Folder) bool { return f.ID == id }
}

func (a *App) Folders() []model.Folder {
	return a.folders.All()
}

func (a *App) Folder(id string) (model.Folder, error) {
	f, ok := a.folders.Find(folderByID(id))
	if !ok {
		return f, notFound("folder", id)
	}
	return f, nil
}

// CreateFolder appends a folder. An empty access defaults to open.
func (a *App) CreateFolder(ctx context.Context, name string, access model.ThreadAccess) (model.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Folder{}, invalid("folder name is required")
	}
	if access == "" {
		access = model.AccessOpen
	}
	if !model.ValidFolderAccess[access] {
		return model.Folder{}, invalid("folder access must be open or sealed, got %q", access)
	}

	f := model.Folder{
		ID:              a.ids.New(),
		Name:            name,
		ConversationIDs: []string{},
		Files:           []model.ProjectFile{},
		ThreadAccess:    access,
	}
	err := a.folders.Mutate(ctx, func(items []model.Folder) ([]model.Folder, error) {
		return append(items, f), nil
	})
	if err != nil {
		return model.Folder{}, err
	}
	return f, nil
}

func (a *App) updateFolder(ctx context.Context, id string, fn func(*model.Folder) error) (model.Folder, error) {
	var updated model.Folder
	err := a.folders.Mutate(ctx, func(items []model.Folder) ([]model.Folder, error) {
		i := slices.IndexFunc(items, folderByID(id))
		if i < 0 {
			return nil, notFound("folder", id)
		}
		if err := fn(&items[i]); err != nil {
			return nil, err
		}
		updated = items[i]
		return items, nil
	})
	return updated, err
}

// UpdateFolder renames a folder and sets its default access. Empty values
// leave the field unchanged.
func (a *App) UpdateFolder(ctx context.Context, id, name string, access model.ThreadAccess) (model.Folder, error) {
	name = strings.TrimSpace(name)
	if access != "" && !model.ValidFolderAccess[access] {
		return model.Folder{}, invalid("folder access must be open or sealed, got %q", access)
	}
	return a.updateFolder(ctx, id, func(f *model.Folder) error {
		if name != "" {
			f.Name = name
		}
		if access != "" {
			f.ThreadAccess = access
		}
		return nil
	})
}

// SetFolderCollapsed records whether the folder is shown collapsed.
func (a *App) SetFolderCollapsed(ctx context.Context, id string, collapsed bool) (model.Folder, error) {
	return a.updateFolder(ctx, id, func(f *model.Folder) error {
		f.IsCollapsed = collapsed
		return nil
	})
}

// DeleteFolder removes the folder and its files. Conversations it referenced are kept.
func (a *App) DeleteFolder(ctx context.Context, id string) error {
	return a.folders.Mutate(ctx, func(items []model.Folder) ([]model.Folder, error) {
		i := slices.IndexFunc(items, folderByID(id))
		if i < 0 {
			return nil, notFound("folder", id)
		}
		return slices.Delete(items, i, i+1), nil
	})
}

// AttachConversation adds a conversation reference. Attaching twice is a no-op.
func (a *App) AttachConversation(ctx context.Context, folderID, convID string) (model.Folder, error) {
	if _, err := a.Conversation(convID); err != nil {
		return model.Folder{}, err
	}
	return a.updateFolder(ctx, folderID, func(f *model.Folder) error {
		if !f.HasConversation(convID) {
			f.ConversationIDs = append(f.ConversationIDs, convID)
		}
		return nil
	})
}

func (a *App) DetachConversation(ctx context.Context, folderID, convID string) (model.Folder, error) {
	return a.updateFolder(ctx, folderID, func(f *model.Folder) error {
		f.ConversationIDs = slices.DeleteFunc(f.ConversationIDs, func(id string) bool { return id == convID })
		return nil
	})
}

// pruneConversation drops a deleted conversation from every folder.
func (a *App) pruneConversation(ctx context.Context, convID string) error {
	referenced := false
	for _, f := range a.folders.All() {
		if f.HasConversation(convID) {
			referenced = true
			break
		}
	}
	if !referenced {
		return nil
	}
	return a.folders.Mutate(ctx, func(items []model.Folder) ([]model.Folder, error) {
		for i := range items {
			items[i].ConversationIDs = slices.DeleteFunc(items[i].ConversationIDs, func(id string) bool { return id == convID })
		}
		return items, nil
	})
}

// AddFile appends a file record to a folder. The payload is stored as given.
func (a *App) AddFile(ctx context.Context, folderID, name, mimeType, data string) (model.ProjectFile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.ProjectFile{}, invalid("file name is required")
	}
	file := model.ProjectFile{
		ID:           a.ids.New(),
		Name:         name,
		Data:         data,
		MimeType:     mimeType,
		Timestamp:    a.nowMillis(),
		ThreadAccess: model.AccessInherit,
	}
	_, err := a.updateFolder(ctx, folderID, func(f *model.Folder) error {
		f.Files = append(f.Files, file)
		return nil
	})
	if err != nil {
		return model.ProjectFile{}, err
	}
	return file, nil
}

func (a *App) DeleteFile(ctx context.Context, folderID, fileID string) error {
	_, err := a.updateFolder(ctx, folderID, func(f *model.Folder) error {
		i := slices.IndexFunc(f.Files, func(p model.ProjectFile) bool { return p.ID == fileID })
		if i < 0 {
			return notFound("file", fileID)
		}
		f.Files = slices.Delete(f.Files, i, i+1)
		return nil
	})
	return err
}

// SetFileAccess sets a file's override: open, sealed or inherit.
func (a *App) SetFileAccess(ctx context.Context, folderID, fileID string, access model.ThreadAccess) (model.ProjectFile, error) {
	if !model.ValidFileAccess[access] {
		return model.ProjectFile{}, invalid("file access must be open, sealed or inherit, got %q", access)
	}
	var updated model.ProjectFile
	_, err := a.updateFolder(ctx, folderID, func(f *model.Folder) error {
		i := slices.IndexFunc(f.Files, func(p model.ProjectFile) bool { return p.ID == fileID })
		if i < 0 {
			return notFound("file", fileID)
		}
		f.Files[i].ThreadAccess = access
		updated = f.Files[i]
		return nil
	})
	return updated, err
}

// FileAccess resolves a file's effective access within its folder.
func (a *App) FileAccess(folderID, fileID string) (model.ThreadAccess, error) {
	f, err := a.Folder(folderID)
	if err != nil {
		return "", err
	}
	for _, file := range f.Files {
		if file.ID == fileID {
			return model.EffectiveAccess(file, f), nil
		}
	}
	return "", notFound("file", fileID)
}
