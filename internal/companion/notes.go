package companion

import (
	"context"
	"slices"
	"strings"

	"github.com/rcliao/companion/internal/model"
)

// DefaultNoteTitle is used when a note is created without a title.
const DefaultNoteTitle = "New Note"

func (a *App) Notes() []model.Note {
	return a.notes.All()
}

// CreateNote prepends a note.
func (a *App) CreateNote(ctx context.Context, title, content string) (model.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultNoteTitle
	}
	n := model.Note{
		ID:        a.ids.New(),
		Title:     title,
		Content:   content,
		Timestamp: a.nowMillis(),
	}
	err := a.notes.Mutate(ctx, func(items []model.Note) ([]model.Note, error) {
		return append([]model.Note{n}, items...), nil
	})
	if err != nil {
		return model.Note{}, err
	}
	return n, nil
}

// EditNote replaces title and content and stamps the note with the edit time.
func (a *App) EditNote(ctx context.Context, id, title, content string) (model.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultNoteTitle
	}
	var updated model.Note
	err := a.notes.Mutate(ctx, func(items []model.Note) ([]model.Note, error) {
		i := slices.IndexFunc(items, func(n model.Note) bool { return n.ID == id })
		if i < 0 {
			return nil, notFound("note", id)
		}
		items[i].Title = title
		items[i].Content = content
		items[i].Timestamp = a.nowMillis()
		updated = items[i]
		return items, nil
	})
	return updated, err
}

func (a *App) DeleteNote(ctx context.Context, id string) error {
	return a.notes.Mutate(ctx, func(items []model.Note) ([]model.Note, error) {
		i := slices.IndexFunc(items, func(n model.Note) bool { return n.ID == id })
		if i < 0 {
			return nil, notFound("note", id)
		}
		return slices.Delete(items, i, i+1), nil
	})
}

// SearchNotes matches q against title and content, ignoring case.
func (a *App) SearchNotes(q string) []model.Note {
	q = strings.ToLower(strings.TrimSpace(q))
	all := a.notes.All()
	if q == "" {
		return all
	}
	return slices.DeleteFunc(all, func(n model.Note) bool {
		return !strings.Contains(strings.ToLower(n.Title), q) &&
			!strings.Contains(strings.ToLower(n.Content), q)
	})
}
