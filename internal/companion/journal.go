package companion

import (
	"context"
	"slices"
	"strings"

	"github.com/rcliao/companion/internal/model"
)

// AddSpiritualEntry prepends a reflection, prayer or gratitude entry.
func (a *App) AddSpiritualEntry(ctx context.Context, kind, content, scripture string) (model.SpiritualEntry, error) {
	if !model.ValidSpiritualTypes[kind] {
		return model.SpiritualEntry{}, invalid("unknown spiritual entry type %q", kind)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return model.SpiritualEntry{}, invalid("entry content is required")
	}
	e := model.SpiritualEntry{
		ID:                 a.ids.New(),
		Type:               kind,
		Content:            content,
		Timestamp:          a.nowMillis(),
		ScriptureReference: strings.TrimSpace(scripture),
	}
	err := a.spiritual.Mutate(ctx, func(items []model.SpiritualEntry) ([]model.SpiritualEntry, error) {
		return append([]model.SpiritualEntry{e}, items...), nil
	})
	if err != nil {
		return model.SpiritualEntry{}, err
	}
	return e, nil
}

// SpiritualEntries returns entries of one type, or all when kind is empty.
func (a *App) SpiritualEntries(kind string) []model.SpiritualEntry {
	all := a.spiritual.All()
	if kind == "" {
		return all
	}
	return slices.DeleteFunc(all, func(e model.SpiritualEntry) bool { return e.Type != kind })
}

// AddMediaEntry prepends a rated media log entry.
func (a *App) AddMediaEntry(ctx context.Context, kind, title, creator string, rating int, reflection string) (model.MediaEntry, error) {
	if !model.ValidMediaTypes[kind] {
		return model.MediaEntry{}, invalid("unknown media type %q", kind)
	}
	title = strings.TrimSpace(title)
	creator = strings.TrimSpace(creator)
	if title == "" || creator == "" {
		return model.MediaEntry{}, invalid("title and creator are required")
	}
	if rating < model.MinRating || rating > model.MaxRating {
		return model.MediaEntry{}, invalid("rating must be between %d and %d, got %d", model.MinRating, model.MaxRating, rating)
	}
	e := model.MediaEntry{
		ID:         a.ids.New(),
		Title:      title,
		Creator:    creator,
		Type:       kind,
		Rating:     rating,
		Reflection: strings.TrimSpace(reflection),
		Timestamp:  a.nowMillis(),
	}
	err := a.media.Mutate(ctx, func(items []model.MediaEntry) ([]model.MediaEntry, error) {
		return append([]model.MediaEntry{e}, items...), nil
	})
	if err != nil {
		return model.MediaEntry{}, err
	}
	return e, nil
}

// MediaEntries returns entries of one type, or all when kind is empty.
func (a *App) MediaEntries(kind string) []model.MediaEntry {
	all := a.media.All()
	if kind == "" {
		return all
	}
	return slices.DeleteFunc(all, func(e model.MediaEntry) bool { return e.Type != kind })
}

// MediaAverageRating averages the ratings of entries of kind (all when empty).
// It returns 0 when there are none.
func (a *App) MediaAverageRating(kind string) float64 {
	entries := a.MediaEntries(kind)
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, e := range entries {
		sum += e.Rating
	}
	return float64(sum) / float64(len(entries))
}
