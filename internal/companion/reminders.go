package companion

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/rcliao/companion/internal/model"
)

func validReminder(title, repeat string) (string, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", invalid("reminder title is required")
	}
	if repeat == "" {
		repeat = model.RepeatOnce
	}
	if !model.ValidRepeats[repeat] {
		return "", "", invalid("repeat must be once, daily or weekly, got %q", repeat)
	}
	return title, repeat, nil
}

// AddReminder appends a reminder due at due. Nothing fires it.
func (a *App) AddReminder(ctx context.Context, title string, due time.Time, repeat string) (model.Reminder, error) {
	title, repeat, err := validReminder(title, repeat)
	if err != nil {
		return model.Reminder{}, err
	}
	r := model.Reminder{
		ID:        a.ids.New(),
		Title:     title,
		Timestamp: model.MillisOf(due),
		Repeat:    repeat,
	}
	err = a.reminders.Mutate(ctx, func(items []model.Reminder) ([]model.Reminder, error) {
		return append(items, r), nil
	})
	if err != nil {
		return model.Reminder{}, err
	}
	return r, nil
}

func (a *App) UpdateReminder(ctx context.Context, id, title string, due time.Time, repeat string) (model.Reminder, error) {
	title, repeat, err := validReminder(title, repeat)
	if err != nil {
		return model.Reminder{}, err
	}
	var updated model.Reminder
	err = a.reminders.Mutate(ctx, func(items []model.Reminder) ([]model.Reminder, error) {
		i := slices.IndexFunc(items, func(r model.Reminder) bool { return r.ID == id })
		if i < 0 {
			return nil, notFound("reminder", id)
		}
		items[i].Title = title
		items[i].Timestamp = model.MillisOf(due)
		items[i].Repeat = repeat
		updated = items[i]
		return items, nil
	})
	return updated, err
}

func (a *App) DeleteReminder(ctx context.Context, id string) error {
	return a.reminders.Mutate(ctx, func(items []model.Reminder) ([]model.Reminder, error) {
		i := slices.IndexFunc(items, func(r model.Reminder) bool { return r.ID == id })
		if i < 0 {
			return nil, notFound("reminder", id)
		}
		return slices.Delete(items, i, i+1), nil
	})
}

// Reminders returns every reminder, soonest due first.
func (a *App) Reminders() []model.Reminder {
	all := a.reminders.All()
	slices.SortStableFunc(all, func(x, y model.Reminder) int {
		return cmp.Compare(x.Timestamp, y.Timestamp)
	})
	return all
}
