package companion

import (
	"context"
	"slices"
	"strings"

	"github.com/rcliao/companion/internal/model"
)

// Task filters.
const (
	FilterAll       = "all"
	FilterActive    = "active"
	FilterCompleted = "completed"
)

// TaskStats counts tasks by state.
type TaskStats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// AddTask prepends a task. An empty priority defaults to med.
func (a *App) AddTask(ctx context.Context, title, priority string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, invalid("task title is required")
	}
	if priority == "" {
		priority = model.DefaultPriority
	}
	if !model.ValidPriorities[priority] {
		return model.Task{}, invalid("priority must be low, med or high, got %q", priority)
	}
	t := model.Task{
		ID:        a.ids.New(),
		Title:     title,
		Priority:  priority,
		Timestamp: a.nowMillis(),
	}
	err := a.tasks.Mutate(ctx, func(items []model.Task) ([]model.Task, error) {
		return append([]model.Task{t}, items...), nil
	})
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// ToggleTask flips completed and leaves every other field alone.
func (a *App) ToggleTask(ctx context.Context, id string) (model.Task, error) {
	var updated model.Task
	err := a.tasks.Mutate(ctx, func(items []model.Task) ([]model.Task, error) {
		i := slices.IndexFunc(items, func(t model.Task) bool { return t.ID == id })
		if i < 0 {
			return nil, notFound("task", id)
		}
		items[i].Completed = !items[i].Completed
		updated = items[i]
		return items, nil
	})
	return updated, err
}

func (a *App) DeleteTask(ctx context.Context, id string) error {
	return a.tasks.Mutate(ctx, func(items []model.Task) ([]model.Task, error) {
		i := slices.IndexFunc(items, func(t model.Task) bool { return t.ID == id })
		if i < 0 {
			return nil, notFound("task", id)
		}
		return slices.Delete(items, i, i+1), nil
	})
}

// FilterTasks returns tasks for all, active or completed.
func (a *App) FilterTasks(filter string) ([]model.Task, error) {
	all := a.tasks.All()
	switch filter {
	case "", FilterAll:
		return all, nil
	case FilterActive:
		return slices.DeleteFunc(all, func(t model.Task) bool { return t.Completed }), nil
	case FilterCompleted:
		return slices.DeleteFunc(all, func(t model.Task) bool { return !t.Completed }), nil
	default:
		return nil, invalid("filter must be all, active or completed, got %q", filter)
	}
}

func (a *App) TaskStats() TaskStats {
	var st TaskStats
	for _, t := range a.tasks.All() {
		st.Total++
		if t.Completed {
			st.Completed++
		} else {
			st.Active++
		}
	}
	return st
}
