package companion

import (
	"context"
	"slices"
	"strings"

	"github.com/rcliao/companion/internal/model"
)

// Memories returns the neural memories, newest first.
func (a *App) Memories() []model.NeuralMemory {
	return a.memories.All()
}

func (a *App) AddMemory(ctx context.Context, title, instructions string) (model.NeuralMemory, error) {
	title = strings.TrimSpace(title)
	instructions = strings.TrimSpace(instructions)
	if title == "" || instructions == "" {
		return model.NeuralMemory{}, invalid("memory title and instructions are required")
	}
	m := model.NeuralMemory{
		ID:           a.ids.New(),
		Title:        title,
		Instructions: instructions,
		Timestamp:    a.nowMillis(),
	}
	err := a.memories.Mutate(ctx, func(items []model.NeuralMemory) ([]model.NeuralMemory, error) {
		return append([]model.NeuralMemory{m}, items...), nil
	})
	if err != nil {
		return model.NeuralMemory{}, err
	}
	return m, nil
}

func (a *App) UpdateMemory(ctx context.Context, id, title, instructions string) (model.NeuralMemory, error) {
	title = strings.TrimSpace(title)
	instructions = strings.TrimSpace(instructions)
	if title == "" || instructions == "" {
		return model.NeuralMemory{}, invalid("memory title and instructions are required")
	}
	var updated model.NeuralMemory
	err := a.memories.Mutate(ctx, func(items []model.NeuralMemory) ([]model.NeuralMemory, error) {
		i := slices.IndexFunc(items, func(m model.NeuralMemory) bool { return m.ID == id })
		if i < 0 {
			return nil, notFound("memory", id)
		}
		items[i].Title = title
		items[i].Instructions = instructions
		items[i].Timestamp = a.nowMillis()
		updated = items[i]
		return items, nil
	})
	return updated, err
}

func (a *App) DeleteMemory(ctx context.Context, id string) error {
	return a.memories.Mutate(ctx, func(items []model.NeuralMemory) ([]model.NeuralMemory, error) {
		i := slices.IndexFunc(items, func(m model.NeuralMemory) bool { return m.ID == id })
		if i < 0 {
			return nil, notFound("memory", id)
		}
		return slices.Delete(items, i, i+1), nil
	})
}
