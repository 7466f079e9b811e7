package companion

import (
	"context"
	"slices"
	"strings"

	"github.com/rcliao/companion/internal/model"
)

func agentByID(id string) func(model.Agent) bool {
	return func(a model.Agent) bool { return a.ID == id }
}

func (a *App) Agents() []model.Agent {
	return a.agents.All()
}

func (a *App) Agent(id string) (model.Agent, error) {
	ag, ok := a.agents.Find(agentByID(id))
	if !ok {
		return ag, notFound("agent", id)
	}
	return ag, nil
}

// defaultAgentID is the agent new conversations are assigned to.
func (a *App) defaultAgentID() string {
	if ag, ok := a.agents.Find(func(ag model.Agent) bool { return ag.IsDefault }); ok {
		return ag.ID
	}
	return DefaultAgentID
}

// CreateAgent runs the agent wizard: instructions are drafted from the name
// and purpose, and voice calibration starts at 1.
func (a *App) CreateAgent(ctx context.Context, name, purpose, voicePreset string) (model.Agent, error) {
	name = strings.TrimSpace(name)
	purpose = strings.TrimSpace(purpose)
	if name == "" || purpose == "" {
		return model.Agent{}, invalid("agent name and purpose are required")
	}
	if voicePreset == "" {
		voicePreset = model.DefaultVoicePreset
	}
	if !model.ValidVoicePresets[voicePreset] {
		return model.Agent{}, invalid("unknown voice preset %q", voicePreset)
	}
	ag := model.Agent{
		ID:               a.ids.New(),
		Name:             name,
		Instructions:     draftInstructions(name, purpose),
		VoicePreset:      voicePreset,
		VoiceSpeed:       1,
		Pitch:            1,
		KnowledgeSources: []model.KnowledgeSource{},
	}
	err := a.agents.Mutate(ctx, func(items []model.Agent) ([]model.Agent, error) {
		return append(items, ag), nil
	})
	if err != nil {
		return model.Agent{}, err
	}
	return ag, nil
}

// AgentPatch lists the agent fields to change. Nil fields are left alone.
type AgentPatch struct {
	Name         *string
	Instructions *string
	VoicePreset  *string
	VoiceSpeed   *float64
	Pitch        *float64
}

func (p AgentPatch) validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return invalid("agent name cannot be empty")
	}
	if p.Instructions != nil && strings.TrimSpace(*p.Instructions) == "" {
		return invalid("agent instructions cannot be empty")
	}
	if p.VoicePreset != nil && !model.ValidVoicePresets[*p.VoicePreset] {
		return invalid("unknown voice preset %q", *p.VoicePreset)
	}
	if p.VoiceSpeed != nil && (*p.VoiceSpeed < model.MinVoiceSpeed || *p.VoiceSpeed > model.MaxVoiceSpeed) {
		return invalid("voice speed must be between %.1f and %.1f", model.MinVoiceSpeed, model.MaxVoiceSpeed)
	}
	if p.Pitch != nil && (*p.Pitch < model.MinPitch || *p.Pitch > model.MaxPitch) {
		return invalid("pitch must be between %.1f and %.1f", model.MinPitch, model.MaxPitch)
	}
	return nil
}

func (a *App) updateAgent(ctx context.Context, id string, fn func(*model.Agent) error) (model.Agent, error) {
	var updated model.Agent
	err := a.agents.Mutate(ctx, func(items []model.Agent) ([]model.Agent, error) {
		i := slices.IndexFunc(items, agentByID(id))
		if i < 0 {
			return nil, notFound("agent", id)
		}
		if err := fn(&items[i]); err != nil {
			return nil, err
		}
		updated = items[i]
		return items, nil
	})
	return updated, err
}

func (a *App) UpdateAgent(ctx context.Context, id string, patch AgentPatch) (model.Agent, error) {
	if err := patch.validate(); err != nil {
		return model.Agent{}, err
	}
	return a.updateAgent(ctx, id, func(ag *model.Agent) error {
		if patch.Name != nil {
			ag.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Instructions != nil {
			ag.Instructions = *patch.Instructions
		}
		if patch.VoicePreset != nil {
			ag.VoicePreset = *patch.VoicePreset
		}
		if patch.VoiceSpeed != nil {
			ag.VoiceSpeed = *patch.VoiceSpeed
		}
		if patch.Pitch != nil {
			ag.Pitch = *patch.Pitch
		}
		return nil
	})
}

// AddKnowledgeSource attaches a url or file reference to an agent.
func (a *App) AddKnowledgeSource(ctx context.Context, agentID, kind, value string) (model.KnowledgeSource, error) {
	if !model.ValidKnowledgeTypes[kind] {
		return model.KnowledgeSource{}, invalid("knowledge source type must be url or file, got %q", kind)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return model.KnowledgeSource{}, invalid("knowledge source value is required")
	}
	src := model.KnowledgeSource{
		ID:        a.ids.New(),
		Type:      kind,
		Value:     value,
		Timestamp: a.nowMillis(),
	}
	_, err := a.updateAgent(ctx, agentID, func(ag *model.Agent) error {
		ag.KnowledgeSources = append(ag.KnowledgeSources, src)
		return nil
	})
	if err != nil {
		return model.KnowledgeSource{}, err
	}
	return src, nil
}

func (a *App) RemoveKnowledgeSource(ctx context.Context, agentID, sourceID string) error {
	_, err := a.updateAgent(ctx, agentID, func(ag *model.Agent) error {
		i := slices.IndexFunc(ag.KnowledgeSources, func(s model.KnowledgeSource) bool { return s.ID == sourceID })
		if i < 0 {
			return notFound("knowledge source", sourceID)
		}
		ag.KnowledgeSources = slices.Delete(ag.KnowledgeSources, i, i+1)
		return nil
	})
	return err
}

// DeleteAgent removes an agent. The default agent cannot be deleted.
// Conversations that used it fall back to the default persona.
func (a *App) DeleteAgent(ctx context.Context, id string) error {
	return a.agents.Mutate(ctx, func(items []model.Agent) ([]model.Agent, error) {
		i := slices.IndexFunc(items, agentByID(id))
		if i < 0 {
			return nil, notFound("agent", id)
		}
		if items[i].IsDefault {
			return nil, invalid("the default agent cannot be deleted")
		}
		return slices.Delete(items, i, i+1), nil
	})
}

// SetDefaultAgent makes id the only default agent.
func (a *App) SetDefaultAgent(ctx context.Context, id string) (model.Agent, error) {
	var updated model.Agent
	err := a.agents.Mutate(ctx, func(items []model.Agent) ([]model.Agent, error) {
		i := slices.IndexFunc(items, agentByID(id))
		if i < 0 {
			return nil, notFound("agent", id)
		}
		for j := range items {
			items[j].IsDefault = j == i
		}
		updated = items[i]
		return items, nil
	})
	return updated, err
}
