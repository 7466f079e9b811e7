package companion

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/companion/internal/gateway"
	"github.com/rcliao/companion/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestCreateAgent(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, nil)

	_, err := app.CreateAgent(ctx, "", "anything", "")
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = app.CreateAgent(ctx, "Coach", "train", "Robot")
	assert.ErrorIs(t, err, ErrInvalid)

	ag, err := app.CreateAgent(ctx, "Coach", "plan weekly workouts", "")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultVoicePreset, ag.VoicePreset)
	assert.Equal(t, 1.0, ag.VoiceSpeed)
	assert.Equal(t, 1.0, ag.Pitch)
	assert.True(t, strings.HasPrefix(ag.Instructions, "You are Coach, a specialized Council member created to plan weekly workouts."))
	assert.False(t, ag.IsDefault)
	assert.Len(t, app.Agents(), 2)
}

func TestUpdateAgentRanges(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, nil)
	ag, err := app.CreateAgent(ctx, "Coach", "plan workouts", "Puck")
	require.NoError(t, err)

	_, err = app.UpdateAgent(ctx, ag.ID, AgentPatch{VoiceSpeed: ptr(2.5)})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = app.UpdateAgent(ctx, ag.ID, AgentPatch{Pitch: ptr(0.4)})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = app.UpdateAgent(ctx, ag.ID, AgentPatch{Name: ptr(" ")})
	assert.ErrorIs(t, err, ErrInvalid)

	updated, err := app.UpdateAgent(ctx, ag.ID, AgentPatch{
		VoiceSpeed:  ptr(1.5),
		Pitch:       ptr(0.8),
		VoicePreset: ptr("Zephyr"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1.5, updated.VoiceSpeed)
	assert.Equal(t, 0.8, updated.Pitch)
	assert.Equal(t, "Zephyr", updated.VoicePreset)
	assert.Equal(t, "Coach", updated.Name)
}

func TestKnowledgeSources(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, nil)

	_, err := app.AddKnowledgeSource(ctx, DefaultAgentID, "pdf", "x")
	assert.ErrorIs(t, err, ErrInvalid)

	src, err := app.AddKnowledgeSource(ctx, DefaultAgentID, "url", "https://example.com/bible")
	require.NoError(t, err)
	ag, _ := app.Agent(DefaultAgentID)
	require.Len(t, ag.KnowledgeSources, 1)

	require.NoError(t, app.RemoveKnowledgeSource(ctx, DefaultAgentID, src.ID))
	ag, _ = app.Agent(DefaultAgentID)
	assert.Empty(t, ag.KnowledgeSources)
}

func TestDefaultAgentProtected(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, nil)

	assert.ErrorIs(t, app.DeleteAgent(ctx, DefaultAgentID), ErrInvalid)

	ag, err := app.CreateAgent(ctx, "Scribe", "take notes", "")
	require.NoError(t, err)
	_, err = app.SetDefaultAgent(ctx, ag.ID)
	require.NoError(t, err)

	c, err := app.NewConversation(ctx)
	require.NoError(t, err)
	assert.Equal(t, ag.ID, c.AgentID)

	assert.ErrorIs(t, app.DeleteAgent(ctx, ag.ID), ErrInvalid)
	require.NoError(t, app.DeleteAgent(ctx, DefaultAgentID))
	assert.Len(t, app.ConversationsByAgent(DefaultAgentID), 1, "conversations keep their agent id")
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	kv := newTestStore(t)
	app := newTestApp(t, kv)

	_, err := app.UpdateSettings(ctx, func(s *model.AppSettings) { s.ToneStyle = "grumpy" })
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, "default", app.Settings().ToneStyle)

	s, err := app.UpdateSettings(ctx, func(s *model.AppSettings) {
		s.ToneStyle = "candid"
		s.Nickname = " Davo "
	})
	require.NoError(t, err)
	assert.Equal(t, "Davo", s.Nickname)

	reloaded := newTestApp(t, kv)
	assert.Equal(t, "candid", reloaded.Settings().ToneStyle)
}

func TestAdvancedSettings(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t, nil)

	_, err := app.UpdateAdvanced(ctx, func(s *model.AdvancedSettings) { s.Temperature = 3 })
	assert.ErrorIs(t, err, ErrInvalid)

	adv, err := app.UpdateAdvanced(ctx, func(s *model.AdvancedSettings) {
		s.Temperature = 1.2
		s.DebugMode = true
	})
	require.NoError(t, err)
	assert.Equal(t, 1.2, adv.Temperature)

	adv, err = app.ResetAdvanced(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultAdvancedSettings(), adv)
}

func TestVault(t *testing.T) {
	ctx := context.Background()
	prober := gateway.NewProber()
	prober.GeminiListModels = false
	app := newTestApp(t, nil, WithProber(prober))

	assert.ErrorIs(t, app.SetProviderKey(ctx, "mistral", "k"), ErrInvalid)
	assert.ErrorIs(t, app.ProbeProvider(ctx, model.ProviderGemini), gateway.ErrNoKey)

	require.NoError(t, app.SetProviderKey(ctx, model.ProviderGemini, "AIzaSyExampleExampleExample1234"))
	assert.NoError(t, app.ProbeProvider(ctx, model.ProviderGemini))
	assert.Equal(t, "****1234", app.ProviderKeys().Masked().Gemini)

	require.NoError(t, app.ClearProviderKeys(ctx))
	assert.Equal(t, model.ProviderKeys{}, app.ProviderKeys())
}
