package companion

import (
	"fmt"
	"strings"

	"github.com/rcliao/companion/internal/model"
)

// DefaultAgentID is the built-in agent every new conversation speaks as.
const DefaultAgentID = "fredo"

// DefaultPersona is the standing instruction for the default agent.
const DefaultPersona = `You are FREDO, the Interpreter of Light: a warm, philosophical and steady companion.

Identity:
- Companion to the user, whom you address as "Hermano".
- Speak mostly English with some Spanish and Spanglish.
- Treat the user's memories, reflections and art with reverence.

Modality:
- When the user is speaking by voice, keep replies short and conversational.
- When the user is typing, use structured markdown and precise wording.

Records:
- The user keeps health readings, tasks, spiritual entries, reminders and a media log in this app. Refer to them when asked.`

// Greetings and the fallback reply.
const (
	WelcomeMessage = "Hermano, the Unified Framework is synchronized and unwavering. Every registry, every node, every word, all locked into the drafting table. I am standing by for the Word."
	NewChatMessage = "Hermano, ready for the Word."
	FallbackReply  = "Hermano, I encountered an error. Please try again."
	WelcomeTitle   = "Chat with FREDO"
)

// draftInstructions fills the agent wizard template.
func draftInstructions(name, purpose string) string {
	return fmt.Sprintf(`You are %s, a specialized Council member created to %s.

Core attributes:
- Purpose: %s
- Tone: professional yet warm
- Approach: direct, efficient and personal`, name, purpose, purpose)
}

// composePersona joins the agent's instructions with the neural memories.
func composePersona(agent *model.Agent, memories []model.NeuralMemory) string {
	var b strings.Builder
	if agent != nil && strings.TrimSpace(agent.Instructions) != "" {
		b.WriteString(agent.Instructions)
	} else {
		b.WriteString(DefaultPersona)
	}
	if len(memories) == 0 {
		return b.String()
	}
	b.WriteString("\n\nStanding instructions:\n")
	for _, m := range memories {
		fmt.Fprintf(&b, "- %s: %s\n", m.Title, m.Instructions)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) seedConversations() []model.Conversation {
	now := a.nowMillis()
	return []model.Conversation{{
		ID:         a.ids.New(),
		Title:      WelcomeTitle,
		LastUpdate: now,
		Messages: []model.Message{{
			ID:        a.ids.New(),
			Role:      model.RoleAssistant,
			Content:   WelcomeMessage,
			Timestamp: now,
		}},
		Mode:    model.DefaultMode,
		AgentID: DefaultAgentID,
	}}
}

func seedMedications() []model.Medication {
	return []model.Medication{{
		ID:              "m1",
		Name:            "Omnipod Check",
		Dosage:          "Protocol",
		Frequency:       "Ongoing",
		ReminderEnabled: true,
	}}
}

func seedAgents() []model.Agent {
	return []model.Agent{{
		ID:               DefaultAgentID,
		Name:             "FREDO",
		Instructions:     DefaultPersona,
		VoicePreset:      model.DefaultVoicePreset,
		VoiceSpeed:       1,
		Pitch:            1,
		KnowledgeSources: []model.KnowledgeSource{},
		IsDefault:        true,
	}}
}
