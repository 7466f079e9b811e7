package companion

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rcliao/companion/internal/gateway"
	"github.com/rcliao/companion/internal/model"
)

var errNoGateway = errors.New("no chat gateway configured")

func conversationByID(id string) func(model.Conversation) bool {
	return func(c model.Conversation) bool { return c.ID == id }
}

// Conversations returns every conversation, newest first.
func (a *App) Conversations() []model.Conversation {
	return a.conversations.All()
}

func (a *App) Conversation(id string) (model.Conversation, error) {
	c, ok := a.conversations.Find(conversationByID(id))
	if !ok {
		return c, notFound("conversation", id)
	}
	return c, nil
}

// NewConversation prepends an empty chat titled "Chat N" with a greeting.
func (a *App) NewConversation(ctx context.Context) (model.Conversation, error) {
	agentID := a.defaultAgentID()
	var created model.Conversation
	err := a.conversations.Mutate(ctx, func(items []model.Conversation) ([]model.Conversation, error) {
		now := a.nowMillis()
		created = model.Conversation{
			ID:         a.ids.New(),
			Title:      fmt.Sprintf("Chat %d", len(items)+1),
			LastUpdate: now,
			Messages: []model.Message{{
				ID:        a.ids.New(),
				Role:      model.RoleAssistant,
				Content:   NewChatMessage,
				Timestamp: now,
			}},
			Mode:    model.DefaultMode,
			AgentID: agentID,
		}
		return append([]model.Conversation{created}, items...), nil
	})
	if err != nil {
		return model.Conversation{}, fmt.Errorf("create conversation: %w", err)
	}
	return created, nil
}

// updateConversation applies fn to the conversation with id and returns the result.
func (a *App) updateConversation(ctx context.Context, id string, fn func(*model.Conversation) error) (model.Conversation, error) {
	var updated model.Conversation
	err := a.conversations.Mutate(ctx, func(items []model.Conversation) ([]model.Conversation, error) {
		i := slices.IndexFunc(items, conversationByID(id))
		if i < 0 {
			return nil, notFound("conversation", id)
		}
		if err := fn(&items[i]); err != nil {
			return nil, err
		}
		updated = items[i]
		return items, nil
	})
	return updated, err
}

func (a *App) RenameConversation(ctx context.Context, id, title string) (model.Conversation, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Conversation{}, invalid("conversation title is required")
	}
	return a.updateConversation(ctx, id, func(c *model.Conversation) error {
		c.Title = title
		return nil
	})
}

// SetConversationMode switches the AI mode tag of a conversation.
func (a *App) SetConversationMode(ctx context.Context, id, mode string) (model.Conversation, error) {
	if !model.ValidModes[mode] {
		return model.Conversation{}, invalid("unknown mode %q", mode)
	}
	return a.updateConversation(ctx, id, func(c *model.Conversation) error {
		c.Mode = mode
		return nil
	})
}

// SetConversationAgent hands a conversation to another agent.
func (a *App) SetConversationAgent(ctx context.Context, id, agentID string) (model.Conversation, error) {
	if _, err := a.Agent(agentID); err != nil {
		return model.Conversation{}, err
	}
	return a.updateConversation(ctx, id, func(c *model.Conversation) error {
		c.AgentID = agentID
		return nil
	})
}

// DeleteConversation removes a conversation and drops its id from every folder.
func (a *App) DeleteConversation(ctx context.Context, id string) error {
	err := a.conversations.Mutate(ctx, func(items []model.Conversation) ([]model.Conversation, error) {
		i := slices.IndexFunc(items, conversationByID(id))
		if i < 0 {
			return nil, notFound("conversation", id)
		}
		return slices.Delete(items, i, i+1), nil
	})
	if err != nil {
		return fmt.Errorf("delete conversation: %w", err)
	}
	return a.pruneConversation(ctx, id)
}

// SearchConversations matches q against titles and message text, ignoring case.
func (a *App) SearchConversations(q string) []model.Conversation {
	q = strings.ToLower(strings.TrimSpace(q))
	var out []model.Conversation
	for _, c := range a.conversations.All() {
		if q == "" || conversationMatches(c, q) {
			out = append(out, c)
		}
	}
	return out
}

func conversationMatches(c model.Conversation, q string) bool {
	if strings.Contains(strings.ToLower(c.Title), q) {
		return true
	}
	for _, m := range c.Messages {
		if strings.Contains(strings.ToLower(m.Content), q) {
			return true
		}
	}
	return false
}

// ConversationsByAgent lists the conversations an agent speaks in.
func (a *App) ConversationsByAgent(agentID string) []model.Conversation {
	var out []model.Conversation
	for _, c := range a.conversations.All() {
		if c.AgentID == agentID {
			out = append(out, c)
		}
	}
	return out
}

// Send appends the user's message, asks the gateway for a reply and appends
// it. A gateway failure is logged and answered with FallbackReply, so exactly
// two messages are added whenever the user message is saved.
func (a *App) Send(ctx context.Context, id, text string) (model.Conversation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Conversation{}, invalid("message is empty")
	}

	var history []model.Message
	var agentID string
	_, err := a.updateConversation(ctx, id, func(c *model.Conversation) error {
		history = slices.Clone(c.Messages)
		agentID = c.AgentID
		now := a.nowMillis()
		c.Messages = append(c.Messages, model.Message{
			ID:        a.ids.New(),
			Role:      model.RoleUser,
			Content:   text,
			Timestamp: now,
		})
		c.LastUpdate = now
		return nil
	})
	if err != nil {
		return model.Conversation{}, fmt.Errorf("send message: %w", err)
	}

	replyText, err := a.reply(ctx, a.chatRequest(history, text, agentID))
	if err != nil {
		a.log.Warn("chat reply failed", "conversation", id, "error", err)
		replyText = FallbackReply
	}

	// The reply is saved even when ctx ended during the gateway call.
	conv, err := a.updateConversation(context.WithoutCancel(ctx), id, func(c *model.Conversation) error {
		now := a.nowMillis()
		c.Messages = append(c.Messages, model.Message{
			ID:        a.ids.New(),
			Role:      model.RoleAssistant,
			Content:   replyText,
			Timestamp: now,
		})
		c.LastUpdate = now
		return nil
	})
	if err != nil {
		return model.Conversation{}, fmt.Errorf("save reply: %w", err)
	}
	return conv, nil
}

func (a *App) reply(ctx context.Context, req gateway.Request) (string, error) {
	if a.gateway == nil {
		return "", errNoGateway
	}
	return a.gateway.Reply(ctx, req)
}

func (a *App) chatRequest(history []model.Message, text, agentID string) gateway.Request {
	turns := make([]gateway.Turn, 0, len(history))
	for _, m := range history {
		turns = append(turns, gateway.Turn{Role: m.Role, Text: m.Content})
	}

	var agent *model.Agent
	if found, err := a.Agent(agentID); err == nil {
		agent = &found
	}

	adv := a.advanced.Get()
	return gateway.Request{
		History: turns,
		Message: text,
		Persona: composePersona(agent, a.memories.All()),
		Params: gateway.Params{
			Temperature: adv.Temperature,
			MaxTokens:   adv.MaxTokens,
			TopP:        adv.TopP,
		},
	}
}
