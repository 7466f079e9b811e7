package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/rcliao/companion/internal/model"
)

// defaultClaudeMaxTokens is sent when no limit is configured; the messages
// API requires one.
const defaultClaudeMaxTokens = 1024

// Claude talks to Anthropic's messages API.
type Claude struct {
	client *anthropic.Client
	model  string
}

func NewClaude(apiKey, modelName, baseURL string) *Claude {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	return &Claude{
		client: anthropic.NewClient(apiKey, opts...),
		model:  modelName,
	}
}

func (c *Claude) Reply(ctx context.Context, req Request) (string, error) {
	turns := append(append([]Turn(nil), req.History...), Turn{Role: model.RoleUser, Text: req.Message})
	msgs := make([]anthropic.Message, 0, len(turns))
	for _, t := range alternating(turns) {
		role := anthropic.RoleUser
		if t.Role == model.RoleAssistant {
			role = anthropic.RoleAssistant
		}
		msgs = append(msgs, anthropic.Message{
			Role:    role,
			Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(t.Text)},
		})
	}

	mr := anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		Messages:  msgs,
		System:    req.Persona,
		MaxTokens: req.Params.MaxTokens,
	}
	if mr.MaxTokens <= 0 {
		mr.MaxTokens = defaultClaudeMaxTokens
	}
	if req.Params.Temperature > 0 {
		temp := float32(req.Params.Temperature)
		mr.Temperature = &temp
	}
	if req.Params.TopP > 0 {
		topP := float32(req.Params.TopP)
		mr.TopP = &topP
	}

	resp, err := c.client.CreateMessages(ctx, mr)
	if err != nil {
		return "", fmt.Errorf("claude create message: %w", err)
	}

	var b strings.Builder
	for _, part := range resp.Content {
		if part.Text != nil {
			b.WriteString(*part.Text)
		}
	}
	return reply(b.String())
}
