package gateway

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/rcliao/companion/internal/model"
)

// OpenAI talks to the chat completions API, or any server compatible with it.
type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, modelName, baseURL string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  modelName,
	}
}

func (o *OpenAI) Reply(ctx context.Context, req Request) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	if req.Persona != "" {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.Persona,
		})
	}
	for _, t := range req.History {
		role := openai.ChatMessageRoleUser
		if t.Role == model.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: t.Text})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Message,
	})

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    msgs,
		Temperature: float32(req.Params.Temperature),
		TopP:        float32(req.Params.TopP),
		MaxTokens:   req.Params.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}
	return reply(resp.Choices[0].Message.Content)
}
