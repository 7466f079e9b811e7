package gateway

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/rcliao/companion/internal/model"
)

// Gemini talks to Google's generative language API.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, modelName, baseURL string) (*Gemini, error) {
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithEndpoint(baseURL))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Gemini{client: client, model: modelName}, nil
}

// Reply starts a chat seeded with the history and sends the new message.
func (g *Gemini) Reply(ctx context.Context, req Request) (string, error) {
	m := g.client.GenerativeModel(g.model)
	if req.Persona != "" {
		m.SystemInstruction = genai.NewUserContent(genai.Text(req.Persona))
	}
	if req.Params.Temperature > 0 {
		m.SetTemperature(float32(req.Params.Temperature))
	}
	if req.Params.TopP > 0 {
		m.SetTopP(float32(req.Params.TopP))
	}
	if req.Params.MaxTokens > 0 {
		m.SetMaxOutputTokens(int32(req.Params.MaxTokens))
	}

	cs := m.StartChat()
	history, last := geminiContents(req.History, req.Message)
	cs.History = history

	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return "", fmt.Errorf("gemini send: %w", err)
	}

	var b strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				b.WriteString(string(txt))
			}
		}
	}
	return reply(b.String())
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

// geminiContents shapes history plus the new message into alternating turns.
// The final user turn is returned separately for SendMessage.
func geminiContents(history []Turn, message string) ([]*genai.Content, string) {
	turns := alternating(append(append([]Turn(nil), history...), Turn{Role: model.RoleUser, Text: message}))
	last := turns[len(turns)-1]
	out := make([]*genai.Content, 0, len(turns)-1)
	for _, t := range turns[:len(turns)-1] {
		role := "user"
		if t.Role == model.RoleAssistant {
			role = "model"
		}
		out = append(out, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(t.Text)},
		})
	}
	return out, last.Text
}
