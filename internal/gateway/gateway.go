// Package gateway sends a conversation to a hosted generative model and returns
// its reply. Calls are one request, one response: no streaming, no retry.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rcliao/companion/internal/config"
	"github.com/rcliao/companion/internal/model"
)

var (
	// ErrEmptyReply is returned when the provider answers without any text.
	ErrEmptyReply = errors.New("empty reply")

	// ErrUnknownProvider is returned for a provider name with no client.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrNoKey is returned when a provider is used without an API key.
	ErrNoKey = errors.New("no api key")
)

// Turn is one prior message in the conversation history.
type Turn struct {
	Role model.Role
	Text string
}

// Params are the generation parameters taken from advanced settings.
// Zero values leave the provider default.
type Params struct {
	Temperature float64
	MaxTokens   int
	TopP        float64
}

// Request is everything sent for one reply. The full history is sent every time.
type Request struct {
	History []Turn
	Message string
	Persona string
	Params  Params
}

// Gateway produces an assistant reply for a request.
type Gateway interface {
	Reply(ctx context.Context, req Request) (string, error)
}

// Func adapts a function to Gateway.
type Func func(ctx context.Context, req Request) (string, error)

func (f Func) Reply(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}

// New builds the gateway named by cfg.Provider.
func New(ctx context.Context, cfg config.ChatConfig) (Gateway, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("chat provider %s: %w", cfg.Provider, ErrNoKey)
	}
	switch strings.ToLower(cfg.Provider) {
	case "gemini":
		return NewGemini(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL)
	case "openai":
		return NewOpenAI(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	case "claude":
		return NewClaude(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("chat provider %q: %w", cfg.Provider, ErrUnknownProvider)
	}
}

func reply(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}

// alternating shapes history for providers that require turns to start with
// the user and alternate roles. Leading assistant turns are dropped and runs
// of one role are joined.
func alternating(history []Turn) []Turn {
	out := make([]Turn, 0, len(history))
	for _, t := range history {
		if len(out) == 0 && t.Role != model.RoleUser {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Role == t.Role {
			out[n-1].Text += "\n\n" + t.Text
			continue
		}
		out = append(out, t)
	}
	return out
}
