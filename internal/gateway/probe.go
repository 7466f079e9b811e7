package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/rcliao/companion/internal/model"
)

// Default endpoints for provider probes.
const (
	OpenAIBaseURL = "https://api.openai.com/v1"
	GrokBaseURL   = "https://api.x.ai/v1"
	ClaudeBaseURL = "https://api.anthropic.com/v1"

	anthropicVersion = "2023-06-01"
	minGoogleKeyLen  = 20
)

// Prober checks that a vault key is accepted by its provider. Probes are
// independent of the chat gateway.
type Prober struct {
	HTTPClient     *http.Client
	OpenAIBaseURL  string
	GrokBaseURL    string
	ClaudeBaseURL  string
	GeminiEndpoint string

	// GeminiListModels enables a live ListModels call after the format check.
	GeminiListModels bool
}

// NewProber returns a prober against the public endpoints.
func NewProber() *Prober {
	return &Prober{
		HTTPClient:       http.DefaultClient,
		OpenAIBaseURL:    OpenAIBaseURL,
		GrokBaseURL:      GrokBaseURL,
		ClaudeBaseURL:    ClaudeBaseURL,
		GeminiListModels: true,
	}
}

// Probe returns nil when key is usable for provider.
func (p *Prober) Probe(ctx context.Context, provider model.Provider, key string) error {
	if key == "" {
		return fmt.Errorf("probe %s: %w", provider, ErrNoKey)
	}
	switch provider {
	case model.ProviderGemini:
		if err := checkGoogleKey(key); err != nil {
			return err
		}
		if !p.GeminiListModels {
			return nil
		}
		return p.probeGemini(ctx, key)
	case model.ProviderGoogleCloud:
		return checkGoogleKey(key)
	case model.ProviderOpenAI:
		return p.probeOpenAI(ctx, p.OpenAIBaseURL, key)
	case model.ProviderGrok:
		return p.probeOpenAI(ctx, p.GrokBaseURL, key)
	case model.ProviderClaude:
		return p.probeClaude(ctx, key)
	default:
		return fmt.Errorf("probe %q: %w", provider, ErrUnknownProvider)
	}
}

func checkGoogleKey(key string) error {
	if len(key) < minGoogleKeyLen {
		return errors.New("invalid API key format")
	}
	return nil
}

func (p *Prober) probeGemini(ctx context.Context, key string) error {
	opts := []option.ClientOption{option.WithAPIKey(key)}
	if p.GeminiEndpoint != "" {
		opts = append(opts, option.WithEndpoint(p.GeminiEndpoint))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return fmt.Errorf("create gemini client: %w", err)
	}
	defer client.Close()

	it := client.ListModels(ctx)
	if _, err := it.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("handshake failed: %w", err)
	}
	return nil
}

// probeOpenAI lists models on an OpenAI-compatible API.
func (p *Prober) probeOpenAI(ctx context.Context, baseURL, key string) error {
	cfg := openai.DefaultConfig(key)
	cfg.BaseURL = baseURL
	if p.HTTPClient != nil {
		cfg.HTTPClient = p.HTTPClient
	}
	if _, err := openai.NewClientWithConfig(cfg).ListModels(ctx); err != nil {
		return fmt.Errorf("handshake failed: %w", err)
	}
	return nil
}

// probeClaude sends an authenticated GET. A 405 still proves the key reached
// the API, so it counts as success.
func (p *Prober) probeClaude(ctx context.Context, key string) error {
	url := strings.TrimRight(p.ClaudeBaseURL, "/") + "/models"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-api-key", key)
	req.Header.Set("anthropic-version", anthropicVersion)

	client := p.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("handshake failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusMethodNotAllowed {
		return fmt.Errorf("handshake failed: %d", resp.StatusCode)
	}
	return nil
}
