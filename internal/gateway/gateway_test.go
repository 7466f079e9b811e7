package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/companion/internal/config"
	"github.com/rcliao/companion/internal/model"
)

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func sampleRequest() Request {
	return Request{
		History: []Turn{
			{Role: model.RoleAssistant, Text: "welcome"},
			{Role: model.RoleUser, Text: "first"},
			{Role: model.RoleAssistant, Text: "answer"},
		},
		Message: "second",
		Persona: "be brief",
		Params:  Params{Temperature: 0.7, MaxTokens: 256, TopP: 0.9},
	}
}

func TestOpenAIReply(t *testing.T) {
	var got struct {
		Model     string        `json:"model"`
		Messages  []wireMessage `json:"messages"`
		MaxTokens int           `json:"max_tokens"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"hello there"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	gw := NewOpenAI("sk-test", "gpt-test", srv.URL+"/v1")
	text, err := gw.Reply(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "hello there", text)

	assert.Equal(t, "gpt-test", got.Model)
	assert.Equal(t, 256, got.MaxTokens)
	require.Len(t, got.Messages, 5)
	assert.Equal(t, wireMessage{"system", "be brief"}, got.Messages[0])
	assert.Equal(t, wireMessage{"assistant", "welcome"}, got.Messages[1])
	assert.Equal(t, wireMessage{"user", "second"}, got.Messages[4])
}

func TestOpenAIEmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  "}}]}`))
	}))
	defer srv.Close()

	_, err := NewOpenAI("sk-test", "gpt-test", srv.URL+"/v1").Reply(context.Background(), sampleRequest())
	assert.ErrorIs(t, err, ErrEmptyReply)
}

func TestClaudeReply(t *testing.T) {
	var got struct {
		System    string `json:"system"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role    string `json:"role"`
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"msg_1","type":"message","role":"assistant","model":"claude-test",
			"content":[{"type":"text","text":"hi "},{"type":"text","text":"friend"}],
			"stop_reason":"end_turn","usage":{"input_tokens":3,"output_tokens":2}}`))
	}))
	defer srv.Close()

	gw := NewClaude("sk-ant", "claude-test", srv.URL+"/v1")
	text, err := gw.Reply(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "hi friend", text)

	assert.Equal(t, "be brief", got.System)
	assert.Equal(t, 256, got.MaxTokens)
	require.Len(t, got.Messages, 3, "leading assistant turn dropped")
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "first", got.Messages[0].Content[0].Text)
	assert.Equal(t, "second", got.Messages[2].Content[0].Text)
}

func TestAlternating(t *testing.T) {
	in := []Turn{
		{Role: model.RoleAssistant, Text: "a"},
		{Role: model.RoleUser, Text: "u1"},
		{Role: model.RoleUser, Text: "u2"},
		{Role: model.RoleAssistant, Text: "b"},
	}
	out := alternating(in)
	require.Len(t, out, 2)
	assert.Equal(t, "u1\n\nu2", out[0].Text)
	assert.Equal(t, model.RoleAssistant, out[1].Role)
	assert.Equal(t, "u1", in[1].Text, "input untouched")
}

func TestGeminiContentsAfterUnansweredTurn(t *testing.T) {
	history := []Turn{
		{Role: model.RoleAssistant, Text: "welcome"},
		{Role: model.RoleUser, Text: "Hello"},
	}
	contents, last := geminiContents(history, "Hi again")
	assert.Empty(t, contents)
	assert.Equal(t, "Hello\n\nHi again", last)

	history = append(history, Turn{Role: model.RoleAssistant, Text: "hey"})
	contents, last = geminiContents(history, "Hi again")
	require.Len(t, contents, 2)
	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	assert.Equal(t, genai.Text("hey"), contents[1].Parts[0])
	assert.Equal(t, "Hi again", last)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	_, err := New(ctx, config.ChatConfig{Provider: "openai"})
	assert.ErrorIs(t, err, ErrNoKey)

	_, err = New(ctx, config.ChatConfig{Provider: "palm", APIKey: "k"})
	assert.ErrorIs(t, err, ErrUnknownProvider)

	gw, err := New(ctx, config.ChatConfig{Provider: "claude", APIKey: "k", Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &Claude{}, gw)
}

func TestFunc(t *testing.T) {
	gw := Func(func(_ context.Context, req Request) (string, error) {
		return "echo " + req.Message, nil
	})
	text, err := gw.Reply(context.Background(), Request{Message: "x"})
	require.NoError(t, err)
	assert.Equal(t, "echo x", text)
}
