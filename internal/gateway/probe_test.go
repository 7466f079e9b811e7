package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcliao/companion/internal/model"
)

func modelsServer(t *testing.T, wantAuth string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		if wantAuth != "" {
			assert.Equal(t, wantAuth, r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			w.Write([]byte(`{"object":"list","data":[{"id":"m1","object":"model"}]}`))
		} else {
			w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func offlineProber() *Prober {
	p := NewProber()
	p.GeminiListModels = false
	return p
}

func TestProbeEmptyKey(t *testing.T) {
	for _, prov := range model.Providers {
		err := offlineProber().Probe(context.Background(), prov, "")
		assert.ErrorIs(t, err, ErrNoKey, prov)
	}
}

func TestProbeGoogleKeyFormat(t *testing.T) {
	p := offlineProber()
	ctx := context.Background()

	assert.Error(t, p.Probe(ctx, model.ProviderGemini, "short"))
	assert.Error(t, p.Probe(ctx, model.ProviderGoogleCloud, "short"))
	assert.NoError(t, p.Probe(ctx, model.ProviderGemini, "AIzaSyExampleExampleExample"))
	assert.NoError(t, p.Probe(ctx, model.ProviderGoogleCloud, "AIzaSyExampleExampleExample"))
}

func TestProbeOpenAICompatible(t *testing.T) {
	ctx := context.Background()
	p := offlineProber()

	p.OpenAIBaseURL = modelsServer(t, "Bearer sk-good", http.StatusOK).URL + "/v1"
	assert.NoError(t, p.Probe(ctx, model.ProviderOpenAI, "sk-good"))

	p.GrokBaseURL = modelsServer(t, "", http.StatusUnauthorized).URL + "/v1"
	assert.ErrorContains(t, p.Probe(ctx, model.ProviderGrok, "xai-bad"), "handshake failed")
}

func TestProbeClaude(t *testing.T) {
	ctx := context.Background()
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		assert.Equal(t, "sk-ant", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		w.WriteHeader(int(status.Load()))
	}))
	defer srv.Close()

	p := offlineProber()
	p.ClaudeBaseURL = srv.URL + "/v1"

	assert.NoError(t, p.Probe(ctx, model.ProviderClaude, "sk-ant"))

	status.Store(http.StatusMethodNotAllowed)
	assert.NoError(t, p.Probe(ctx, model.ProviderClaude, "sk-ant"))

	status.Store(http.StatusUnauthorized)
	assert.ErrorContains(t, p.Probe(ctx, model.ProviderClaude, "sk-ant"), "401")
}

func TestProbeUnknownProvider(t *testing.T) {
	err := offlineProber().Probe(context.Background(), model.Provider("mistral"), "key")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
