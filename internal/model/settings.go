package model

import "fmt"

// AppSettings holds user-facing preferences.
type AppSettings struct {
	FontSize      float64 `json:"fontSize"`
	VoiceReplies  bool    `json:"voiceReplies"`
	AutoPlayAudio bool    `json:"autoPlayAudio"`
	Nickname      string  `json:"nickname"`
	Occupation    string  `json:"occupation"`
	ToneStyle     string  `json:"toneStyle"`
}

// ValidToneStyles are the allowed reply tones.
var ValidToneStyles = map[string]bool{
	"default":      true,
	"professional": true,
	"friendly":     true,
	"candid":       true,
	"quirky":       true,
	"efficient":    true,
	"nerdy":        true,
	"clinical":     true,
}

// DefaultAppSettings returns the settings used before anything is saved.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		FontSize:      1.0,
		VoiceReplies:  true,
		AutoPlayAudio: true,
		Nickname:      "David",
		Occupation:    "Prism Core",
		ToneStyle:     "default",
	}
}

// AdvancedSettings tunes generation and device behaviour.
type AdvancedSettings struct {
	Temperature      float64 `json:"temperature"`
	MaxTokens        int     `json:"maxTokens"`
	TopP             float64 `json:"topP"`
	FrequencyPenalty float64 `json:"frequencyPenalty"`
	PresencePenalty  float64 `json:"presencePenalty"`

	VoiceEnabled      bool    `json:"voiceEnabled"`
	VoiceSpeed        float64 `json:"voiceSpeed"`
	VoicePitch        float64 `json:"voicePitch"`
	AutoPlayResponses bool    `json:"autoPlayResponses"`

	SaveConversations   bool `json:"saveConversations"`
	AnalyticsEnabled    bool `json:"analyticsEnabled"`
	CrashReportsEnabled bool `json:"crashReportsEnabled"`

	ExperimentalMode bool `json:"experimentalMode"`
	BetaFeatures     bool `json:"betaFeatures"`
	DebugMode        bool `json:"debugMode"`
}

// DefaultAdvancedSettings returns the factory advanced settings.
func DefaultAdvancedSettings() AdvancedSettings {
	return AdvancedSettings{
		Temperature:         0.7,
		MaxTokens:           2048,
		TopP:                0.9,
		VoiceEnabled:        true,
		VoiceSpeed:          1.0,
		VoicePitch:          1.0,
		SaveConversations:   true,
		CrashReportsEnabled: true,
	}
}

// Validate checks the generation parameters are in range.
func (s AdvancedSettings) Validate() error {
	if s.Temperature < 0 || s.Temperature > 2 {
		return fmt.Errorf("temperature %.2f out of range [0, 2]", s.Temperature)
	}
	if s.TopP < 0 || s.TopP > 1 {
		return fmt.Errorf("topP %.2f out of range [0, 1]", s.TopP)
	}
	if s.MaxTokens <= 0 {
		return fmt.Errorf("maxTokens must be positive, got %d", s.MaxTokens)
	}
	return nil
}

// Provider names an external AI provider whose key may be held in the vault.
type Provider string

const (
	ProviderGemini      Provider = "gemini"
	ProviderGoogleCloud Provider = "googleCloud"
	ProviderOpenAI      Provider = "openai"
	ProviderClaude      Provider = "claude"
	ProviderGrok        Provider = "grok"
)

// Providers lists vault providers in display order.
var Providers = []Provider{
	ProviderGemini,
	ProviderGoogleCloud,
	ProviderOpenAI,
	ProviderClaude,
	ProviderGrok,
}

// ProviderKeys is the local API key vault.
type ProviderKeys struct {
	Gemini      string `json:"gemini"`
	GoogleCloud string `json:"googleCloud"`
	OpenAI      string `json:"openai"`
	Claude      string `json:"claude"`
	Grok        string `json:"grok"`
}

func (k *ProviderKeys) slot(p Provider) (*string, bool) {
	switch p {
	case ProviderGemini:
		return &k.Gemini, true
	case ProviderGoogleCloud:
		return &k.GoogleCloud, true
	case ProviderOpenAI:
		return &k.OpenAI, true
	case ProviderClaude:
		return &k.Claude, true
	case ProviderGrok:
		return &k.Grok, true
	}
	return nil, false
}

// Get returns the key stored for p.
func (k ProviderKeys) Get(p Provider) (string, error) {
	s, ok := k.slot(p)
	if !ok {
		return "", fmt.Errorf("unknown provider %q", p)
	}
	return *s, nil
}

// Set stores key for p.
func (k *ProviderKeys) Set(p Provider, key string) error {
	s, ok := k.slot(p)
	if !ok {
		return fmt.Errorf("unknown provider %q", p)
	}
	*s = key
	return nil
}

// Masked returns a copy with every key reduced to its last four characters.
func (k ProviderKeys) Masked() ProviderKeys {
	out := k
	for _, p := range Providers {
		s, _ := out.slot(p)
		*s = maskKey(*s)
	}
	return out
}

func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
