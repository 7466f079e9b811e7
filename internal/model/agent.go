package model

// KnowledgeSource is a URL or file attached to an agent.
type KnowledgeSource struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Value     string `json:"value"`
	Timestamp Millis `json:"timestamp"`
}

// ValidKnowledgeTypes are the allowed knowledge source types.
var ValidKnowledgeTypes = map[string]bool{
	"url":  true,
	"file": true,
}

// Agent is a persona the assistant can speak as.
type Agent struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Instructions     string            `json:"instructions"`
	VoicePreset      string            `json:"voicePreset"`
	VoiceSpeed       float64           `json:"voiceSpeed"`
	Pitch            float64           `json:"pitch"`
	KnowledgeSources []KnowledgeSource `json:"knowledgeSources"`
	IsDefault        bool              `json:"isDefault,omitempty"`
}

// DefaultVoicePreset is assigned to agents created without a preset.
const DefaultVoicePreset = "Kore"

// VoicePresets are the selectable voices, in display order.
var VoicePresets = []string{"Kore", "Puck", "Charon", "Fenrir", "Zephyr"}

// ValidVoicePresets indexes VoicePresets.
var ValidVoicePresets = map[string]bool{
	"Kore":   true,
	"Puck":   true,
	"Charon": true,
	"Fenrir": true,
	"Zephyr": true,
}

// Voice calibration ranges.
const (
	MinVoiceSpeed = 0.5
	MaxVoiceSpeed = 2.0
	MinPitch      = 0.5
	MaxPitch      = 1.5
)

// Normalize fills defaults on a decoded agent.
func (a *Agent) Normalize() {
	if a.KnowledgeSources == nil {
		a.KnowledgeSources = []KnowledgeSource{}
	}
	if a.VoicePreset == "" {
		a.VoicePreset = DefaultVoicePreset
	}
	if a.VoiceSpeed == 0 {
		a.VoiceSpeed = 1
	}
	if a.Pitch == 0 {
		a.Pitch = 1
	}
}
