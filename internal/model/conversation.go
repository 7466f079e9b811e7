package model

import (
	"encoding/json"
	"fmt"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// legacyAssistantRole is how older backups tagged assistant turns.
const legacyAssistantRole = "model"

// UnmarshalJSON accepts the legacy "model" role as an alias for assistant.
func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("decode role: %w", err)
	}
	if s == legacyAssistantRole {
		s = string(RoleAssistant)
	}
	*r = Role(s)
	return nil
}

// Message is a single turn in a conversation. Messages are immutable once created.
type Message struct {
	ID        string `json:"id"`
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Timestamp Millis `json:"timestamp"`
	MediaURL  string `json:"mediaUrl,omitempty"`
	MediaType string `json:"mediaType,omitempty"`
}

// Conversation owns an ordered list of messages.
type Conversation struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	LastUpdate Millis    `json:"lastUpdate"`
	Messages   []Message `json:"messages"`
	Mode       string    `json:"mode"`
	AgentID    string    `json:"agentId"`
}

// DefaultMode is the chat mode new conversations start in.
const DefaultMode = "default"

// ValidModes are the chat modes the app knows about.
var ValidModes = map[string]bool{
	"legacy":    true,
	"image":     true,
	"video":     true,
	"research":  true,
	"shopping":  true,
	"search":    true,
	"maps":      true,
	"thinking":  true,
	"agent":     true,
	"default":   true,
	"study":     true,
	"lite":      true,
	"drive":     true,
	"spiritual": true,
	"media":     true,
}

// ValidMediaKinds are the allowed message attachment kinds.
var ValidMediaKinds = map[string]bool{
	"image": true,
	"video": true,
}

// Normalize fills defaults on a decoded conversation.
func (c *Conversation) Normalize() {
	if c.Messages == nil {
		c.Messages = []Message{}
	}
	if c.Mode == "" {
		c.Mode = DefaultMode
	}
}
