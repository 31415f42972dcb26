package models

import "strings"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one entry of the conversation history.
// Tool and Category are set on assistant turns that recommended a catalog tool.
type ConversationTurn struct {
	Role     Role   `json:"role"`
	Text     string `json:"text"`
	Tool     string `json:"tool,omitempty"`
	Category string `json:"category,omitempty"`
}

// RoleFromWire maps the frontend speaker names ("bot", "model", "assistant") onto Role.
func RoleFromWire(from string) Role {
	switch strings.ToLower(strings.TrimSpace(from)) {
	case "bot", "assistant", "model":
		return RoleAssistant
	default:
		return RoleUser
	}
}

// WireName is the inverse of RoleFromWire.
func (r Role) WireName() string {
	if r == RoleAssistant {
		return "bot"
	}
	return "user"
}
