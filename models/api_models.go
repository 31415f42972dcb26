package models

import "time"

// ChatMessageResponse defines the structure for turns returned by the chat history API endpoint.
type ChatMessageResponse struct {
	ID             uint      `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	ConversationID string    `json:"conversation_id"`
	Sequence       int       `json:"sequence"`
	From           string    `json:"from"` // "user" or "bot"
	Text           string    `json:"text"`
	Tool           string    `json:"tool,omitempty"`
	Category       string    `json:"category,omitempty"`
}
