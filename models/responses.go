package models

type Chat_Response struct {
	Response        string `json:"response"`
	Conversation_ID string `json:"conversation_id,omitempty"`
	// Tool and Category tag the recommendation so the client can send them back in history.
	Tool     string `json:"tool,omitempty"`
	Category string `json:"category,omitempty"`
}
