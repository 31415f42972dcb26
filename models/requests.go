package models

type Chat_Request struct {
	Message  string   `json:"message"`
	Language Language `json:"language,omitempty"`
	// Conversation_History is oldest first.
	Conversation_History []History_Turn `json:"conversation_history,omitempty"`
	// Tool_Name scopes the chat to a single catalog tool (tool detail page chat).
	Tool_Name string `json:"tool_name,omitempty"`
	// Conversation_ID optionally persists the exchange server side.
	Conversation_ID string `json:"conversation_id,omitempty"`
}

// History_Turn is a turn as the frontend sends it.
type History_Turn struct {
	From string `json:"from"` // "user" or "bot"
	Text string `json:"text"`
	// Tool and Category echo the tags returned with an earlier Chat_Response.
	Tool     string `json:"tool,omitempty"`
	Category string `json:"category,omitempty"`
}

// Turns converts the wire history into conversation turns, dropping empty ones.
func (r Chat_Request) Turns() []ConversationTurn {
	turns := make([]ConversationTurn, 0, len(r.Conversation_History))
	for _, h := range r.Conversation_History {
		if h.Text == "" {
			continue
		}
		turns = append(turns, ConversationTurn{
			Role:     RoleFromWire(h.From),
			Text:     h.Text,
			Tool:     h.Tool,
			Category: h.Category,
		})
	}
	return turns
}
