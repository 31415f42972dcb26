package sessions

import (
	"context"
	"errors"
	"fmt"

	"github.com/Desarso/toolguide/models"
)

// ErrNoStore is returned when history is requested but nothing is persisted.
var ErrNoStore = errors.New("conversation history is not enabled")

// Chat answers a single request within the session's conversation.
func (s *HTTPSession) Chat(ctx context.Context, req models.Chat_Request) models.Chat_Response {
	if req.Conversation_ID == "" {
		req.Conversation_ID = s.ConversationID
	}
	resp := s.Assistant.Respond(ctx, req)
	if resp.Tool != "" {
		s.Logger.Printf("Recommended %s (%s)", resp.Tool, resp.Category)
	}
	return resp
}

// GetChatHistory retrieves and converts chat history to API response format
func (s *HTTPSession) GetChatHistory(limit int) ([]models.ChatMessageResponse, error) {
	if s.Store == nil {
		return nil, ErrNoStore
	}
	dbHistory, err := s.Store.FetchHistory(s.ConversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}

	apiHistory := make([]models.ChatMessageResponse, 0, len(dbHistory))
	for _, msg := range dbHistory {
		apiHistory = append(apiHistory, models.ChatMessageResponse{
			ID:             msg.ID,
			CreatedAt:      msg.CreatedAt,
			ConversationID: msg.ConversationID,
			Sequence:       msg.Sequence,
			From:           models.Role(msg.Role).WireName(),
			Text:           msg.Text,
			Tool:           msg.Tool,
			Category:       msg.Category,
		})
	}
	return apiHistory, nil
}
