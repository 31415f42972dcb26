package sessions

import (
	"fmt"
	"log"
	"os"

	"github.com/Desarso/toolguide/models"
	"github.com/Desarso/toolguide/stores"
	"github.com/gorilla/websocket"
)

// NewChatSocket creates a new WebSocket chat session
func NewChatSocket(conversationID string, lang models.Language, conn *websocket.Conn, assistant AssistantInterface) *ChatSocket {
	logger := log.New(os.Stdout, fmt.Sprintf("[WS %s] ", conversationID), log.LstdFlags)
	writer := &WebSocketWriter{
		Conn:   conn,
		Logger: logger,
	}

	return &ChatSocket{
		Assistant:      assistant,
		ConversationID: conversationID,
		Language:       models.NormalizeLanguage(lang),
		Writer:         writer,
		Logger:         logger,
	}
}

// NewHTTPSession creates a new HTTP session
func NewHTTPSession(conversationID string, assistant AssistantInterface, store stores.ConversationStore) *HTTPSession {
	logger := log.New(os.Stdout, fmt.Sprintf("[HTTP %s] ", conversationID), log.LstdFlags)

	return &HTTPSession{
		Assistant:      assistant,
		ConversationID: conversationID,
		Store:          store,
		Logger:         logger,
	}
}
