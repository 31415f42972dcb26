package sessions

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Desarso/toolguide/catalog"
	"github.com/Desarso/toolguide/models"
	"github.com/Desarso/toolguide/stores"
	"github.com/gorilla/websocket"
)

// AssistantInterface is what the sessions need from the assistant.
type AssistantInterface interface {
	Respond(ctx context.Context, req models.Chat_Request) models.Chat_Response
}

// CatalogInterface serves the catalog browsing endpoints.
type CatalogInterface interface {
	Records() ([]catalog.ToolRecord, error)
	FindBySlug(slug string) (catalog.ToolRecord, bool, error)
}

// WebSocketWriter handles all WebSocket communication
type WebSocketWriter struct {
	Conn      *websocket.Conn
	Logger    *log.Logger
	StartTime time.Time
	mu        sync.Mutex
}

func (w *WebSocketWriter) WriteResponse(resp models.Chat_Response) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.StartTime.IsZero() {
		w.Logger.Printf("Answered in %v", time.Since(w.StartTime))
	}
	return w.Conn.WriteJSON(resp)
}

func (w *WebSocketWriter) WriteError(message string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteJSON(map[string]string{"error": message})
}

// ChatSocket answers chat messages arriving over one WebSocket connection.
type ChatSocket struct {
	Assistant      AssistantInterface
	ConversationID string
	Language       models.Language
	Writer         *WebSocketWriter
	Logger         *log.Logger
}

// HTTPSession handles HTTP-based chat interactions for one conversation
type HTTPSession struct {
	Assistant      AssistantInterface
	ConversationID string
	Store          stores.ConversationStore
	Logger         *log.Logger
}
