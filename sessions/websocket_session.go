package sessions

import (
	"context"
	"strings"
	"time"

	"github.com/Desarso/toolguide/models"
	"github.com/gorilla/websocket"
)

// Run reads chat requests until the client goes away. Requests without a language use the
// session's; every request is answered within the session's conversation.
func (cs *ChatSocket) Run(ctx context.Context) {
	defer cs.Writer.Conn.Close()
	for {
		var req models.Chat_Request
		if err := cs.Writer.Conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				cs.Logger.Printf("WebSocket error: %v", err)
			}
			break
		}

		if strings.TrimSpace(req.Message) == "" {
			if err := cs.Writer.WriteError("message is required"); err != nil {
				cs.Logger.Printf("Error writing to socket: %v", err)
				break
			}
			continue
		}
		if req.Language == "" {
			req.Language = cs.Language
		}
		req.Conversation_ID = cs.ConversationID

		cs.Writer.StartTime = time.Now()
		resp := cs.Assistant.Respond(ctx, req)
		if err := cs.Writer.WriteResponse(resp); err != nil {
			cs.Logger.Printf("Error writing to socket: %v", err)
			break
		}
	}
	cs.Logger.Printf("WebSocket session %s ended", cs.ConversationID)
}
