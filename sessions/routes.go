package sessions

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Desarso/toolguide/catalog"
	"github.com/Desarso/toolguide/models"
	"github.com/Desarso/toolguide/stores"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ToolView is a catalog entry as the browsing endpoints return it.
type ToolView struct {
	catalog.ToolRecord
	Slug string `json:"slug"`
}

// RegisterRoutes mounts the chat, catalog and health endpoints. store may be nil, in which
// case conversations are not persisted and the history endpoint reports that.
func RegisterRoutes(router gin.IRouter, assistant AssistantInterface, tools CatalogInterface, store stores.ConversationStore) {
	router.GET("/health", func(c *gin.Context) {
		if store != nil {
			if err := store.Ping(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	api.POST("/chat", func(c *gin.Context) {
		var req models.Chat_Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}
		if req.Conversation_ID == "" && store != nil {
			req.Conversation_ID = uuid.NewString()
		}
		session := NewHTTPSession(req.Conversation_ID, assistant, store)
		c.JSON(http.StatusOK, session.Chat(c.Request.Context(), req))
	})

	api.GET("/chat/history/:conversationID", func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		session := NewHTTPSession(c.Param("conversationID"), assistant, store)
		history, err := session.GetChatHistory(limit)
		if errors.Is(err, ErrNoStore) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"history": history})
	})

	api.GET("/tools", func(c *gin.Context) {
		records, err := tools.Records()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		views := make([]ToolView, 0, len(records))
		for _, r := range records {
			views = append(views, ToolView{ToolRecord: r, Slug: r.Slug()})
		}
		c.JSON(http.StatusOK, views)
	})

	api.GET("/tools/:slug", func(c *gin.Context) {
		record, ok, err := tools.FindBySlug(c.Param("slug"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "tool not found"})
			return
		}
		c.JSON(http.StatusOK, ToolView{ToolRecord: record, Slug: record.Slug()})
	})

	router.GET("/ws/chat", func(c *gin.Context) {
		conversationID := c.Query("conversation_id")
		if conversationID == "" {
			conversationID = uuid.NewString()
		}
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			return
		}
		NewChatSocket(conversationID, models.Language(c.Query("lang")), conn, assistant).Run(c.Request.Context())
	})
}
