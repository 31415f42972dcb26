package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/Desarso/toolguide/catalog"
	"github.com/Desarso/toolguide/models"
	"github.com/Desarso/toolguide/stores"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoAssistant struct {
	mu       sync.Mutex
	requests []models.Chat_Request
}

func (e *echoAssistant) Respond(_ context.Context, req models.Chat_Request) models.Chat_Response {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.requests = append(e.requests, req)
	return models.Chat_Response{
		Response:        "Grammarly: " + req.Message,
		Conversation_ID: req.Conversation_ID,
		Tool:            "Grammarly",
		Category:        "grammar",
	}
}

type staticCatalog struct {
	tools []catalog.ToolRecord
	err   error
}

func (s staticCatalog) Records() ([]catalog.ToolRecord, error) {
	return s.tools, s.err
}

func (s staticCatalog) FindBySlug(slug string) (catalog.ToolRecord, bool, error) {
	for _, t := range s.tools {
		if t.Slug() == slug {
			return t, true, s.err
		}
	}
	return catalog.ToolRecord{}, false, s.err
}

var testCatalog = staticCatalog{tools: []catalog.ToolRecord{
	{Name: "Grammarly", AcademicUse: "Dilbilgisi", Link: "https://grammarly.com", Embedding: []float32{1, 2}},
	{Name: "Gamma.app", AcademicUse: "Sunum", Link: "https://gamma.app"},
}}

func newTestRouter(assistant AssistantInterface, tools CatalogInterface, store stores.ConversationStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router, assistant, tools, store)
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChatEndpoint(t *testing.T) {
	assistant := &echoAssistant{}
	router := newTestRouter(assistant, testCatalog, nil)

	w := do(router, http.MethodPost, "/api/chat", `{"message": "dil kontrolü", "language": "tr", "conversation_history": [{"from": "bot", "text": "Merhaba"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.Chat_Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Grammarly: dil kontrolü", resp.Response)
	assert.Equal(t, "Grammarly", resp.Tool)
	assert.Empty(t, resp.Conversation_ID, "no id is assigned without a store")

	require.Len(t, assistant.requests, 1)
	assert.Equal(t, models.Language("tr"), assistant.requests[0].Language)
	assert.Len(t, assistant.requests[0].Conversation_History, 1)
}

func TestChatEndpointRejectsBadRequests(t *testing.T) {
	router := newTestRouter(&echoAssistant{}, testCatalog, nil)

	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/api/chat", `{"message": "  "}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPost, "/api/chat", `not json`).Code)
}

func TestToolsEndpoints(t *testing.T) {
	router := newTestRouter(&echoAssistant{}, testCatalog, nil)

	w := do(router, http.MethodGet, "/api/tools", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Grammarly", list[0]["tool"])
	assert.Equal(t, "gamma-app", list[1]["slug"])
	assert.NotContains(t, list[0], "Embedding")

	w = do(router, http.MethodGet, "/api/tools/gamma-app", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"link":"https://gamma.app"`)

	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/api/tools/nope", "").Code)

	broken := newTestRouter(&echoAssistant{}, staticCatalog{err: errors.New("malformed catalog")}, nil)
	assert.Equal(t, http.StatusInternalServerError, do(broken, http.MethodGet, "/api/tools", "").Code)
}

func TestHistoryEndpoint(t *testing.T) {
	router := newTestRouter(&echoAssistant{}, testCatalog, nil)
	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/api/chat/history/abc", "").Code)

	store, err := stores.NewSQLiteStoreSimple(filepath.Join(t.TempDir(), "chat.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.SaveTurn("abc", models.ConversationTurn{Role: models.RoleUser, Text: "dil kontrolü"}))
	require.NoError(t, store.SaveTurn("abc", models.ConversationTurn{Role: models.RoleAssistant, Text: "Grammarly: ...", Tool: "Grammarly", Category: "grammar"}))

	router = newTestRouter(&echoAssistant{}, testCatalog, store)
	w := do(router, http.MethodGet, "/api/chat/history/abc", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		History []models.ChatMessageResponse `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.History, 2)
	assert.Equal(t, "user", body.History[0].From)
	assert.Equal(t, "bot", body.History[1].From)
	assert.Equal(t, "Grammarly", body.History[1].Tool)

	w = do(router, http.MethodGet, "/api/chat/history/abc?limit=1", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.History, 1)
	assert.Equal(t, "bot", body.History[0].From)

	w = do(router, http.MethodPost, "/api/chat", `{"message": "merhaba"}`)
	var resp models.Chat_Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Conversation_ID, "an id is assigned when conversations are stored")

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/health", "").Code)
}

func TestWebSocketChat(t *testing.T) {
	assistant := &echoAssistant{}
	server := httptest.NewServer(newTestRouter(assistant, testCatalog, nil))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/chat?conversation_id=conv-9&lang=en"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(models.Chat_Request{Message: "grammar help"}))
	var resp models.Chat_Response
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "Grammarly: grammar help", resp.Response)
	assert.Equal(t, "conv-9", resp.Conversation_ID)

	require.NoError(t, conn.WriteJSON(models.Chat_Request{Message: ""}))
	var errMsg map[string]string
	require.NoError(t, conn.ReadJSON(&errMsg))
	assert.Equal(t, "message is required", errMsg["error"])

	assistant.mu.Lock()
	defer assistant.mu.Unlock()
	require.Len(t, assistant.requests, 1)
	assert.Equal(t, models.English, assistant.requests[0].Language)
}
