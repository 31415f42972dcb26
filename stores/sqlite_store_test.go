package stores

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Desarso/toolguide/models"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStoreSimple(filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreRejectsWrongType(t *testing.T) {
	_, err := NewSQLiteStore(NewStoreConfig("postgres", "x"))
	assert.Error(t, err)
}

func TestSQLiteStoreTurns(t *testing.T) {
	store := newTestSQLiteStore(t)
	require.NoError(t, store.Ping())

	require.NoError(t, store.SaveTurn("c1", models.ConversationTurn{Role: models.RoleUser, Text: "dil kontrolü"}))
	require.NoError(t, store.SaveTurn("c1", models.ConversationTurn{
		Role: models.RoleAssistant, Text: "Grammarly: ...", Tool: "Grammarly", Category: "grammar",
	}))
	require.NoError(t, store.SaveTurn("c1", models.ConversationTurn{Role: models.RoleUser, Text: "başka?"}))
	require.NoError(t, store.SaveTurn("c2", models.ConversationTurn{Role: models.RoleUser, Text: "selam"}))

	all, err := store.FetchHistory("c1", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 1, all[0].Sequence)
	assert.Equal(t, 3, all[2].Sequence)

	last, err := store.FetchHistory("c1", 2)
	require.NoError(t, err)
	require.Len(t, last, 2)
	turns := ToTurns(last)
	assert.Equal(t, models.RoleAssistant, turns[0].Role)
	assert.Equal(t, "Grammarly", turns[0].Tool)

	ids, err := store.ListConversations()
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, ids)
}

func TestSQLiteStoreEmbeddingCache(t *testing.T) {
	store := newTestSQLiteStore(t)

	entries, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, store.Save(map[string]CacheEntry{
		"Grammarly": {Vector: []float32{1, 0}, Hash: "h1"},
		"QuillBot":  {Vector: []float32{0, 1}, Hash: "h2"},
	}))
	require.NoError(t, store.Save(map[string]CacheEntry{
		"Grammarly": {Vector: []float32{0.5, 0.5}, Hash: "h3"},
	}))

	entries, err = store.Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, CacheEntry{Vector: []float32{0.5, 0.5}, Hash: "h3"}, entries["Grammarly"])
	assert.Equal(t, "h2", entries["QuillBot"].Hash)
}

func TestGORMDecisionStore(t *testing.T) {
	store := newTestSQLiteStore(t)
	decisions, err := NewGORMDecisionStore(store.DB())
	require.NoError(t, err)

	require.NoError(t, decisions.SaveDecision(&Decision{ConversationID: "c1", Path: "retrieval", Tool: "Grammarly", Score: 0.81}))
	require.NoError(t, decisions.SaveDecision(&Decision{ConversationID: "c1", Path: "resolver", Tool: "DeepL Write"}))
	require.NoError(t, decisions.SaveDecision(&Decision{ConversationID: "c2", Path: "greeting"}))

	byConv, err := decisions.GetDecisionsByConversation("c1")
	require.NoError(t, err)
	require.Len(t, byConv, 2)
	assert.Equal(t, "retrieval", byConv[0].Path)

	byTool, err := decisions.GetDecisionsByTool("DeepL Write")
	require.NoError(t, err)
	require.Len(t, byTool, 1)

	_, err = NewGORMDecisionStore(nil)
	assert.Error(t, err)
}

func TestNewStoreWithOptions(t *testing.T) {
	cfg := NewStoreConfig("sqlite", filepath.Join(t.TempDir(), "opts.sqlite")).WithOption("log_level", "silent")
	store, err := NewStore(cfg)
	require.NoError(t, err)
	defer store.Close()
	assert.NotNil(t, store.DB())

	_, err = NewStore(NewStoreConfig("mysql", "x"))
	assert.Error(t, err)
}

func TestGormConfigLogLevel(t *testing.T) {
	assert.Nil(t, gormConfig(nil).Logger)
	assert.NotNil(t, gormConfig(map[string]string{"log_level": "error"}).Logger)
}
