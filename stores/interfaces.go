package stores

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/Desarso/toolguide/models"
)

// CacheEntry is a cached tool embedding. Hash is the content hash of the text that was
// embedded; it is empty for entries written by older cache files.
type CacheEntry struct {
	Vector []float32 `json:"vector"`
	Hash   string    `json:"hash,omitempty"`
}

// UnmarshalJSON also accepts the legacy form, a bare vector.
func (e *CacheEntry) UnmarshalJSON(data []byte) error {
	var vec []float32
	if err := json.Unmarshal(data, &vec); err == nil {
		e.Vector = vec
		e.Hash = ""
		return nil
	}
	type plain CacheEntry
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = CacheEntry(p)
	return nil
}

// EmbeddingCache persists tool embeddings keyed by tool name.
type EmbeddingCache interface {
	Load() (map[string]CacheEntry, error)
	// Save rewrites the cache with entries. Concurrent writers race; the last write wins.
	Save(entries map[string]CacheEntry) error
}

// EmbeddingRecord is the gorm row behind EmbeddingCache.
type EmbeddingRecord struct {
	ToolName   string `gorm:"primaryKey"`
	Hash       string
	VectorJSON string `gorm:"type:text;not null"`
	UpdatedAt  time.Time
}

// Message is a single persisted conversation turn.
type Message struct {
	gorm.Model
	ConversationID string `gorm:"index;not null"`
	Sequence       int    `gorm:"not null"`
	Role           string `gorm:"not null"` // "user", "assistant"
	Text           string `gorm:"type:text"`
	Tool           string `gorm:"index"`
	Category       string
}

// Conversation holds metadata for a chat conversation
type Conversation struct {
	gorm.Model
	ConversationID string    `gorm:"uniqueIndex;not null"`
	MessageCount   int       `gorm:"default:0"`
	Messages       []Message `gorm:"foreignKey:ConversationID;references:ConversationID"`
}

// ConversationStore persists chat turns.
type ConversationStore interface {
	SaveTurn(conversationID string, turn models.ConversationTurn) error
	// FetchHistory returns turns in sequence order; limit > 0 keeps only the last limit turns.
	FetchHistory(conversationID string, limit int) ([]Message, error)
	ListConversations() ([]string, error)

	Ping() error
	Close() error
}

// StoreConfig holds configuration for database stores
type StoreConfig struct {
	Type       string            `json:"type"`       // "sqlite", "postgres"
	Connection string            `json:"connection"` // file path or DSN
	Options    map[string]string `json:"options"`    // log_level: silent, error, warn, info
}

// NewStoreConfig creates a new store configuration
func NewStoreConfig(storeType, connection string) *StoreConfig {
	return &StoreConfig{
		Type:       storeType,
		Connection: connection,
		Options:    make(map[string]string),
	}
}

// WithOption adds an option to the store configuration
func (c *StoreConfig) WithOption(key, value string) *StoreConfig {
	c.Options[key] = value
	return c
}

// ToTurns converts persisted messages to conversation turns.
func ToTurns(msgs []Message) []models.ConversationTurn {
	turns := make([]models.ConversationTurn, 0, len(msgs))
	for _, m := range msgs {
		turns = append(turns, models.ConversationTurn{
			Role:     models.Role(m.Role),
			Text:     m.Text,
			Tool:     m.Tool,
			Category: m.Category,
		})
	}
	return turns
}
