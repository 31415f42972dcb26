package stores

import (
	"fmt"

	"gorm.io/gorm"
)

// Store is a database-backed ConversationStore that also serves as an EmbeddingCache.
type Store interface {
	ConversationStore
	EmbeddingCache
	DB() *gorm.DB
}

// NewStore creates a new database store based on the configuration
func NewStore(config *StoreConfig) (Store, error) {
	switch config.Type {
	case "sqlite":
		return NewSQLiteStore(config)
	case "postgres":
		return NewPostgresStore(config)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", config.Type)
	}
}

// DefaultSQLitePath is used when the sqlite backend has no path configured.
const DefaultSQLitePath = "toolguide.sqlite"
