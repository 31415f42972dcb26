package stores

import (
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/Desarso/toolguide/models"
)

// gormStore holds the dialect-independent parts of the SQLite and PostgreSQL stores.
type gormStore struct {
	db *gorm.DB
}

func (s *gormStore) migrate() error {
	if err := s.db.AutoMigrate(&Conversation{}, &Message{}, &EmbeddingRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return nil
}

// DB exposes the connection so other stores (e.g. the decision log) can share it.
func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// Close closes the database connection
func (s *gormStore) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (s *gormStore) Ping() error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}

// SaveTurn appends a turn to the conversation, creating the conversation on first use.
func (s *gormStore) SaveTurn(conversationID string, turn models.ConversationTurn) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Conversation{}).Where("conversation_id = ?", conversationID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check conversation: %w", err)
		}
		if count == 0 {
			if err := tx.Create(&Conversation{ConversationID: conversationID}).Error; err != nil {
				return fmt.Errorf("failed to create conversation record: %w", err)
			}
		}

		if err := tx.Model(&Message{}).Where("conversation_id = ?", conversationID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count existing messages: %w", err)
		}
		seq := int(count) + 1

		msg := Message{
			ConversationID: conversationID,
			Sequence:       seq,
			Role:           string(turn.Role),
			Text:           turn.Text,
			Tool:           turn.Tool,
			Category:       turn.Category,
		}
		if err := tx.Create(&msg).Error; err != nil {
			return fmt.Errorf("failed to create message record: %w", err)
		}

		if err := tx.Model(&Conversation{}).Where("conversation_id = ?", conversationID).Update("message_count", seq).Error; err != nil {
			return fmt.Errorf("failed to update conversation message count: %w", err)
		}
		return nil
	})
}

// FetchHistory retrieves messages for a conversation in sequence order
// limit: maximum number of messages to retrieve (0 = return all messages)
func (s *gormStore) FetchHistory(conversationID string, limit int) ([]Message, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	var msgs []Message
	query := s.db.Where("conversation_id = ?", conversationID).Order("sequence ASC")

	if limit > 0 {
		var count int64
		if err := s.db.Model(&Message{}).Where("conversation_id = ?", conversationID).Count(&count).Error; err != nil {
			return nil, fmt.Errorf("failed to count messages: %w", err)
		}

		// If more than limit, offset to get only last N messages
		if count > int64(limit) {
			query = query.Offset(int(count) - limit)
		}
	}

	if err := query.Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	return msgs, nil
}

// ListConversations returns all conversation IDs
func (s *gormStore) ListConversations() ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	var ids []string
	if err := s.db.Model(&Conversation{}).Order("id ASC").Pluck("conversation_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch conversations: %w", err)
	}
	return ids, nil
}

// Load implements EmbeddingCache.
func (s *gormStore) Load() (map[string]CacheEntry, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	var rows []EmbeddingRecord
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch embeddings: %w", err)
	}

	entries := make(map[string]CacheEntry, len(rows))
	for _, row := range rows {
		var vec []float32
		if err := json.Unmarshal([]byte(row.VectorJSON), &vec); err != nil {
			log.Printf("Warning: dropping unreadable embedding for %s: %v", row.ToolName, err)
			continue
		}
		entries[row.ToolName] = CacheEntry{Vector: vec, Hash: row.Hash}
	}
	return entries, nil
}

// Save implements EmbeddingCache by upserting every entry.
func (s *gormStore) Save(entries map[string]CacheEntry) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	if len(entries) == 0 {
		return nil
	}

	rows := make([]EmbeddingRecord, 0, len(entries))
	for name, entry := range entries {
		data, err := json.Marshal(entry.Vector)
		if err != nil {
			return fmt.Errorf("failed to marshal embedding for %s: %w", name, err)
		}
		rows = append(rows, EmbeddingRecord{ToolName: name, Hash: entry.Hash, VectorJSON: string(data)})
	}

	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tool_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"hash", "vector_json", "updated_at"}),
	}).CreateInBatches(rows, 100).Error
}

func gormConfig(options map[string]string) *gorm.Config {
	cfg := &gorm.Config{}
	switch options["log_level"] {
	case "silent":
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	case "error":
		cfg.Logger = logger.Default.LogMode(logger.Error)
	case "info":
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}
	return cfg
}
