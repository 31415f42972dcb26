package stores

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Decision records how one chat message was answered.
type Decision struct {
	ID             uint      `gorm:"primarykey" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	ConversationID string    `gorm:"index:idx_decision_conv" json:"conversation_id,omitempty"`
	Language       string    `json:"language"`
	Intent         string    `json:"intent,omitempty"`
	RequestType    string    `json:"request_type,omitempty"`
	Confidence     float64   `json:"confidence,omitempty"`
	Path           string    `gorm:"not null" json:"path"` // greeting, thanks, resolver, retrieval, not_found, tool_answer, error
	Tool           string    `gorm:"index:idx_decision_tool" json:"tool,omitempty"`
	Score          float64   `json:"score,omitempty"`
	DurationMS     int64     `json:"duration_ms"`
}

// DecisionStore persists answering decisions for operators.
type DecisionStore interface {
	SaveDecision(d *Decision) error
	GetDecisionsByConversation(conversationID string) ([]*Decision, error)
	GetDecisionsByTool(tool string) ([]*Decision, error)
}

// GORMDecisionStore implements DecisionStore for SQLite/PostgreSQL via GORM
type GORMDecisionStore struct {
	db *gorm.DB
}

// NewGORMDecisionStore creates a decision store from an existing GORM database connection
func NewGORMDecisionStore(db *gorm.DB) (*GORMDecisionStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	if err := db.AutoMigrate(&Decision{}); err != nil {
		return nil, fmt.Errorf("failed to migrate decisions table: %w", err)
	}

	return &GORMDecisionStore{db: db}, nil
}

func (s *GORMDecisionStore) SaveDecision(d *Decision) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	return s.db.Create(d).Error
}

// GetDecisionsByConversation retrieves all decisions for a conversation, oldest first
func (s *GORMDecisionStore) GetDecisionsByConversation(conversationID string) ([]*Decision, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	var decisions []*Decision
	err := s.db.Where("conversation_id = ?", conversationID).
		Order("id ASC").
		Find(&decisions).Error

	return decisions, err
}

func (s *GORMDecisionStore) GetDecisionsByTool(tool string) ([]*Decision, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	var decisions []*Decision
	err := s.db.Where("tool = ?", tool).
		Order("id ASC").
		Find(&decisions).Error

	return decisions, err
}
