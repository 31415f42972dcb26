package stores

import (
	"testing"

	"github.com/Desarso/toolguide/models"
)

func TestSanitizeHistory_EmptyHistory(t *testing.T) {
	result := SanitizeHistory([]models.ConversationTurn{}, 0)
	if len(result) != 0 {
		t.Errorf("Expected empty result, got %d turns", len(result))
	}
}

func TestSanitizeHistory_ValidHistory(t *testing.T) {
	turns := []models.ConversationTurn{
		{Role: models.RoleAssistant, Text: "Merhaba! Nasıl yardımcı olabilirim?"},
		{Role: models.RoleUser, Text: "dil kontrolü için araç"},
		{Role: models.RoleAssistant, Text: "Grammarly: ...", Tool: "Grammarly", Category: "grammar"},
	}
	result := SanitizeHistory(turns, 0)
	if len(result) != 3 {
		t.Errorf("Expected 3 turns, got %d", len(result))
	}
	if result[2].Tool != "Grammarly" {
		t.Errorf("Expected assistant tag to survive, got %q", result[2].Tool)
	}
}

func TestSanitizeHistory_DropsEmptyAndRepeated(t *testing.T) {
	turns := []models.ConversationTurn{
		{Role: models.RoleUser, Text: "  "},
		{Role: models.RoleUser, Text: "sunum aracı"},
		{Role: models.RoleUser, Text: "sunum aracı "},
		{Role: models.RoleAssistant, Text: "Gamma.app: ..."},
	}
	result := SanitizeHistory(turns, 0)
	if len(result) != 2 {
		t.Fatalf("Expected 2 turns, got %d", len(result))
	}
	if result[0].Text != "sunum aracı" {
		t.Errorf("Expected trimmed text, got %q", result[0].Text)
	}
}

func TestSanitizeHistory_StripsUserTags(t *testing.T) {
	turns := []models.ConversationTurn{
		{Role: models.RoleUser, Text: "Grammarly nasıl?", Tool: "Grammarly", Category: "grammar"},
	}
	result := SanitizeHistory(turns, 0)
	if result[0].Tool != "" || result[0].Category != "" {
		t.Errorf("Expected tags removed from user turn, got %+v", result[0])
	}
}

func TestSanitizeHistory_KeepsMostRecent(t *testing.T) {
	turns := []models.ConversationTurn{
		{Role: models.RoleUser, Text: "1"},
		{Role: models.RoleAssistant, Text: "2"},
		{Role: models.RoleUser, Text: "3"},
		{Role: models.RoleAssistant, Text: "4"},
	}
	result := SanitizeHistory(turns, 2)
	if len(result) != 2 {
		t.Fatalf("Expected 2 turns, got %d", len(result))
	}
	if result[0].Text != "3" || result[1].Text != "4" {
		t.Errorf("Expected the last two turns, got %+v", result)
	}
}

func TestDetectCorruptedHistory(t *testing.T) {
	clean := []models.ConversationTurn{
		{Role: models.RoleUser, Text: "a"},
		{Role: models.RoleAssistant, Text: "b"},
	}
	if issues := DetectCorruptedHistory(clean); len(issues) != 0 {
		t.Errorf("Expected no issues, got %v", issues)
	}

	dirty := []models.ConversationTurn{
		{Role: models.RoleUser, Text: "", Tool: "Grammarly"},
		{Role: models.RoleAssistant, Text: "b"},
		{Role: models.RoleAssistant, Text: "b"},
	}
	if issues := DetectCorruptedHistory(dirty); len(issues) != 3 {
		t.Errorf("Expected 3 issues, got %v", issues)
	}
}
