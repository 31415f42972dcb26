package stores

import (
	"log"
	"strings"

	"github.com/Desarso/toolguide/models"
)

// SanitizeHistory normalizes client supplied history before it is interpreted:
// - surrounding whitespace is trimmed and empty turns are dropped
// - tool/category tags are only kept on assistant turns
// - an exact repeat of the previous turn (double submit) is dropped
// - when maxTurns > 0 only the most recent maxTurns turns are kept
func SanitizeHistory(turns []models.ConversationTurn, maxTurns int) []models.ConversationTurn {
	if len(turns) == 0 {
		return turns
	}

	result := make([]models.ConversationTurn, 0, len(turns))
	dropped := 0
	for _, turn := range turns {
		turn.Text = strings.TrimSpace(turn.Text)
		if turn.Text == "" {
			dropped++
			continue
		}
		if turn.Role != models.RoleAssistant {
			turn.Role = models.RoleUser
			turn.Tool = ""
			turn.Category = ""
		}
		if n := len(result); n > 0 && result[n-1].Role == turn.Role && result[n-1].Text == turn.Text {
			dropped++
			continue
		}
		result = append(result, turn)
	}

	if dropped > 0 {
		log.Printf("[HISTORY_SANITIZER] Removed %d empty or repeated turns", dropped)
	}

	if maxTurns > 0 && len(result) > maxTurns {
		result = result[len(result)-maxTurns:]
	}
	return result
}

// DetectCorruptedHistory lists problems SanitizeHistory would fix (empty if history is clean).
func DetectCorruptedHistory(turns []models.ConversationTurn) []string {
	issues := []string{}

	for i, turn := range turns {
		if strings.TrimSpace(turn.Text) == "" {
			issues = append(issues, "Empty turn")
		}
		if turn.Role != models.RoleAssistant && (turn.Tool != "" || turn.Category != "") {
			issues = append(issues, "Tool tag on a user turn")
		}
		if i > 0 && turns[i-1].Role == turn.Role && turns[i-1].Text == turn.Text {
			issues = append(issues, "Repeated turn")
		}
	}

	return issues
}
