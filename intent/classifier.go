// Package intent decides whether a chat message is a greeting, a thank-you, a new question or
// a follow-up, and which kind of request a question is.
package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/Desarso/toolguide/catalog"
	"github.com/Desarso/toolguide/models"
)

// ContextTurns is the number of trailing history turns shown to the model.
const ContextTurns = 4

var jsonBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

const classifyPrompt = `You classify messages sent to an assistant that recommends AI tools to students and teachers.

Intents:
- GREETING: the user only says hello.
- THANKS: the user only thanks the assistant.
- QUESTION: the user asks for a tool or help with a new task.
- FOLLOW_UP: the user refers to the previous answer (asks for another option, asks again about the same thing, ...).

request_type is one of: %s.
- alternative: the user wants a different tool than the one already recommended.
- previous_request: the user repeats or refines the previous request.
- new_topic: anything else.
A category name is used when the user asks for a tool of that category.

Respond with JSON only:
{"intent": "QUESTION", "request_type": "new_topic", "confidence": 0.9}
%s
Message: %s`

type Classifier struct {
	completer  models.Completer
	categories catalog.CategoryMap
	logger     *log.Logger
}

func NewClassifier(completer models.Completer, categories catalog.CategoryMap) *Classifier {
	return &Classifier{
		completer:  completer,
		categories: categories,
		logger:     log.New(os.Stdout, "[INTENT] ", log.LstdFlags),
	}
}

// WithLogger replaces the default logger.
func (c *Classifier) WithLogger(logger *log.Logger) *Classifier {
	c.logger = logger
	return c
}

// Classify never fails: when the model cannot be reached or answers with something that is not
// a valid result, the fallback intent is returned.
func (c *Classifier) Classify(ctx context.Context, message string, history []models.ConversationTurn) models.IntentResult {
	if intent, ok := quickIntent(message); ok {
		return models.IntentResult{Intent: intent, RequestType: models.RequestNewTopic, Confidence: 1}
	}

	raw, err := c.completer.Complete(ctx, c.prompt(message, history))
	if err != nil {
		c.logger.Printf("Classification failed, using fallback: %v", err)
		return models.FallbackIntent()
	}

	result, err := c.parse(raw)
	if err != nil {
		c.logger.Printf("Malformed classification, using fallback: %v", err)
		return models.FallbackIntent()
	}
	return result
}

func (c *Classifier) prompt(message string, history []models.ConversationTurn) string {
	labels := []string{
		string(models.RequestAlternative),
		string(models.RequestPreviousRequest),
		string(models.RequestNewTopic),
	}
	labels = append(labels, c.categories.Keys()...)

	conversation := ""
	if ctx := BuildContext(history); ctx != "" {
		conversation = "\nRecent conversation:\n" + ctx + "\n"
	}
	return fmt.Sprintf(classifyPrompt, strings.Join(labels, ", "), conversation, strings.TrimSpace(message))
}

// BuildContext renders the last ContextTurns turns with role labels. A history of one turn or
// less carries no context.
func BuildContext(history []models.ConversationTurn) string {
	if len(history) <= 1 {
		return ""
	}
	if len(history) > ContextTurns {
		history = history[len(history)-ContextTurns:]
	}
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		label := "User"
		if turn.Role == models.RoleAssistant {
			label = "Assistant"
		}
		lines = append(lines, label+": "+strings.TrimSpace(turn.Text))
	}
	return strings.Join(lines, "\n")
}

func (c *Classifier) parse(text string) (models.IntentResult, error) {
	text = strings.TrimSpace(text)
	if m := jsonBlockRe.FindStringSubmatch(text); len(m) > 1 {
		text = m[1]
	}
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	var result models.IntentResult
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return models.IntentResult{}, fmt.Errorf("invalid JSON: %w (raw: %s)", err, text)
	}

	result.Intent = models.Intent(strings.ToUpper(strings.TrimSpace(string(result.Intent))))
	if !result.Intent.Valid() {
		return models.IntentResult{}, fmt.Errorf("unknown intent %q", result.Intent)
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		return models.IntentResult{}, fmt.Errorf("confidence %v out of range", result.Confidence)
	}
	result.RequestType = c.requestType(result.RequestType)
	return result, nil
}

// requestType maps unknown labels to new_topic.
func (c *Classifier) requestType(rt models.RequestType) models.RequestType {
	label := models.RequestType(strings.ToLower(strings.TrimSpace(string(rt))))
	switch label {
	case models.RequestAlternative, models.RequestPreviousRequest, models.RequestNewTopic,
		models.RequestGrammar, models.RequestReference:
		return label
	}
	if c.categories.Has(string(label)) {
		return label
	}
	return models.RequestNewTopic
}
