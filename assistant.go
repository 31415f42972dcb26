// Package toolguide recommends AI tools in chat: it classifies each message, answers follow-ups
// from the conversation and otherwise retrieves the closest catalog tool.
package toolguide

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Desarso/toolguide/catalog"
	"github.com/Desarso/toolguide/followup"
	"github.com/Desarso/toolguide/models"
	"github.com/Desarso/toolguide/replies"
	"github.com/Desarso/toolguide/stores"
)

// Classifier maps a message and its history to an intent.
type Classifier interface {
	Classify(ctx context.Context, message string, history []models.ConversationTurn) models.IntentResult
}

// ToolSource returns the catalog with embeddings.
type ToolSource interface {
	Load(ctx context.Context) ([]catalog.ToolRecord, error)
}

// Decision paths recorded in the decision log.
const (
	PathGreeting   = "greeting"
	PathThanks     = "thanks"
	PathResolver   = "resolver"
	PathRetrieval  = "retrieval"
	PathNotFound   = "not_found"
	PathToolAnswer = "tool_answer"
	PathError      = "error"
)

type Assistant struct {
	tools      ToolSource
	embedder   models.Embedder
	classifier Classifier
	categories catalog.CategoryMap
	answerer   *Answerer
	formatter  replies.Formatter
	threshold  float64

	conversations stores.ConversationStore
	decisions     stores.DecisionStore
	historyLimit  int
	logger        *log.Logger
}

func NewAssistant(tools ToolSource, embedder models.Embedder, classifier Classifier, categories catalog.CategoryMap, answerer *Answerer, formatter replies.Formatter) *Assistant {
	return &Assistant{
		tools:        tools,
		embedder:     embedder,
		classifier:   classifier,
		categories:   categories,
		answerer:     answerer,
		formatter:    formatter,
		threshold:    catalog.Threshold,
		historyLimit: 20,
		logger:       log.New(os.Stdout, "[ASSISTANT] ", log.LstdFlags),
	}
}

// WithConversationStore persists turns of requests that carry a conversation id.
func (a *Assistant) WithConversationStore(store stores.ConversationStore) *Assistant {
	a.conversations = store
	return a
}

// WithDecisionStore records how every message was answered.
func (a *Assistant) WithDecisionStore(store stores.DecisionStore) *Assistant {
	a.decisions = store
	return a
}

func (a *Assistant) WithThreshold(threshold float64) *Assistant {
	a.threshold = threshold
	return a
}

func (a *Assistant) WithHistoryLimit(limit int) *Assistant {
	a.historyLimit = limit
	return a
}

func (a *Assistant) WithLogger(logger *log.Logger) *Assistant {
	a.logger = logger
	return a
}

// outcome is one answered message.
type outcome struct {
	text     string
	path     string
	tool     string
	category string
	score    float64
	intent   models.IntentResult
}

// Respond answers one chat message. It always returns a user-facing string in the request's
// language; failures are logged and turned into localized messages.
func (a *Assistant) Respond(ctx context.Context, req models.Chat_Request) models.Chat_Response {
	start := time.Now()
	lang := models.NormalizeLanguage(req.Language)
	history := a.history(req)

	var out outcome
	if name := strings.TrimSpace(req.Tool_Name); name != "" {
		// Tool-scoped chats never fall back to retrieval.
		out = outcome{
			text: a.answerer.Answer(ctx, name, req.Message, lang),
			path: PathToolAnswer,
			tool: name,
		}
		out.category, _ = a.categories.CategoryOf(name)
	} else {
		out = a.dispatch(ctx, req.Message, lang, history)
	}

	a.remember(req.Conversation_ID, req.Message, out)
	a.record(req.Conversation_ID, lang, out, time.Since(start))

	return models.Chat_Response{
		Response:        out.text,
		Conversation_ID: req.Conversation_ID,
		Tool:            out.tool,
		Category:        out.category,
	}
}

func (a *Assistant) dispatch(ctx context.Context, message string, lang models.Language, history []models.ConversationTurn) outcome {
	result := a.classifier.Classify(ctx, message, history)
	a.logger.Printf("Intent %s/%s (%.2f)", result.Intent, result.RequestType, result.Confidence)

	switch result.Intent {
	case models.IntentGreeting:
		return outcome{text: replies.Greeting(lang), path: PathGreeting, intent: result}
	case models.IntentThanks:
		return outcome{text: replies.Thanks(lang), path: PathThanks, intent: result}
	}

	tools, err := a.tools.Load(ctx)
	if err != nil {
		a.logger.Printf("Catalog load failed: %v", err)
		return outcome{text: replies.TemporaryProblem(lang), path: PathError, intent: result}
	}

	if result.Intent == models.IntentFollowUp {
		resolver := followup.NewResolver(tools, a.categories, a.formatter).WithLogger(a.logger)
		if text, res, ok := resolver.Resolve(history, result.RequestType, lang); ok {
			return outcome{
				text:     text,
				path:     PathResolver,
				tool:     res.Tool.Name,
				category: res.Category,
				intent:   result,
			}
		}
		a.logger.Printf("Follow-up %s not resolved from history, retrieving", result.RequestType)
	}
	return a.retrieve(ctx, message, lang, tools, result)
}

func (a *Assistant) retrieve(ctx context.Context, message string, lang models.Language, tools []catalog.ToolRecord, result models.IntentResult) outcome {
	query, err := a.embedder.Embed(ctx, message)
	if err != nil {
		a.logger.Printf("Query embedding failed: %v", err)
		return outcome{text: replies.TemporaryProblem(lang), path: PathError, intent: result}
	}

	match, ok := catalog.Retrieve(query, tools, a.threshold)
	if !ok {
		a.logger.Printf("No tool above %.2f (best %.4f)", a.threshold, match.Score)
		return outcome{text: a.formatter.NotFound(lang), path: PathNotFound, score: match.Score, intent: result}
	}

	category, found := a.categories.CategoryOf(match.Tool.Name)
	if !found {
		category = match.Tool.Category
	}
	return outcome{
		text:     a.formatter.Recommendation(match.Tool, lang),
		path:     PathRetrieval,
		tool:     match.Tool.Name,
		category: category,
		score:    match.Score,
		intent:   result,
	}
}

// history prefers the client's turns and falls back to the stored conversation.
func (a *Assistant) history(req models.Chat_Request) []models.ConversationTurn {
	turns := req.Turns()
	if len(turns) == 0 && req.Conversation_ID != "" && a.conversations != nil {
		msgs, err := a.conversations.FetchHistory(req.Conversation_ID, a.historyLimit)
		if err != nil {
			a.logger.Printf("Warning: failed to fetch history for %s: %v", req.Conversation_ID, err)
		} else {
			turns = stores.ToTurns(msgs)
		}
	}
	if issues := stores.DetectCorruptedHistory(turns); len(issues) > 0 {
		a.logger.Printf("Warning: history for %q needs cleanup: %s", req.Conversation_ID, strings.Join(issues, ", "))
	}
	return stores.SanitizeHistory(turns, a.historyLimit)
}

func (a *Assistant) remember(conversationID, message string, out outcome) {
	if a.conversations == nil || conversationID == "" {
		return
	}
	turns := []models.ConversationTurn{
		{Role: models.RoleUser, Text: message},
		{Role: models.RoleAssistant, Text: out.text, Tool: out.tool, Category: out.category},
	}
	for _, turn := range turns {
		if err := a.conversations.SaveTurn(conversationID, turn); err != nil {
			a.logger.Printf("Warning: failed to save %s turn for %s: %v", turn.Role, conversationID, err)
			return
		}
	}
}

func (a *Assistant) record(conversationID string, lang models.Language, out outcome, elapsed time.Duration) {
	if a.decisions == nil {
		return
	}
	d := &stores.Decision{
		ConversationID: conversationID,
		Language:       string(lang),
		Intent:         string(out.intent.Intent),
		RequestType:    string(out.intent.RequestType),
		Confidence:     out.intent.Confidence,
		Path:           out.path,
		Tool:           out.tool,
		Score:          out.score,
		DurationMS:     elapsed.Milliseconds(),
	}
	if err := a.decisions.SaveDecision(d); err != nil {
		a.logger.Printf("Warning: failed to record decision: %v", err)
	}
}
