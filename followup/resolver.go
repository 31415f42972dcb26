// Package followup answers follow-up questions from the conversation history without another
// embedding lookup.
package followup

import (
	"log"
	"os"
	"sort"
	"strings"

	"github.com/Desarso/toolguide/catalog"
	"github.com/Desarso/toolguide/models"
	"github.com/Desarso/toolguide/replies"
)

// Resolution describes what the resolver recommended.
type Resolution struct {
	Tool     catalog.ToolRecord
	Category string
	// Previous is the tool the recommendation replaces; empty unless it is an alternative.
	Previous string
}

type Resolver struct {
	tools      []catalog.ToolRecord
	byLength   []string
	categories catalog.CategoryMap
	formatter  replies.Formatter
	logger     *log.Logger
}

func NewResolver(tools []catalog.ToolRecord, categories catalog.CategoryMap, formatter replies.Formatter) *Resolver {
	names := catalog.Names(tools)
	// Longest names first so "Scholar GPT" wins over a shorter name it starts with.
	sort.SliceStable(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	return &Resolver{
		tools:      tools,
		byLength:   names,
		categories: categories,
		formatter:  formatter,
		logger:     log.New(os.Stdout, "[FOLLOWUP] ", log.LstdFlags),
	}
}

func (r *Resolver) WithLogger(logger *log.Logger) *Resolver {
	r.logger = logger
	return r
}

// Resolve returns a formatted recommendation for the follow-up, or ok=false when the request
// type needs a fresh retrieval instead.
func (r *Resolver) Resolve(history []models.ConversationTurn, requestType models.RequestType, lang models.Language) (string, Resolution, bool) {
	switch {
	case requestType == models.RequestAlternative:
		return r.alternative(history, lang)
	case requestType == models.RequestPreviousRequest, requestType == models.RequestNewTopic:
		return "", Resolution{}, false
	case r.categories.Has(string(requestType)):
		return r.category(string(requestType), lang)
	}
	return "", Resolution{}, false
}

func (r *Resolver) alternative(history []models.ConversationTurn, lang models.Language) (string, Resolution, bool) {
	mentions := r.Mentions(history)
	if len(mentions) == 0 {
		r.logger.Printf("No previously recommended tool in history")
		return "", Resolution{}, false
	}
	last := mentions[len(mentions)-1]

	category := last.Category
	if !r.categories.Has(category) {
		var ok bool
		if category, ok = r.categories.CategoryOf(last.Tool); !ok {
			r.logger.Printf("%s has no category, no alternative", last.Tool)
			return "", Resolution{}, false
		}
	}

	for _, member := range r.categories.Members(category) {
		if strings.EqualFold(member, last.Tool) {
			continue
		}
		if tool, ok := catalog.FindByName(r.tools, member); ok {
			return r.formatter.Alternative(tool, last.Tool, lang), Resolution{Tool: tool, Category: category, Previous: last.Tool}, true
		}
	}
	r.logger.Printf("Category %s has no alternative to %s", category, last.Tool)
	return "", Resolution{}, false
}

func (r *Resolver) category(key string, lang models.Language) (string, Resolution, bool) {
	key = strings.ToLower(key)
	for _, member := range r.categories.Members(key) {
		if tool, ok := catalog.FindByName(r.tools, member); ok {
			return r.formatter.Recommendation(tool, lang), Resolution{Tool: tool, Category: key}, true
		}
	}
	r.logger.Printf("No catalog tool for category %s", key)
	return "", Resolution{}, false
}

// Mention is a tool recommended earlier in the conversation.
type Mention struct {
	Tool     string
	Category string
}

// Mentions lists the tools recommended by assistant turns, oldest first. A turn's structured
// tool tag is used when present, otherwise the text is matched against the catalog names.
func (r *Resolver) Mentions(history []models.ConversationTurn) []Mention {
	var out []Mention
	for _, turn := range history {
		if turn.Role != models.RoleAssistant {
			continue
		}
		if turn.Tool != "" {
			if tool, ok := catalog.FindByName(r.tools, turn.Tool); ok {
				out = append(out, Mention{Tool: tool.Name, Category: strings.ToLower(turn.Category)})
				continue
			}
		}
		if name, ok := r.prefixMatch(turn.Text); ok {
			out = append(out, Mention{Tool: name})
		}
	}
	return out
}

func (r *Resolver) prefixMatch(text string) (string, bool) {
	text = strings.TrimSpace(text)
	for _, name := range r.byLength {
		if len(text) >= len(name) && strings.EqualFold(text[:len(name)], name) {
			return name, true
		}
	}
	return "", false
}
