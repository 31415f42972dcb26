package toolguide

import (
	"context"
	"errors"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/Desarso/toolguide/catalog"
	"github.com/Desarso/toolguide/models"
	"github.com/Desarso/toolguide/replies"
)

// Delegate answers questions about one tool from an external source.
type Delegate interface {
	Answer(ctx context.Context, question string, lang models.Language) (string, error)
}

// ToolFinder looks a catalog tool up by name.
type ToolFinder interface {
	Find(name string) (catalog.ToolRecord, bool, error)
}

// Answerer handles chats scoped to a single tool (the tool detail page chat).
type Answerer struct {
	tools     ToolFinder
	delegates map[string]Delegate
	formatter replies.Formatter
	logger    *log.Logger
}

func NewAnswerer(tools ToolFinder, formatter replies.Formatter) *Answerer {
	return &Answerer{
		tools:     tools,
		delegates: make(map[string]Delegate),
		formatter: formatter,
		logger:    log.New(os.Stdout, "[ANSWERER] ", log.LstdFlags),
	}
}

// WithDelegate adds tool to the allow-list of tools answered by d.
func (a *Answerer) WithDelegate(tool string, d Delegate) *Answerer {
	a.delegates[strings.ToLower(strings.TrimSpace(tool))] = d
	return a
}

func (a *Answerer) WithLogger(logger *log.Logger) *Answerer {
	a.logger = logger
	return a
}

// Delegated reports whether questions about tool go to an external delegate.
func (a *Answerer) Delegated(tool string) bool {
	_, ok := a.delegates[strings.ToLower(strings.TrimSpace(tool))]
	return ok
}

// Answer never returns an error to the caller: delegate failures become a localized apology,
// tools outside the allow-list get their catalog description and usage instructions.
func (a *Answerer) Answer(ctx context.Context, tool, question string, lang models.Language) string {
	tool = strings.TrimSpace(tool)
	if d, ok := a.delegates[strings.ToLower(tool)]; ok {
		answer, err := d.Answer(ctx, question, lang)
		if err == nil && strings.TrimSpace(answer) == "" {
			err = errors.New("empty answer")
		}
		if err != nil {
			a.logger.Printf("Delegate for %s failed: %v", tool, err)
			return replies.Apology(lang, tool)
		}
		return answer
	}

	record, ok, err := a.tools.Find(tool)
	if err != nil {
		a.logger.Printf("Failed to read catalog for %s: %v", tool, err)
		return replies.TemporaryProblem(lang)
	}
	if !ok {
		return replies.NoInformation(lang)
	}
	return a.formatter.Details(record, lang)
}

// ConsensusResults is the number of search hits summarized per question.
const ConsensusResults = 5

// minAnswerLength is the shortest summary treated as an actual answer.
const minAnswerLength = 10

// ConsensusDelegate answers questions about Consensus from web search results.
type ConsensusDelegate struct {
	Searcher  models.Searcher
	Completer models.Completer
}

func NewConsensusDelegate(searcher models.Searcher, completer models.Completer) *ConsensusDelegate {
	return &ConsensusDelegate{Searcher: searcher, Completer: completer}
}

func (c *ConsensusDelegate) Answer(ctx context.Context, question string, lang models.Language) (string, error) {
	results, err := c.Searcher.Search(ctx, replies.ConsensusQuery(question, lang), ConsensusResults)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return replies.ConsensusNoSpecific(lang), nil
	}

	summary, err := c.Completer.Complete(ctx, replies.ConsensusPrompt(question, results, lang))
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(strings.TrimSpace(summary)) <= minAnswerLength {
		return replies.ConsensusNoSpecific(lang), nil
	}
	return replies.ConsensusAnswer(summary, lang), nil
}
