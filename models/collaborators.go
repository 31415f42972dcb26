package models

import "context"

// Embedder converts text to a fixed-length vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Completer returns the language model's text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// SearchResult is a single web search hit.
type SearchResult struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

// Searcher runs a web search and returns hits in rank order.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}
