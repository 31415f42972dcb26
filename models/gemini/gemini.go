package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Gemini_Model implements models.Embedder and models.Completer on top of the genai SDK.
type Gemini_Model struct {
	Model           string
	EmbeddingModel  string
	Temperature     float32
	MaxOutputTokens int32

	client *genai.Client
	schema *genai.Schema
}

// New creates a Gemini API client. apiKey must not be empty.
func New(ctx context.Context, apiKey string) (*Gemini_Model, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key must not be empty")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Gemini_Model{
		Model:          DefaultChatModel,
		EmbeddingModel: DefaultEmbeddingModel,
		Temperature:    0.1,
		client:         client,
	}, nil
}

// WithJSONSchema returns a copy whose completions are JSON constrained to schema.
func (g *Gemini_Model) WithJSONSchema(schema *genai.Schema) *Gemini_Model {
	cp := *g
	cp.schema = schema
	return &cp
}

// WithMaxOutputTokens returns a copy with a completion length cap.
func (g *Gemini_Model) WithMaxOutputTokens(n int32) *Gemini_Model {
	cp := *g
	cp.MaxOutputTokens = n
	return &cp
}

func (g *Gemini_Model) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := g.client.Models.EmbedContent(ctx, g.EmbeddingModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	return firstEmbedding(res)
}

func (g *Gemini_Model) Complete(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.Temperature),
		MaxOutputTokens: g.MaxOutputTokens,
	}
	if g.schema != nil {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = g.schema
	}

	res, err := g.client.Models.GenerateContent(ctx, g.Model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return responseText(res)
}

func firstEmbedding(res *genai.EmbedContentResponse) ([]float32, error) {
	if res == nil || len(res.Embeddings) == 0 || res.Embeddings[0] == nil {
		return nil, fmt.Errorf("no embedding in response")
	}
	values := res.Embeddings[0].Values
	if len(values) == 0 {
		return nil, fmt.Errorf("empty embedding in response")
	}
	return values, nil
}

// responseText joins the text parts of the first candidate.
func responseText(res *genai.GenerateContentResponse) (string, error) {
	if res == nil || len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", fmt.Errorf("no candidates in response")
	}
	var b strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", fmt.Errorf("empty text in response")
	}
	return text, nil
}
