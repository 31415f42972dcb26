package catalog

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Desarso/toolguide/models"
	"github.com/Desarso/toolguide/stores"
)

// Store loads the catalog together with its cached embeddings.
type Store struct {
	CatalogPath string
	Cache       stores.EmbeddingCache
	Embedder    models.Embedder
	Logger      *log.Logger
}

func NewStore(catalogPath string, cache stores.EmbeddingCache, embedder models.Embedder) *Store {
	return &Store{
		CatalogPath: catalogPath,
		Cache:       cache,
		Embedder:    embedder,
		Logger:      log.New(os.Stdout, "[CATALOG] ", log.LstdFlags),
	}
}

// Load returns every tool with its embedding. Tools missing from the cache, or whose cached
// hash no longer matches their content, are embedded and the cache is rewritten once. Any
// embedding failure fails the whole load.
func (s *Store) Load(ctx context.Context) ([]ToolRecord, error) {
	tools, err := LoadTools(s.CatalogPath)
	if err != nil {
		return nil, err
	}

	entries, err := s.Cache.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to read embedding cache: %w", err)
	}
	if entries == nil {
		entries = make(map[string]stores.CacheEntry)
	}

	added := 0
	for i := range tools {
		tool := &tools[i]
		hash := tool.ContentHash()
		entry, ok := entries[tool.Name]
		if ok && entry.Hash != "" && entry.Hash != hash {
			s.Logger.Printf("Embedding for %s is stale, recomputing", tool.Name)
			ok = false
		}
		if !ok || len(entry.Vector) == 0 {
			vec, err := s.Embedder.Embed(ctx, tool.EmbeddingInput())
			if err != nil {
				return nil, fmt.Errorf("failed to embed tool %q: %w", tool.Name, err)
			}
			entry = stores.CacheEntry{Vector: vec, Hash: hash}
			entries[tool.Name] = entry
			added++
		}
		tool.Embedding = entry.Vector
	}

	if added > 0 {
		if err := s.Cache.Save(entries); err != nil {
			s.Logger.Printf("Warning: failed to persist %d new embeddings: %v", added, err)
		} else {
			s.Logger.Printf("Cached %d new embeddings", added)
		}
	}
	return tools, nil
}

// Records returns the catalog without embeddings.
func (s *Store) Records() ([]ToolRecord, error) {
	return LoadTools(s.CatalogPath)
}

// Find looks a tool up by name, case-insensitively.
func (s *Store) Find(name string) (ToolRecord, bool, error) {
	tools, err := s.Records()
	if err != nil {
		return ToolRecord{}, false, err
	}
	t, ok := FindByName(tools, name)
	return t, ok, nil
}

func (s *Store) FindBySlug(slug string) (ToolRecord, bool, error) {
	tools, err := s.Records()
	if err != nil {
		return ToolRecord{}, false, err
	}
	for _, t := range tools {
		if t.Slug() == slug {
			return t, true, nil
		}
	}
	return ToolRecord{}, false, nil
}

func FindByName(tools []ToolRecord, name string) (ToolRecord, bool) {
	name = strings.TrimSpace(name)
	for _, t := range tools {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return ToolRecord{}, false
}

// Names returns the tool names in catalog order.
func Names(tools []ToolRecord) []string {
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Name
	}
	return names
}
