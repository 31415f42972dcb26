package stores

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// JSONFileCache keeps embeddings in a single JSON file mapping tool name to entry.
type JSONFileCache struct {
	Path string
}

func NewJSONFileCache(path string) *JSONFileCache {
	return &JSONFileCache{Path: path}
}

// Load returns an empty map when the file does not exist yet.
func (c *JSONFileCache) Load() (map[string]CacheEntry, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]CacheEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read cache %s: %w", c.Path, err)
	}

	entries := map[string]CacheEntry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse cache %s: %w", c.Path, err)
	}
	return entries, nil
}

// Save writes to a temp file next to Path and renames it into place.
func (c *JSONFileCache) Save(entries map[string]CacheEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	dir := filepath.Dir(c.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(c.Path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp cache file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close cache: %w", err)
	}
	if err := os.Rename(tmpName, c.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace cache %s: %w", c.Path, err)
	}
	return nil
}
