// Package catalog loads the recommendable tool records, keeps their embeddings cached and
// ranks them against a query embedding.
package catalog

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Desarso/toolguide/models"
	"github.com/tidwall/jsonc"
	"github.com/zeebo/blake3"
)

// ToolRecord is one catalog entry. Name is unique within the catalog.
type ToolRecord struct {
	Name          string   `json:"tool"`
	Use           string   `json:"use,omitempty"`
	AcademicUse   string   `json:"academic_use"`
	AcademicUseEN string   `json:"academic_use_en,omitempty"`
	HowTo         string   `json:"how_to,omitempty"`
	HowToEN       string   `json:"how_to_en,omitempty"`
	Link          string   `json:"link"`
	VideoLink     string   `json:"video_link,omitempty"`
	Keywords      []string `json:"keywords"`
	Category      string   `json:"category,omitempty"`
	Rating        float64  `json:"rating,omitempty"`
	ReviewCount   int      `json:"reviewCount,omitempty"`
	IsFree        bool     `json:"isFree"`

	// Embedding is filled in by Store.Load.
	Embedding []float32 `json:"-"`
}

const (
	fieldDelimiter   = " | "
	keywordDelimiter = ", "
)

// Description returns the primary-use text in lang, falling back to the default language.
func (t ToolRecord) Description(lang models.Language) string {
	if models.NormalizeLanguage(lang) == models.English && t.AcademicUseEN != "" {
		return t.AcademicUseEN
	}
	return t.AcademicUse
}

// Instructions returns the usage instructions in lang, falling back to the default language.
func (t ToolRecord) Instructions(lang models.Language) string {
	if models.NormalizeLanguage(lang) == models.English && t.HowToEN != "" {
		return t.HowToEN
	}
	return t.HowTo
}

func (t ToolRecord) Slug() string {
	return Slug(t.Name)
}

// EmbeddingInput is the canonical text embedded for the record.
func (t ToolRecord) EmbeddingInput() string {
	return t.Name + fieldDelimiter + t.AcademicUse + fieldDelimiter + strings.Join(t.Keywords, keywordDelimiter)
}

// ContentHash identifies the embedding input; a cached vector with a different hash is stale.
func (t ToolRecord) ContentHash() string {
	sum := blake3.Sum256([]byte(t.EmbeddingInput()))
	return hex.EncodeToString(sum[:])
}

// LoadTools reads the catalog file. Comments and trailing commas are tolerated.
func LoadTools(path string) ([]ToolRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return ParseTools(data)
}

// ParseTools decodes and validates catalog JSON.
func ParseTools(data []byte) ([]ToolRecord, error) {
	var tools []ToolRecord
	if err := json.Unmarshal(jsonc.ToJSON(data), &tools); err != nil {
		return nil, fmt.Errorf("malformed catalog: %w", err)
	}

	seen := make(map[string]bool, len(tools))
	for i, t := range tools {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return nil, fmt.Errorf("malformed catalog: entry %d has no tool name", i)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return nil, fmt.Errorf("malformed catalog: duplicate tool %q", name)
		}
		seen[key] = true
		tools[i].Name = name
	}
	return tools, nil
}
