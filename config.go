package toolguide

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Desarso/toolguide/models"
	"github.com/Desarso/toolguide/models/gemini"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// ErrConfig marks a configuration that must stop the server before it starts serving.
var ErrConfig = errors.New("configuration error")

// Config holds everything needed to wire the assistant.
type Config struct {
	GeminiAPIKey string
	BraveAPIKey  string

	CatalogPath    string
	CategoriesPath string // empty uses the embedded category map
	CachePath      string
	CacheBackend   string // "json", "sqlite" or "postgres"
	DatabaseDSN    string

	EmbeddingModel string
	ChatModel      string
	SiteURL        string
	CallTimeout    time.Duration
	RefreshCron    string
	HistoryLimit   int
}

// NewConfig creates a configuration with default values
func NewConfig() *Config {
	return &Config{
		CatalogPath:    "data/tools.json",
		CachePath:      "embedding_cache.json",
		CacheBackend:   "json",
		EmbeddingModel: gemini.DefaultEmbeddingModel,
		ChatModel:      gemini.DefaultChatModel,
		CallTimeout:    15 * time.Second,
		HistoryLimit:   20,
	}
}

// LoadConfigFromEnv reads .env (if present) and the process environment on top of the defaults.
func LoadConfigFromEnv() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	c := NewConfig()
	c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	c.BraveAPIKey = os.Getenv("BRAVE_API_KEY")
	setFromEnv(&c.CatalogPath, "TOOLGUIDE_CATALOG")
	setFromEnv(&c.CategoriesPath, "TOOLGUIDE_CATEGORIES")
	setFromEnv(&c.CachePath, "TOOLGUIDE_CACHE")
	setFromEnv(&c.CacheBackend, "TOOLGUIDE_CACHE_BACKEND")
	setFromEnv(&c.DatabaseDSN, "TOOLGUIDE_DB_DSN")
	setFromEnv(&c.EmbeddingModel, "TOOLGUIDE_EMBED_MODEL")
	setFromEnv(&c.ChatModel, "TOOLGUIDE_CHAT_MODEL")
	setFromEnv(&c.SiteURL, "TOOLGUIDE_SITE_URL")
	setFromEnv(&c.RefreshCron, "TOOLGUIDE_REFRESH_CRON")

	if v := os.Getenv("TOOLGUIDE_CALL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("Warning: ignoring invalid TOOLGUIDE_CALL_TIMEOUT %q: %v", v, err)
		} else {
			c.CallTimeout = d
		}
	}
	return c
}

func setFromEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

// WithAPIKeys sets the Gemini and Brave Search keys
func (c *Config) WithAPIKeys(gemini, brave string) *Config {
	c.GeminiAPIKey = gemini
	c.BraveAPIKey = brave
	return c
}

// WithCatalogPath sets the tool catalog file
func (c *Config) WithCatalogPath(path string) *Config {
	c.CatalogPath = path
	return c
}

// WithCategoriesPath overrides the embedded category map
func (c *Config) WithCategoriesPath(path string) *Config {
	c.CategoriesPath = path
	return c
}

// WithJSONCache stores embeddings in a JSON file
func (c *Config) WithJSONCache(path string) *Config {
	c.CacheBackend = "json"
	c.CachePath = path
	return c
}

// WithSQLiteStore keeps embeddings and conversations in a SQLite database
func (c *Config) WithSQLiteStore(dbPath string) *Config {
	c.CacheBackend = "sqlite"
	c.DatabaseDSN = dbPath
	return c
}

// WithPostgresStore keeps embeddings and conversations in PostgreSQL
func (c *Config) WithPostgresStore(dsn string) *Config {
	c.CacheBackend = "postgres"
	c.DatabaseDSN = dsn
	return c
}

// WithModels sets the embedding and chat model names
func (c *Config) WithModels(embedding, chat string) *Config {
	c.EmbeddingModel = embedding
	c.ChatModel = chat
	return c
}

func (c *Config) WithSiteURL(url string) *Config {
	c.SiteURL = url
	return c
}

func (c *Config) WithCallTimeout(d time.Duration) *Config {
	c.CallTimeout = d
	return c
}

func (c *Config) WithRefreshCron(spec string) *Config {
	c.RefreshCron = spec
	return c
}

// Validate reports the first problem that would keep the server from working.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.GeminiAPIKey) == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY is not set", ErrConfig)
	}
	if c.CatalogPath == "" {
		return fmt.Errorf("%w: catalog path is empty", ErrConfig)
	}
	switch c.CacheBackend {
	case "json":
		if c.CachePath == "" {
			return fmt.Errorf("%w: embedding cache path is empty", ErrConfig)
		}
	case "sqlite", "postgres":
		if c.DatabaseDSN == "" && c.CacheBackend == "postgres" {
			return fmt.Errorf("%w: TOOLGUIDE_DB_DSN is required for postgres", ErrConfig)
		}
	default:
		return fmt.Errorf("%w: unsupported cache backend %q", ErrConfig, c.CacheBackend)
	}
	if c.CallTimeout <= 0 {
		return fmt.Errorf("%w: call timeout must be positive", ErrConfig)
	}
	if c.RefreshCron != "" {
		if _, err := cron.ParseStandard(c.RefreshCron); err != nil {
			return fmt.Errorf("%w: invalid refresh schedule: %v", ErrConfig, err)
		}
	}
	return nil
}

// CallPolicy is the timeout and retry policy applied to every external call.
func (c *Config) CallPolicy() models.CallPolicy {
	p := models.DefaultCallPolicy()
	p.Timeout = c.CallTimeout
	p.Logger = log.New(os.Stdout, "[CALL] ", log.LstdFlags)
	return p
}
