package toolguide

import (
	"context"
	"fmt"
	"log"

	"github.com/Desarso/toolguide/catalog"
	"github.com/Desarso/toolguide/common_tools"
	"github.com/Desarso/toolguide/intent"
	"github.com/Desarso/toolguide/models"
	"github.com/Desarso/toolguide/models/gemini"
	"github.com/Desarso/toolguide/replies"
	"github.com/Desarso/toolguide/sessions"
	"github.com/Desarso/toolguide/stores"
	"github.com/gin-gonic/gin"
)

// ConsensusTool is the catalog tool answered from web search.
const ConsensusTool = "Consensus"

// summaryTokens caps delegate summaries, which are asked for 3-4 sentences.
const summaryTokens = 512

// App is a fully wired assistant with its storage.
type App struct {
	Config    *Config
	Assistant *Assistant
	Catalog   *catalog.Store
	// Store is nil with the JSON cache backend.
	Store     stores.Store
	Refresher *catalog.Refresher
}

// Build validates cfg and constructs every component.
func Build(ctx context.Context, cfg *Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	model, err := gemini.New(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	model.Model = cfg.ChatModel
	model.EmbeddingModel = cfg.EmbeddingModel

	categories := catalog.DefaultCategories()
	if cfg.CategoriesPath != "" {
		if categories, err = catalog.LoadCategoriesFile(cfg.CategoriesPath); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
	}

	app := &App{Config: cfg}
	var cache stores.EmbeddingCache
	switch cfg.CacheBackend {
	case "sqlite":
		path := cfg.DatabaseDSN
		if path == "" {
			path = stores.DefaultSQLitePath
		}
		app.Store, err = stores.NewStore(stores.NewStoreConfig("sqlite", path).WithOption("log_level", "error"))
	case "postgres":
		app.Store, err = stores.NewStore(stores.NewStoreConfig("postgres", cfg.DatabaseDSN).WithOption("log_level", "error"))
	default:
		cache = stores.NewJSONFileCache(cfg.CachePath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.CacheBackend, err)
	}
	if app.Store != nil {
		cache = app.Store
	}

	policy := cfg.CallPolicy()
	embedder := models.GuardEmbedder(model, policy)
	completer := models.GuardCompleter(model.WithMaxOutputTokens(summaryTokens), policy)
	classifierModel := models.GuardCompleter(model.WithJSONSchema(gemini.IntentResultSchema()), policy)
	searcher := models.GuardSearcher(common_tools.NewBraveSearcher(cfg.BraveAPIKey), policy)
	if cfg.BraveAPIKey == "" {
		log.Printf("Warning: BRAVE_API_KEY is not set, %s questions will get an apology", ConsensusTool)
	}

	app.Catalog = catalog.NewStore(cfg.CatalogPath, cache, embedder)
	formatter := replies.NewFormatter(cfg.SiteURL)
	answerer := NewAnswerer(app.Catalog, formatter).
		WithDelegate(ConsensusTool, NewConsensusDelegate(searcher, completer))

	app.Assistant = NewAssistant(app.Catalog, embedder, intent.NewClassifier(classifierModel, categories), categories, answerer, formatter).
		WithHistoryLimit(cfg.HistoryLimit)
	if app.Store != nil {
		decisions, err := stores.NewGORMDecisionStore(app.Store.DB())
		if err != nil {
			return nil, err
		}
		app.Assistant.WithConversationStore(app.Store).WithDecisionStore(decisions)
	}

	if cfg.RefreshCron != "" {
		if app.Refresher, err = catalog.NewRefresher(app.Catalog, cfg.RefreshCron, cfg.CallTimeout*4); err != nil {
			return nil, err
		}
	}
	return app, nil
}

// Router returns a gin engine serving the chat, catalog and health endpoints.
func (a *App) Router() *gin.Engine {
	router := gin.Default()
	var conversations stores.ConversationStore
	if a.Store != nil {
		conversations = a.Store
	}
	sessions.RegisterRoutes(router, a.Assistant, a.Catalog, conversations)
	return router
}

// Warm loads the catalog once so missing embeddings are computed before serving.
func (a *App) Warm(ctx context.Context) (int, error) {
	tools, err := a.Catalog.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(tools), nil
}

// Close stops the refresher and releases the database.
func (a *App) Close() error {
	if a.Refresher != nil {
		a.Refresher.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
