package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"propdocs-backend/internal/documents"
	"propdocs-backend/internal/llm"
	openai "propdocs-backend/internal/llm/openai"
	"propdocs-backend/internal/maintchat"
	"propdocs-backend/internal/properties"
	"propdocs-backend/internal/qahistory"
	"propdocs-backend/internal/shared/config"
	"propdocs-backend/internal/shared/server"
	"propdocs-backend/internal/shared/storage/db"
	"propdocs-backend/internal/shared/storage/object"
	localstore "propdocs-backend/internal/shared/storage/object/local"
	s3store "propdocs-backend/internal/shared/storage/object/s3"
)

// App holds the wired dependency graph. Gateways are constructed once here
// and injected; none of them hold mutable state beyond their configuration.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Store           object.ObjectStore
	LLM             llm.Client
	Analyzer        *llm.Analyzer
	DocumentsRepo   documents.Repo
	PropertiesRepo  properties.Repo
	HistoryRepo     qahistory.Repo
	DocumentsSvc    *documents.Service
	ChatSvc         *maintchat.Service
	DocumentHandler *documents.Handler
	PropertyHandler *properties.Handler
	ChatHandler     *maintchat.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		DocumentHandler: app.DocumentHandler,
		PropertyHandler: app.PropertyHandler,
		ChatHandler:     app.ChatHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) error {
	var docRepo documents.Repo
	var propRepo properties.Repo
	var historyRepo qahistory.Repo

	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		propRepo = &properties.PGRepo{DB: app.DB}
		historyRepo = &qahistory.PGRepo{DB: app.DB}
	} else {
		propMem := properties.NewMemoryRepo()
		docMem := documents.NewMemoryRepo()
		docMem.ResolveProperty = func(ctx context.Context, userId, propertyID string) (*documents.PropertyRef, bool) {
			p, err := propMem.GetByID(ctx, userId, propertyID)
			if err != nil {
				return nil, false
			}
			return &documents.PropertyRef{ID: p.ID, Name: p.Name, Address: p.Address}, true
		}
		docRepo = docMem
		propRepo = propMem
		historyRepo = qahistory.NewMemoryRepo()
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.LLMProvider == "openai" && strings.TrimSpace(app.Config.LLMAPIKey) != "" {
		client, err := openai.NewClient(app.Config.LLMAPIKey, app.Config.LLMModel, app.Config.LLMBaseURL)
		if err != nil {
			return err
		}
		llmClient = client
	}
	analyzer := llm.NewAnalyzer(llmClient)

	docSvc := &documents.Service{
		Repo:     docRepo,
		Store:    app.Store,
		History:  historyRepo,
		Analyzer: analyzer,
	}
	chatSvc := maintchat.NewService(analyzer)

	app.LLM = llmClient
	app.Analyzer = analyzer
	app.DocumentsRepo = docRepo
	app.PropertiesRepo = propRepo
	app.HistoryRepo = historyRepo
	app.DocumentsSvc = docSvc
	app.ChatSvc = chatSvc
	app.DocumentHandler = documents.NewHandler(docSvc)
	app.PropertyHandler = properties.NewHandler(propRepo)
	app.ChatHandler = maintchat.NewHandler(chatSvc)

	return nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
