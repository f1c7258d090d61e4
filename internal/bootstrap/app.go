package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"paggo-backend/internal/config"
	"paggo-backend/internal/documents"
	"paggo-backend/internal/extract"
	"paggo-backend/internal/llm"
	"paggo-backend/internal/llm/openai"
	"paggo-backend/internal/shared/auth"
	"paggo-backend/internal/shared/server"
	"paggo-backend/internal/shared/storage/db"
	"paggo-backend/internal/shared/storage/object"
	localstore "paggo-backend/internal/shared/storage/object/local"
	"paggo-backend/internal/users"
)

// App holds shared dependencies built once at process start.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Tokens           *auth.Tokens
	Store            object.FileStore
	UsersRepo        users.Repo
	DocumentsRepo    documents.Repo
	UsersService     *users.Service
	DocumentsService *documents.Service
	UsersHandler     *users.Handler
	DocumentsHandler *documents.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := localstore.New(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	tokens, err := buildTokens(cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Tokens: tokens,
		Store:  store,
	}
	buildServices(app, llmClient)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:    cfg,
		Tokens:    tokens,
		Users:     app.UsersHandler,
		Documents: app.DocumentsHandler,
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

func buildTokens(cfg config.Config) (*auth.Tokens, error) {
	secret := strings.TrimSpace(cfg.JWTSecret)
	if secret == "" {
		if !isDevLike(cfg.Env) {
			return nil, fmt.Errorf("JWT_SECRET is required in %s", cfg.Env)
		}
		log.Printf("bootstrap: JWT_SECRET empty; using dev secret")
		secret = "dev-secret"
	}
	return auth.NewTokens(secret, cfg.JWTExpires)
}

func buildServices(app *App, llmClient llm.Client) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.DocumentsRepo = documents.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo, app.Tokens, app.Config.BcryptCost)
	app.UsersHandler = users.NewHandler(app.UsersService)

	extractor := extract.NewService(extract.NewTesseractEngine(app.Config.OCRLanguage))
	enricher := llm.NewEnricher(llmClient)

	app.DocumentsService = &documents.Service{
		Store:     app.Store,
		Extractor: extractor,
		Enricher:  enricher,
		Repo:      app.DocumentsRepo,
	}
	app.DocumentsHandler = documents.NewHandler(app.DocumentsService)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
