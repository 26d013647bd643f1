package main

import (
	"context"
	"fmt"

	"chapter-api/internal/config"
	"chapter-api/internal/domain/generation"
	"chapter-api/internal/domain/instruction"
	"chapter-api/internal/domain/settings"
	"chapter-api/internal/infrastructure/crontab"
	"chapter-api/internal/infrastructure/database"
	"chapter-api/internal/infrastructure/inference/gemini"
	"chapter-api/internal/infrastructure/inference/openrouter"
	"chapter-api/internal/infrastructure/logger"
	"chapter-api/internal/infrastructure/storage"
	"chapter-api/internal/interfaces/httpserver"
	"chapter-api/internal/interfaces/httpserver/handlers/generationhandler"
	"chapter-api/internal/interfaces/httpserver/handlers/instructionhandler"
	"chapter-api/internal/interfaces/httpserver/handlers/modelhandler"
	"chapter-api/internal/interfaces/httpserver/handlers/settingshandler"
	v1 "chapter-api/internal/interfaces/httpserver/routes/v1"
	"chapter-api/internal/utils/httpclients"
)

// CreateApplication hand-wires the dependency graph. The graph is small
// enough that constructor calls in order read better than a DI framework.
func CreateApplication(cfg *config.Config) (*Application, error) {
	log := logger.GetLogger()

	store, err := newStorageAdapter(cfg)
	if err != nil {
		return nil, fmt.Errorf("storage adapter: %w", err)
	}

	geminiBackend := gemini.NewClient(
		httpclients.NewClient("GeminiClient", cfg.HTTPTimeout),
		cfg.GeminiBaseURL,
	)
	openRouterBackend := openrouter.NewClient(
		httpclients.NewClient("OpenRouterClient", cfg.HTTPTimeout),
		openrouter.Options{
			BaseURL: cfg.OpenRouterBaseURL,
			Referer: cfg.AppReferer,
			Title:   cfg.AppTitle,
		},
	)

	generationService := generation.NewService(geminiBackend, openRouterBackend)
	sessionStore := generation.NewSessionStore(store)
	instructionService := instruction.NewService(store)
	settingsService := settings.NewService(store)

	v1Route := v1.NewV1Route(
		generationhandler.NewGenerationHandler(generationService, sessionStore, log),
		generationhandler.NewSessionHandler(sessionStore, log),
		modelhandler.NewModelHandler(generationService, log),
		instructionhandler.NewInstructionHandler(instructionService, log),
		settingshandler.NewSettingsHandler(settingsService, log),
	)

	return &Application{
		httpServer: httpserver.NewHttpServer(v1Route, log, cfg),
		crontab:    crontab.NewCrontab(openRouterBackend),
		metrics:    newMetricsServer(cfg),
	}, nil
}

func newStorageAdapter(cfg *config.Config) (storage.Adapter, error) {
	switch cfg.StorageBackend {
	case config.StorageRedis:
		return storage.NewRedisAdapter(context.Background(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case config.StoragePostgres:
		db, err := database.NewDB(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return storage.NewPostgresAdapter(db, cfg.AutoMigrate)
	default:
		return storage.NewMemoryAdapter(), nil
	}
}
