package bootstrap

import (
	"time"

	"pdf-extractor-be/internal/config"
	"pdf-extractor-be/internal/controller"
	"pdf-extractor-be/internal/pkg/logger"
	"pdf-extractor-be/internal/repository/memory"
	"pdf-extractor-be/internal/service"
	"pdf-extractor-be/pkg/extraction"
	"pdf-extractor-be/pkg/extraction/gemini"
)

type Container struct {
	// Controllers
	SessionController    controller.ISessionController
	ExtractionController controller.IExtractionController

	// Exposed for shutdown flushing
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.App.SessionTTLMinutes) * time.Minute)

	// 2. Extraction Provider
	var extractor extraction.Extractor = newGeminiClient(cfg)

	// 3. Services
	sessionService := service.NewSessionService(sessionRepo, sysLogger)
	extractionService := service.NewExtractionService(
		sessionRepo,
		extractor,
		sysLogger,
		cfg.Extraction.MaxRetries,
	)

	// 4. Controllers
	return &Container{
		SessionController:    controller.NewSessionController(sessionService),
		ExtractionController: controller.NewExtractionController(sessionService, extractionService),
		Logger:               sysLogger,
	}
}

func newGeminiClient(cfg *config.Config) *gemini.Client {
	client := gemini.NewClient(
		cfg.Keys.GoogleGemini,
		time.Duration(cfg.Extraction.TimeoutSeconds)*time.Second,
	)
	client.Model = cfg.Extraction.Model
	return client
}
