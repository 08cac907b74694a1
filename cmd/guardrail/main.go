package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	appkeyword "github.com/mindhaven/guardrail/pkg/app/keyword"
	"github.com/mindhaven/guardrail/pkg/cache"
	"github.com/mindhaven/guardrail/pkg/common"
	"github.com/mindhaven/guardrail/pkg/config"
	"github.com/mindhaven/guardrail/pkg/guardrail"
	handlers "github.com/mindhaven/guardrail/pkg/handlers/http"
	"github.com/mindhaven/guardrail/pkg/infra/database"
	"github.com/mindhaven/guardrail/pkg/infra/jwt"
	infraLogger "github.com/mindhaven/guardrail/pkg/infra/logger"
	_ "github.com/mindhaven/guardrail/pkg/infra/migrations"
	"github.com/mindhaven/guardrail/pkg/infra/providers/factory"
	"github.com/mindhaven/guardrail/pkg/infra/repository"
	"github.com/mindhaven/guardrail/pkg/middleware"
	"github.com/mindhaven/guardrail/pkg/moderation"
	"github.com/mindhaven/guardrail/pkg/server"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	if err := config.Load("./config"); err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close()

	cacheInstance, err := cache.NewCache(common.CacheConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
	})
	if err != nil {
		logger.Fatalf("failed to initialize cache: %v", err)
	}
	defer cacheInstance.Close()

	// repository
	keywordRepository := repository.NewKeywordRepository(db.DB, cacheInstance)
	guardrailLogRepository := repository.NewGuardrailLogRepository(db.DB, cfg.Guardrail.LogRawText)
	alertRepository := repository.NewAlertRepository(db.DB)

	// moderation provider
	providerLocator := factory.NewProviderLocator()
	providerClient, err := providerLocator.Get(cfg.Moderation.Provider)
	if err != nil {
		logger.Fatalf("failed to resolve moderation provider: %v", err)
	}
	moderator, err := moderation.NewAdapter(providerClient, &cfg.Moderation, logger)
	if err != nil {
		logger.Fatalf("failed to initialize moderation adapter: %v", err)
	}

	// guardrail pipeline
	keywordFinder := appkeyword.NewFinder(keywordRepository, cacheInstance, logger, cfg.Guardrail.KeywordCacheTTL)
	keywordDetector := guardrail.NewKeywordDetector(keywordFinder)
	watchlistDetector := guardrail.NewWatchlistDetector()
	alerter := guardrail.NewAlerter(alertRepository, logger)
	checker := guardrail.NewChecker(
		keywordDetector,
		watchlistDetector,
		moderator,
		guardrailLogRepository,
		alerter,
		logger,
	)

	jwtManager := jwt.NewJwtManager(&cfg.Server)

	middlewareTransport := middleware.Transport{
		AdminAuthMiddleware: middleware.NewAdminAuthMiddleware(logger, jwtManager),
	}

	handlerTransport := handlers.HandlerTransport{
		CheckMessageHandler:  handlers.NewCheckMessageHandler(logger, checker),
		CreateKeywordHandler: handlers.NewCreateKeywordHandler(logger, keywordRepository),
		ListKeywordsHandler:  handlers.NewListKeywordsHandler(logger, keywordRepository),
		UpdateKeywordHandler: handlers.NewUpdateKeywordHandler(logger, keywordRepository),
		ListLogsHandler:      handlers.NewListLogsHandler(logger, guardrailLogRepository),
		ListAlertsHandler:    handlers.NewListAlertsHandler(logger, alertRepository),
		ResolveAlertHandler:  handlers.NewResolveAlertHandler(logger, alertRepository),
		GetVersionHandler:    handlers.NewGetVersionHandler(logger),
	}

	srv := server.NewGuardrailServer(server.GuardrailServerDI{
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("error shutting down server")
		os.Exit(1)
	}
	logger.Info("server gracefully stopped")
}
