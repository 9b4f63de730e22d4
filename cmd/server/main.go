package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/learnhub/quiz-service/internal/config"
	"github.com/learnhub/quiz-service/internal/generator"
	"github.com/learnhub/quiz-service/internal/handlers"
	"github.com/learnhub/quiz-service/internal/repositories/postgres"
	"github.com/learnhub/quiz-service/internal/services"
	"github.com/learnhub/quiz-service/internal/utils"
	"github.com/learnhub/quiz-service/internal/validator"
	"github.com/learnhub/quiz-service/pkg"

	cachepkg "github.com/learnhub/quiz-service/internal/cache"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogLogger := logger.(*utils.SlogLogger).GetSlogLogger()

	handlers.InitAuth(cfg.Casdoor)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	publisher, err := cfg.Events.CreateEventPublisher(slogLogger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	contentGenerator, err := generator.NewOpenAIGenerator(slogLogger)
	if err != nil {
		logger.Error("Failed to create content generator", "error", err)
		os.Exit(1)
	}

	repo := postgres.NewRepository(db)
	cacheService := cachepkg.NewRedisCache(redisClient, slogLogger)

	serviceManager := services.NewServiceManager(
		repo,
		contentGenerator,
		cacheService,
		publisher,
		slogLogger,
		validator.New(),
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(gin.Recovery())

	handlerManager := handlers.NewHandlerManager(serviceManager, logger)
	handlerManager.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting quiz service", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down quiz service")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}
