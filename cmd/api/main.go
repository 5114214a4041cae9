// @title Trivia API
// @version 1.0
// @description Question management and quiz play for the trivia application.
// @license.name MIT
// @host localhost:5000
// @BasePath /
// @schemes http
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	"trivia-api/internal/adapter"
	"trivia-api/internal/cache"
	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/domain"
	"trivia-api/internal/handler"
	"trivia-api/internal/logger"
	"trivia-api/internal/middleware"
	"trivia-api/internal/repository"
	"trivia-api/internal/router"
	"trivia-api/internal/service"
	"trivia-api/internal/validation"

	_ "trivia-api/cmd/api/docs"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN(), cfg.DB)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Redis is optional; categories are read straight from the database without it
	var categoryCache domain.Cache
	if cfg.CacheEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		cancel()
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		categoryCache = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Category cache enabled", zap.String("redis", cfg.Redis.Address), zap.Duration("ttl", cfg.Cache.CategoryTTL))
	}

	// Initialize repositories
	categoryRepository := repository.NewCategoryDatabaseAdapter(db)
	questionRepository := repository.NewQuestionDatabaseAdapter(db)

	// Initialize services
	categoryService := service.NewCategoryService(categoryRepository, categoryCache, cfg.Cache.CategoryTTL)
	questionService := service.NewQuestionService(questionRepository, categoryService)
	quizService := service.NewQuizService(questionRepository)

	// Initialize handlers
	validator := validation.NewValidator()
	checks := map[string]handler.PingFunc{"database": db.PingContext}
	if categoryCache != nil {
		checks["cache"] = categoryCache.Ping
	}

	app := router.New(router.Config{
		CORS:           middleware.DefaultCORSConfig(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		BodyLimit:      cfg.Server.BodyLimit,
		MetricsEnabled: cfg.Metrics.Enabled,
		SwaggerEnabled: cfg.Swagger.Enabled,
	}, router.Handlers{
		Category:  handler.NewCategoryHandler(categoryService, questionService),
		Question:  handler.NewQuestionHandler(questionService, validator),
		Quiz:      handler.NewQuizHandler(quizService, validator),
		Health:    handler.NewHealthHandler(checks),
		Validator: validator,
	})

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
