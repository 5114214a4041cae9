package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"
	"trivia-api/cmd/seed/internal/seedmodels"
	"trivia-api/internal/adapter"
	"trivia-api/internal/cache"
	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/domain"
	"trivia-api/internal/logger"
	"trivia-api/internal/repository"
	"trivia-api/internal/service"

	"go.uber.org/zap"
)

const defaultSeedFilePath = "configs/seed_data/trivia.json"

func firstN(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

func main() {
	seedFilePath := flag.String("file", defaultSeedFilePath, "path to the JSON seed file")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		// logger is not initialized yet
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	log.Info("Starting trivia data seeding process...")
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN(), cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL database", zap.Error(err))
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatal("Failed to create tables", zap.Error(err))
	}

	log.Info("Loading seed data from file", zap.String("path", *seedFilePath))
	byteValue, err := os.ReadFile(*seedFilePath)
	if err != nil {
		log.Fatal("Failed to read seed file", zap.String("path", *seedFilePath), zap.Error(err))
	}

	var seedCategories []seedmodels.SeedCategory
	if err := json.Unmarshal(byteValue, &seedCategories); err != nil {
		log.Fatal("Failed to unmarshal seed data", zap.Error(err))
	}
	log.Info("Successfully unmarshalled seed data", zap.Int("categories_loaded", len(seedCategories)))

	categoryRepo := repository.NewCategoryDatabaseAdapter(db)
	questionRepo := repository.NewQuestionDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// all or nothing
	err = txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, sc := range seedCategories {
			if err := seedCategory(txCtx, categoryRepo, questionRepo, log, sc); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal("Seeding failed, transaction rolled back", zap.Error(err))
	}
	log.Info("Trivia data seeding process completed.")

	if cfg.CacheEnabled() {
		invalidateCategoryCache(ctx, cfg.Redis, log)
	}
}

// invalidateCategoryCache makes the API pick up the seeded categories before
// the cached list expires.
func invalidateCategoryCache(ctx context.Context, redisCfg config.RedisConfig, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := cache.NewRedisClient(ctx, redisCfg)
	if err != nil {
		log.Warn("Skipping category cache invalidation", zap.Error(err))
		return
	}
	defer client.Close()

	if err := service.InvalidateCategoryCache(ctx, adapter.NewRedisCacheAdapter(client)); err != nil {
		log.Warn("Failed to invalidate category cache", zap.Error(err))
		return
	}
	log.Info("Category cache invalidated")
}

func seedCategory(
	ctx context.Context,
	categoryRepo domain.CategoryRepository,
	questionRepo domain.QuestionRepository,
	log *zap.Logger,
	seedCat seedmodels.SeedCategory,
) error {
	category := domain.NewCategory(seedCat.Type)
	if err := categoryRepo.CreateCategory(ctx, category); err != nil {
		return fmt.Errorf("failed to save category %s: %w", seedCat.Type, err)
	}
	log.Info("Created category.", zap.Int64("id", category.ID), zap.String("type", category.Type))

	for _, sq := range seedCat.Questions {
		question := domain.NewQuestion(sq.Question, sq.Answer, category.ID, sq.Difficulty)
		if err := questionRepo.CreateQuestion(ctx, question); err != nil {
			return fmt.Errorf("failed to save question '%s': %w", firstN(sq.Question, 50), err)
		}
		log.Debug("Created question.", zap.Int64("id", question.ID), zap.String("question_preview", firstN(sq.Question, 20)))
	}
	return nil
}
