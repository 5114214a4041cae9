package repository

import (
	"context"
	"fmt"
	"trivia-api/internal/domain"
	"trivia-api/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

type CategoryDatabaseAdapter struct {
	db *sqlx.DB
}

// NewCategoryDatabaseAdapter creates a new instance of CategoryDatabaseAdapter
func NewCategoryDatabaseAdapter(db *sqlx.DB) domain.CategoryRepository {
	return &CategoryDatabaseAdapter{db: db}
}

// ListCategories returns all categories ordered by id
func (r *CategoryDatabaseAdapter) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var categories []models.Category
	query := `SELECT id, type FROM categories ORDER BY id`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	domainCategories := make([]*domain.Category, len(categories))
	for i := range categories {
		domainCategories[i] = toDomainCategory(&categories[i])
	}
	return domainCategories, nil
}

// CreateCategory persists a new category
func (r *CategoryDatabaseAdapter) CreateCategory(ctx context.Context, category *domain.Category) error {
	if category == nil {
		return fmt.Errorf("cannot save nil category")
	}
	if err := category.Validate(); err != nil {
		return err
	}

	var id int64
	query := `INSERT INTO categories (type) VALUES ($1) RETURNING id`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &id, query, category.Type); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}
	category.ID = id
	return nil
}

func toDomainCategory(category *models.Category) *domain.Category {
	return &domain.Category{
		ID:   category.ID,
		Type: category.Type,
	}
}
