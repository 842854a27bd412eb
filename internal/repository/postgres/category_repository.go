package postgres

import (
	"context"
	"errors"
	"fmt"

	"myMarket/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		DB: db,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint64) (*domain.Category, error) {
	return r.first(ctx, r.DB.WithContext(ctx).Where("category_id = ?", id))
}

// FindByName compares lower-cased names, matching how product vectors
// resolve a category into the vocabulary.
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	return r.first(ctx, categoryByName(r.DB.WithContext(ctx), name))
}

func (r *CategoryRepository) first(ctx context.Context, q *gorm.DB) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var category domain.Category
	if err := q.First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	return &category, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var categories []domain.Category
	if err := r.DB.WithContext(ctx).Order("category_id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}

	return categories, nil
}

// Update writes the new name and reloads the row in the same statement.
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(category).
		Clauses(clause.Returning{}).
		Update("product_category", category.ProductCategory)
	if result.Error != nil {
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Category{}, "category_id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

func categoryByName(db *gorm.DB, name string) *gorm.DB {
	return db.Model(&domain.Category{}).
		Where("LOWER(product_category) = LOWER(?)", name).
		Order("category_id ASC")
}
