// Package category manages the catalog categories. A category name feeds the
// category segment of every product vector in it, so renames and deletes
// re-encode the cached vectors of the affected products.
package category

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"myMarket/business/vector"
	"myMarket/domain"
	"myMarket/pkg/logger"
	"myMarket/pkg/trace"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id uint64) (*domain.Category, error)
	// FindByName matches case-insensitively, the same way product vectors
	// resolve category names.
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uint64) error
}

// ProductLookup lists every product filed under a category, active or not.
type ProductLookup interface {
	FindIDsByCategory(ctx context.Context, categoryID uint64) ([]uint64, error)
}

type ProductVectorUpdater interface {
	UpdateProductVector(ctx context.Context, productID uint64) error
}

type CategoryService struct {
	categoryRepo CategoryRepository
	products     ProductLookup
	vectors      ProductVectorUpdater
}

func NewCategoryService(categoryRepo CategoryRepository, products ProductLookup, vectors ProductVectorUpdater) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		products:     products,
		vectors:      vectors,
	}
}

func (s *CategoryService) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}

	return categories, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint64) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *CategoryService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	name, err := s.checkName(ctx, 0, name)
	if err != nil {
		return nil, err
	}

	category := &domain.Category{ProductCategory: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	logger.Info("Category created",
		"category_id", category.CategoryID,
		"name", category.ProductCategory,
		"vector_slot", vectorSlot(name),
	)
	return category, nil
}

// RenameCategory changes the category name and re-encodes the vectors of
// its products. Vector refresh is best effort.
func (s *CategoryService) RenameCategory(ctx context.Context, id uint64, name string) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	current, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err = s.checkName(ctx, id, name)
	if err != nil {
		return nil, err
	}
	if name == current.ProductCategory {
		return current, nil
	}

	current.ProductCategory = name
	if err := s.categoryRepo.Update(ctx, current); err != nil {
		return nil, fmt.Errorf("failed to rename category: %w", err)
	}

	s.refreshProducts(ctx, id)
	return current, nil
}

// DeleteCategory removes the category. Its products keep the dangling id and
// encode an all-zero category segment afterwards.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.refreshProducts(ctx, id)
	return nil
}

// checkName trims the name and rejects one another category already uses.
func (s *CategoryService) checkName(ctx context.Context, selfID uint64, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrCategoryNameEmpty
	}

	existing, err := s.categoryRepo.FindByName(ctx, name)
	switch {
	case errors.Is(err, domain.ErrCategoryNotFound):
		return name, nil
	case err != nil:
		return "", fmt.Errorf("failed to check category name: %w", err)
	case existing.CategoryID != selfID:
		return "", domain.ErrCategoryExists
	}
	return name, nil
}

func (s *CategoryService) refreshProducts(ctx context.Context, categoryID uint64) {
	ids, err := s.products.FindIDsByCategory(ctx, categoryID)
	if err != nil {
		logger.Warn("Failed to list category products for vector refresh",
			"category_id", categoryID,
			"trace_id", trace.TraceIDFromContext(ctx),
			"error", err,
		)
		return
	}

	refreshed := 0
	for _, id := range ids {
		if err := s.vectors.UpdateProductVector(ctx, id); err != nil {
			logger.Warn("Failed to refresh product vector",
				"category_id", categoryID,
				"product_id", id,
				"trace_id", trace.TraceIDFromContext(ctx),
				"error", err,
			)
			continue
		}
		refreshed++
	}

	logger.Debug("Category product vectors refreshed",
		"category_id", categoryID,
		"products", len(ids),
		"refreshed", refreshed,
	)
}

// vectorSlot names the vocabulary slot a category name encodes to.
func vectorSlot(name string) string {
	c, ok := vector.ParseCategory(name)
	if !ok {
		return "none"
	}
	return c.String()
}
