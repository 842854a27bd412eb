package postgres

import (
	"context"
	"errors"
	"fmt"

	"myMarket/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint64) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var product domain.Product
	err := r.DB.WithContext(ctx).Preload("Category").First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return &product, nil
}

// FindByIDs loads products regardless of their active flag. Missing ids are
// silently absent from the result.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	var products []domain.Product
	err := r.DB.WithContext(ctx).Preload("Category").Where("id IN ?", ids).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

// FindActive scans the active catalog, cheapest first with id as tie-break,
// or in id order when the filter sets OrderByID.
func (r *ProductRepository) FindActive(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if filter.IDs != nil && len(filter.IDs) == 0 {
		return []domain.Product{}, nil
	}

	var products []domain.Product
	err := activeProducts(r.DB.WithContext(ctx), filter).Preload("Category").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find active products: %w", err)
	}

	return products, nil
}

// FindIDsByCategory lists every product in the category, inactive ones
// included.
func (r *ProductRepository) FindIDsByCategory(ctx context.Context, categoryID uint64) ([]uint64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var ids []uint64
	if err := productsInCategory(r.DB.WithContext(ctx), categoryID).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to find category products: %w", err)
	}

	return ids, nil
}

func productsInCategory(db *gorm.DB, categoryID uint64) *gorm.DB {
	return db.Model(&domain.Product{}).Where("category_id = ?", categoryID).Order("id ASC")
}

func activeProducts(db *gorm.DB, filter domain.ProductFilter) *gorm.DB {
	q := db.Model(&domain.Product{}).Where("is_active = ?", true)
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if len(filter.IDs) > 0 {
		q = q.Where("id IN ?", filter.IDs)
	}
	if len(filter.ExcludeIDs) > 0 {
		q = q.Where("id NOT IN ?", filter.ExcludeIDs)
	}
	if !filter.OrderByID {
		q = q.Order("normal_price ASC")
	}
	q = q.Order("id ASC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	return q
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	updateData := map[string]interface{}{
		"product_name": product.ProductName,
		"category_id":  product.CategoryID,
		"unit":         product.Unit,
		"normal_price": product.NormalPrice,
		"tags":         product.Tags,
		"is_active":    product.IsActive,
		"is_featured":  product.IsFeatured,
		"is_green_tag": product.IsGreenTag,
		"quantity":     product.Quantity,
	}

	result := r.DB.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", product.ID).Updates(updateData)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}
