package postgres

import (
	"context"
	"errors"
	"fmt"

	"myMarket/domain"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

// Create inserts the order and its items in one transaction.
func (r *OrdersRepository) Create(ctx context.Context, order *domain.Orders) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *OrdersRepository) FindByID(ctx context.Context, id uint64) (*domain.Orders, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var order domain.Orders
	err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	return &order, nil
}

func (r *OrdersRepository) FindByUser(ctx context.Context, userID uint) ([]domain.Orders, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var orders []domain.Orders
	err := r.DB.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	return orders, nil
}

// FindContainingProduct returns orders in one of statuses that have at least
// one line for productID, with all their lines loaded.
func (r *OrdersRepository) FindContainingProduct(ctx context.Context, productID uint64, statuses []string) ([]domain.Orders, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var orders []domain.Orders
	err := containingProduct(r.DB.WithContext(ctx), productID, statuses).Preload("Items").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders containing product: %w", err)
	}

	return orders, nil
}

func containingProduct(db *gorm.DB, productID uint64, statuses []string) *gorm.DB {
	lines := db.Session(&gorm.Session{NewDB: true}).
		Model(&domain.OrderItem{}).
		Select("order_id").
		Where("product_id = ?", productID)

	return db.Model(&domain.Orders{}).
		Where("order_status IN ?", statuses).
		Where("id IN (?)", lines).
		Order("id ASC")
}

func (r *OrdersRepository) UpdateStatus(ctx context.Context, id uint64, status string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Orders{}).Where("id = ?", id).Update("order_status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}
