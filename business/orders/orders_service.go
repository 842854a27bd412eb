package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"myMarket/domain"
	"myMarket/pkg/logger"
	"myMarket/pkg/trace"
)

type OrdersRepository interface {
	Create(ctx context.Context, order *domain.Orders) error
	FindByID(ctx context.Context, id uint64) (*domain.Orders, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Orders, error)
	UpdateStatus(ctx context.Context, id uint64, status string) error
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
}

type PriceResolver interface {
	ResolveEffectivePrice(ctx context.Context, product domain.Product) (float64, bool, error)
}

type ActivityTracker interface {
	TrackActivity(ctx context.Context, userID uint, productID uint64, activityType domain.ActivityType) error
}

type ItemRequest struct {
	ProductID uint64 `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

var ErrInvalidQuantity = errors.New("quantity must be greater than 0")

type OrdersService struct {
	orderRepo    OrdersRepository
	productsRepo ProductRepository
	prices       PriceResolver
	activities   ActivityTracker
}

func NewOrdersService(orderRepo OrdersRepository, productsRepo ProductRepository, prices PriceResolver, activities ActivityTracker) *OrdersService {
	return &OrdersService{
		orderRepo:    orderRepo,
		productsRepo: productsRepo,
		prices:       prices,
		activities:   activities,
	}
}

// CreateOrder prices every line at the product's effective campaign price and
// stores the order as pending.
func (s *OrdersService) CreateOrder(ctx context.Context, userID uint, items []ItemRequest, paymentMethod string) (*domain.Orders, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	order := &domain.Orders{
		UserID:        userID,
		OrderStatus:   domain.OrderStatusPending,
		PaymentMethod: paymentMethod,
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		product, err := s.productsRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsActive {
			return nil, fmt.Errorf("product %d: %w", product.ID, domain.ErrProductUnavailable)
		}

		price := product.NormalPrice
		discounted, ok, err := s.prices.ResolveEffectivePrice(ctx, *product)
		if err != nil {
			return nil, err
		}
		if ok {
			price = discounted
		}

		subtotal := price * float64(item.Quantity)
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			PriceEach: price,
			Subtotal:  subtotal,
		})
		order.Total += subtotal
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	logger.Info("order created", "order_id", order.ID, "user_id", userID, "items", len(order.Items))
	return order, nil
}

func (s *OrdersService) GetOrdersByUser(ctx context.Context, userID uint) ([]domain.Orders, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	return s.orderRepo.FindByUser(ctx, userID)
}

func (s *OrdersService) GetOrder(ctx context.Context, orderID uint64) (*domain.Orders, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	return s.orderRepo.FindByID(ctx, orderID)
}

// UpdateOrderStatus moves an order to status. The first transition into
// completed records a purchase for every line of the order.
func (s *OrdersService) UpdateOrderStatus(ctx context.Context, orderID uint64, status string) (*domain.Orders, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	status = strings.ToLower(status)
	if !domain.IsValidOrderStatus(status) {
		return nil, domain.ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	previous := order.OrderStatus

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.OrderStatus = status

	if status == domain.OrderStatusCompleted && previous != domain.OrderStatusCompleted {
		s.trackPurchases(ctx, order)
	}

	return order, nil
}

func (s *OrdersService) trackPurchases(ctx context.Context, order *domain.Orders) {
	for _, item := range order.Items {
		if err := s.activities.TrackActivity(ctx, order.UserID, item.ProductID, domain.ActivityPurchase); err != nil {
			logger.Warn("Failed to track purchase",
				"order_id", order.ID,
				"product_id", item.ProductID,
				"trace_id", trace.TraceIDFromContext(ctx),
				"error", err,
			)
		}
	}
}
