package product

import (
	"context"
	"errors"
	"fmt"

	"myMarket/domain"
	"myMarket/pkg/logger"
	"myMarket/pkg/trace"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (*domain.Product, error)
	FindActive(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error
}

type ListingAnnotator interface {
	AnnotateListings(ctx context.Context, products []domain.Product) ([]domain.ProductListing, error)
}

type ActivityTracker interface {
	TrackActivity(ctx context.Context, userID uint, productID uint64, activityType domain.ActivityType) error
}

type ProductVectorUpdater interface {
	UpdateProductVector(ctx context.Context, productID uint64) error
}

type productService struct {
	productRepo ProductRepository
	discounts   ListingAnnotator
	activities  ActivityTracker
	vectors     ProductVectorUpdater
}

func NewProductService(
	productRepo ProductRepository,
	discounts ListingAnnotator,
	activities ActivityTracker,
	vectors ProductVectorUpdater,
) *productService {
	return &productService{
		productRepo: productRepo,
		discounts:   discounts,
		activities:  activities,
		vectors:     vectors,
	}
}

// GetAllProducts lists the active catalog with campaign prices applied.
func (s *productService) GetAllProducts(ctx context.Context) ([]domain.ProductListing, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindActive(ctx, domain.ProductFilter{})
	if err != nil {
		logger.Error("Failed to find all product", "error", err)
		return nil, err
	}

	return s.discounts.AnnotateListings(ctx, products)
}

// GetProductByID returns the annotated product. A non-zero viewerID records a
// view for that user; tracking failures only get logged.
func (s *productService) GetProductByID(ctx context.Context, id uint64, viewerID uint) (*domain.ProductListing, error) {
	if id == 0 {
		logger.Error("invalid product id")
		return nil, errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product by id", "product_id", id, "error", err)
		return nil, err
	}

	listings, err := s.discounts.AnnotateListings(ctx, []domain.Product{*product})
	if err != nil {
		return nil, err
	}

	if viewerID != 0 {
		if err := s.activities.TrackActivity(ctx, viewerID, id, domain.ActivityView); err != nil {
			logger.Warn("Failed to track product view",
				"user_id", viewerID,
				"product_id", id,
				"trace_id", trace.TraceIDFromContext(ctx),
				"error", err,
			)
		}
	}

	return &listings[0], nil
}

func validate(product *domain.Product) error {
	if product.ProductName == "" {
		return errors.New("product name is required")
	}
	if product.CategoryID == 0 {
		return errors.New("product category is required")
	}
	if product.Unit == "" {
		return errors.New("unit is required")
	}
	if product.NormalPrice <= 0 {
		return errors.New("normal price must be greater than 0")
	}
	if product.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	return nil
}

func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := validate(product); err != nil {
		logger.Error("Invalid product data", "error", err)
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		logger.Error("failed to create new product", "error", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.refreshVector(ctx, product.ID)
	logger.Info("product created successfully", "product_id", product.ID)

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if product.ID == 0 {
		logger.Error("Invalid product data: ID is required")
		return nil, errors.New("product ID is required")
	}

	if err := validate(product); err != nil {
		logger.Error("Invalid product data", "error", err)
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		logger.Error("failed to update product", "product_id", product.ID, "error", err)
		return nil, err
	}

	updated, err := s.productRepo.FindByID(ctx, product.ID)
	if err != nil {
		logger.Error("failed to fetch updated product", "error", err)
		return nil, fmt.Errorf("failed to fetch updated product: %w", err)
	}

	s.refreshVector(ctx, product.ID)
	logger.Info("product updated success", "product_id", product.ID)

	return updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uint64) error {
	if id == 0 {
		logger.Error("Invalid product id when deleting product")
		return errors.New("invalid product id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting product")
		return fmt.Errorf("context error: %w", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete product", "product_id", id, "error", err)
		return err
	}

	logger.Info("product deleted success", "product_id", id)

	return nil
}

func (s *productService) refreshVector(ctx context.Context, id uint64) {
	if err := s.vectors.UpdateProductVector(ctx, id); err != nil {
		logger.Warn("Failed to refresh product vector",
			"product_id", id,
			"trace_id", trace.TraceIDFromContext(ctx),
			"error", err,
		)
	}
}
