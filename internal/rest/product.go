package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"myMarket/domain"
	"myMarket/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ProductService interface {
	GetAllProducts(ctx context.Context) ([]domain.ProductListing, error)
	GetProductByID(ctx context.Context, id uint64, viewerID uint) (*domain.ProductListing, error)
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uint64) error
}

type ProductHandler struct {
	productService ProductService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validator:      validator.New(),
		timeout:        timeout,
	}
}

type ProductRequest struct {
	ProductName string   `json:"product_name" validate:"required"`
	CategoryID  uint64   `json:"category_id" validate:"required"`
	Unit        string   `json:"unit" validate:"required"`
	NormalPrice float64  `json:"normal_price" validate:"required,gt=0"`
	Tags        []string `json:"tags" validate:"dive,required"`
	IsActive    *bool    `json:"is_active"`
	IsFeatured  bool     `json:"is_featured"`
	IsGreenTag  bool     `json:"is_green_tag"`
	Quantity    float64  `json:"quantity" validate:"gte=0"`
}

func (r ProductRequest) toProduct(id uint64) *domain.Product {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &domain.Product{
		ID:          id,
		ProductName: r.ProductName,
		CategoryID:  r.CategoryID,
		Unit:        r.Unit,
		NormalPrice: r.NormalPrice,
		Tags:        r.Tags,
		IsActive:    active,
		IsFeatured:  r.IsFeatured,
		IsGreenTag:  r.IsGreenTag,
		Quantity:    r.Quantity,
	}
}

func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	products, err := h.productService.GetAllProducts(ctx)
	if err != nil {
		logger.Error("Failed to find all Product", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get all products",
		"products": products,
	})
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	productID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	viewerID, _ := callerID(c)
	product, err := h.productService.GetProductByID(ctx, productID, viewerID)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully find product by id",
		"product": product,
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	newProduct, err := h.productService.CreateProduct(ctx, req.toProduct(0))
	if err != nil {
		return c.JSON(productWriteStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Product successfully created",
		"product": newProduct,
	})
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	productID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.productService.UpdateProduct(ctx, req.toProduct(productID))
	if err != nil {
		return c.JSON(productWriteStatus(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "successfully update product",
		"product": updated,
	})
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	productID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, productID); err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "product successfully deleted",
		"product_id": productID,
	})
}

func productWriteStatus(err error) int {
	if errors.Is(err, domain.ErrProductNotFound) {
		return http.StatusNotFound
	}
	switch err.Error() {
	case "product ID is required",
		"product name is required",
		"product category is required",
		"unit is required",
		"normal price must be greater than 0",
		"quantity cannot be negative":
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
