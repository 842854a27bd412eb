package rest

import (
	"context"
	"net/http"
	"time"

	"myMarket/domain"
	"myMarket/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	CategoryHandler struct {
		validate *validator.Validate
		service  CategoryService
		timeout  time.Duration
	}

	CategoryService interface {
		GetAllCategories(ctx context.Context) ([]domain.Category, error)
		GetCategory(ctx context.Context, id uint64) (*domain.Category, error)
		CreateCategory(ctx context.Context, name string) (*domain.Category, error)
		RenameCategory(ctx context.Context, id uint64, name string) (*domain.Category, error)
		DeleteCategory(ctx context.Context, id uint64) error
	}

	CategoryRequest struct {
		Name string `json:"product_category" validate:"required,max=100"`
	}
)

func NewCategoryHandler(service CategoryService, timeout time.Duration) *CategoryHandler {
	return &CategoryHandler{
		validate: validator.New(),
		service:  service,
		timeout:  timeout,
	}
}

func (h *CategoryHandler) bind(c echo.Context) (CategoryRequest, error) {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return req, err
	}
	return req, h.validate.Struct(&req)
}

func (h *CategoryHandler) GetAllCategories(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	categories, err := h.service.GetAllCategories(ctx)
	if err != nil {
		logger.Error("Failed to list categories", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(categories))
}

func (h *CategoryHandler) GetCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	category, err := h.service.GetCategory(ctx, id)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(category))
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	req, err := h.bind(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	category, err := h.service.CreateCategory(ctx, req.Name)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(category))
}

// RenameCategory also re-encodes the cached vectors of the category's products.
func (h *CategoryHandler) RenameCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	req, err := h.bind(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	category, err := h.service.RenameCategory(ctx, id, req.Name)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(category))
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.service.DeleteCategory(ctx, id); err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.NoContent(http.StatusNoContent)
}
