package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"myMarket/business/discount"
	"myMarket/domain"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	CampaignHandler struct {
		validate *validator.Validate
		service  CampaignService
		timeout  time.Duration
	}

	CampaignService interface {
		GetAllCampaigns(ctx context.Context) ([]domain.Campaign, error)
		CreateCampaign(ctx context.Context, campaign domain.Campaign) (*domain.Campaign, error)
	}

	CreateCampaignRequest struct {
		Name          string    `json:"name" validate:"required"`
		IsActive      bool      `json:"is_active"`
		StartDate     time.Time `json:"start_date" validate:"required"`
		EndDate       time.Time `json:"end_date" validate:"required"`
		DiscountType  string    `json:"discount_type" validate:"required"`
		DiscountValue float64   `json:"discount_value" validate:"required,gt=0"`
		ProductIDs    []uint64  `json:"product_ids"`
		CategoryIDs   []uint64  `json:"category_ids"`
	}
)

func NewCampaignHandler(service CampaignService, timeout time.Duration) *CampaignHandler {
	return &CampaignHandler{
		validate: validator.New(),
		service:  service,
		timeout:  timeout,
	}
}

func (h *CampaignHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	campaigns, err := h.service.GetAllCampaigns(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(campaigns))
}

func (h *CampaignHandler) Create(c echo.Context) error {
	var req CreateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.service.CreateCampaign(ctx, domain.Campaign{
		Name:          req.Name,
		IsActive:      req.IsActive,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		DiscountType:  domain.DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		ProductIDs:    req.ProductIDs,
		CategoryIDs:   req.CategoryIDs,
	})
	if err != nil {
		if errors.Is(err, discount.ErrInvalidDiscount) || errors.Is(err, discount.ErrInvalidCampaignWindow) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}
