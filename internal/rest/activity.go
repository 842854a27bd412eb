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
	ActivityHandler struct {
		validate *validator.Validate
		service  ActivityService
		timeout  time.Duration
	}

	ActivityService interface {
		TrackActivity(ctx context.Context, userID uint, productID uint64, activityType domain.ActivityType) error
		GetActivity(ctx context.Context, userID uint) (*domain.UserActivity, error)
	}

	TrackActivityRequest struct {
		ProductID    uint64 `json:"product_id" validate:"required"`
		ActivityType string `json:"activity_type" validate:"required,oneof=view purchase cart_add"`
	}
)

func NewActivityHandler(service ActivityService, timeout time.Duration) *ActivityHandler {
	return &ActivityHandler{
		validate: validator.New(),
		service:  service,
		timeout:  timeout,
	}
}

func (h *ActivityHandler) Track(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req TrackActivityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.service.TrackActivity(ctx, userID, req.ProductID, domain.ActivityType(req.ActivityType)); err != nil {
		logger.Error("Failed to track activity", "user_id", userID, "error", err)
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated("activity tracked"))
}

func (h *ActivityHandler) Mine(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	activity, err := h.service.GetActivity(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(activity))
}
