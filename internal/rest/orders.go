package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"myMarket/business/orders"
	"myMarket/domain"
	"myMarket/internal/middleware"
	"myMarket/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	OrdersHandler struct {
		validate      *validator.Validate
		ordersService OrdersService
		timeout       time.Duration
	}

	OrdersService interface {
		CreateOrder(ctx context.Context, userID uint, items []orders.ItemRequest, paymentMethod string) (*domain.Orders, error)
		GetOrdersByUser(ctx context.Context, userID uint) ([]domain.Orders, error)
		GetOrder(ctx context.Context, orderID uint64) (*domain.Orders, error)
		UpdateOrderStatus(ctx context.Context, orderID uint64, status string) (*domain.Orders, error)
	}

	CreateOrderRequest struct {
		Items         []orders.ItemRequest `json:"items" validate:"required,min=1,dive"`
		PaymentMethod string               `json:"payment_method"`
	}

	UpdateStatusRequest struct {
		Status string `json:"status" validate:"required"`
	}
)

func NewOrdersHandler(ordersService OrdersService, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		validate:      validator.New(),
		ordersService: ordersService,
		timeout:       timeout,
	}
}

func (h *OrdersHandler) CreateOrder(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var request CreateOrderRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.CreateOrder(ctx, userID, request.Items, request.PaymentMethod)
	if err != nil {
		logger.Error("Failed to create order", "user_id", userID, "error", err)
		status := statusFor(err)
		if errors.Is(err, orders.ErrInvalidQuantity) || status == http.StatusNotFound {
			status = http.StatusBadRequest
		}
		return c.JSON(status, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(order))
}

func (h *OrdersHandler) GetMyOrders(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	list, err := h.ordersService.GetOrdersByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(list))
}

// GetOrder lets owners see their own orders and admins see any.
func (h *OrdersHandler) GetOrder(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}
	orderID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.GetOrder(ctx, orderID)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}
	if order.UserID != userID && !middleware.IsAdmin(c) {
		return c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrOrderNotFound.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}

func (h *OrdersHandler) UpdateStatus(c echo.Context) error {
	orderID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	var request UpdateStatusRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&request); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	order, err := h.ordersService.UpdateOrderStatus(ctx, orderID, request.Status)
	if err != nil {
		return c.JSON(statusFor(err), ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(order))
}
