package rest

import (
	"context"
	"net/http"
	"time"

	"myMarket/domain"
	"myMarket/pkg/logger"
	"myMarket/pkg/trace"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	RecommendationHandler struct {
		validate *validator.Validate
		service  RecommendationService
		timeout  time.Duration
	}

	RecommendationService interface {
		GetPersonalizedRecommendations(ctx context.Context, userID uint, n int) ([]domain.RecommendedProduct, error)
		GetFrequentlyBoughtTogether(ctx context.Context, productID uint64, n int) ([]domain.RecommendedProduct, error)
		GetPopularProducts(ctx context.Context, n int) ([]domain.RecommendedProduct, error)
		GetCategoryRecommendations(ctx context.Context, categoryID uint64, n int) ([]domain.RecommendedProduct, error)
		GetBrowsingHistoryRecommendations(ctx context.Context, userID uint, n int) ([]domain.RecommendedProduct, error)
	}

	// LimitQuery n <= 0 means the configured default.
	LimitQuery struct {
		N int `query:"n" validate:"gte=0"`
	}
)

func NewRecommendationHandler(service RecommendationService, timeout time.Duration) *RecommendationHandler {
	return &RecommendationHandler{
		validate: validator.New(),
		service:  service,
		timeout:  timeout,
	}
}

func (h *RecommendationHandler) limit(c echo.Context) (int, error) {
	var q LimitQuery
	if err := c.Bind(&q); err != nil {
		return 0, err
	}
	if err := h.validate.Struct(&q); err != nil {
		return 0, err
	}
	return q.N, nil
}

func (h *RecommendationHandler) respond(c echo.Context, recs []domain.RecommendedProduct, err error) error {
	if err != nil {
		logger.Error("Failed to compute recommendations",
			"path", c.Path(),
			"trace_id", trace.TraceIDFromContext(c.Request().Context()),
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, fres.Response.StatusOK(recs))
}

func (h *RecommendationHandler) Personalized(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}
	n, err := h.limit(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.service.GetPersonalizedRecommendations(ctx, userID, n)
	return h.respond(c, recs, err)
}

func (h *RecommendationHandler) BrowsingHistory(c echo.Context) error {
	userID, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}
	n, err := h.limit(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.service.GetBrowsingHistoryRecommendations(ctx, userID, n)
	return h.respond(c, recs, err)
}

func (h *RecommendationHandler) Popular(c echo.Context) error {
	n, err := h.limit(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.service.GetPopularProducts(ctx, n)
	return h.respond(c, recs, err)
}

func (h *RecommendationHandler) Category(c echo.Context) error {
	categoryID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	n, err := h.limit(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.service.GetCategoryRecommendations(ctx, categoryID, n)
	return h.respond(c, recs, err)
}

func (h *RecommendationHandler) BoughtTogether(c echo.Context) error {
	productID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	n, err := h.limit(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	recs, err := h.service.GetFrequentlyBoughtTogether(ctx, productID, n)
	return h.respond(c, recs, err)
}
