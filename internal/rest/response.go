package rest

import (
	"errors"
	"net/http"
	"strconv"

	"myMarket/domain"
	"myMarket/internal/middleware"

	"github.com/labstack/echo/v4"
)

type ResponseError struct {
	Message string `json:"message"`
}

func callerID(c echo.Context) (uint, bool) {
	id, ok := c.Get(middleware.ContextUserID).(uint)
	return id, ok && id != 0
}

func parseID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// statusFor maps domain sentinels to HTTP statuses; anything else is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidActivityType),
		errors.Is(err, domain.ErrInvalidOrderStatus),
		errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrProductUnavailable),
		errors.Is(err, domain.ErrCategoryNameEmpty):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCategoryExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
