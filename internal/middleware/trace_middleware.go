package middleware

import (
	"time"

	"myMarket/pkg/logger"
	"myMarket/pkg/trace"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const HeaderTraceID = "X-Trace-ID"

// TraceID reuses an incoming X-Trace-ID or mints one, and puts it on the
// request context and the response headers.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tid := c.Request().Header.Get(HeaderTraceID)
			if tid == "" {
				tid = uuid.NewString()
			}

			req := c.Request()
			c.SetRequest(req.WithContext(trace.WithTraceID(req.Context(), tid)))
			c.Response().Header().Set(HeaderTraceID, tid)

			return next(c)
		}
	}
}

func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Info("HTTP request",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"trace_id", trace.TraceIDFromContext(c.Request().Context()),
			)
			return nil
		}
	}
}
