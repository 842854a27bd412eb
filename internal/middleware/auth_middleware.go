package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"myMarket/pkg/logger"
	"myMarket/pkg/utils"

	jsonres "myMarket/pkg/response"

	"github.com/labstack/echo/v4"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"

	RoleAdmin = "ADMIN"
)

// AuthMiddleware verifies the bearer token and stores the caller's id and
// role on the echo context.
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Missing authorization header", nil,
				))
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid authorization format", nil,
				))
			}

			// expiry is enforced by the parser
			claims, err := utils.ParseJWT(tokenParts[1])
			if err != nil {
				logger.Debug("Rejected token", "error", err)
				return c.JSON(http.StatusUnauthorized, jsonres.Error(
					"UNAUTHORIZED", "Invalid token", nil,
				))
			}

			userID, err := strconv.ParseUint(claims.UserID, 10, 64)
			if err != nil || userID == 0 {
				logger.Error("Invalid user ID in token", "user_id", claims.UserID)
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Invalid user ID in token", nil,
				))
			}

			c.Set(ContextUserID, uint(userID))
			c.Set(ContextRole, claims.Role)

			return next(c)
		}
	}
}

func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !IsAdmin(c) {
				return c.JSON(http.StatusForbidden, jsonres.Error(
					"FORBIDDEN", "Admin access required", nil,
				))
			}

			return next(c)
		}
	}
}

func IsAdmin(c echo.Context) bool {
	role, ok := c.Get(ContextRole).(string)
	return ok && strings.ToUpper(role) == RoleAdmin
}
