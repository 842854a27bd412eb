package router

import (
	"myMarket/internal/rest"
	"myMarket/pkg/metrics"

	"github.com/labstack/echo/v4"
)

func SetupProductRoutes(api *echo.Group, handler *rest.ProductHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	products := api.Group("/products")

	products.GET("", handler.GetAllProducts, authRequired)
	products.GET("/:id", handler.GetProductByID, authRequired)
	products.POST("", handler.CreateProduct, authRequired, adminOnly)
	products.PUT("/:id", handler.UpdateProduct, authRequired, adminOnly)
	products.DELETE("/:id", handler.DeleteProduct, authRequired, adminOnly)
}

func SetupCategoryRoutes(api *echo.Group, handler *rest.CategoryHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	categories := api.Group("/categories", authRequired)

	categories.GET("", handler.GetAllCategories)
	categories.GET("/:id", handler.GetCategory)
	categories.POST("", handler.CreateCategory, adminOnly)
	categories.PUT("/:id", handler.RenameCategory, adminOnly)
	categories.DELETE("/:id", handler.DeleteCategory, adminOnly)
}

func SetActivityRoutes(api *echo.Group, handler *rest.ActivityHandler, authRequired echo.MiddlewareFunc) {
	activities := api.Group("/activities", authRequired)
	activities.POST("", handler.Track)
	activities.GET("/me", handler.Mine)
}

func SetRecommendationRoutes(api *echo.Group, handler *rest.RecommendationHandler, authRequired echo.MiddlewareFunc) {
	reco := api.Group("/recommendations")
	reco.GET("/personalized", handler.Personalized, authRequired)
	reco.GET("/history", handler.BrowsingHistory, authRequired)
	reco.GET("/popular", handler.Popular)
	reco.GET("/categories/:id", handler.Category)
	reco.GET("/products/:id/bought-together", handler.BoughtTogether)
}

func SetOrdersRoutes(api *echo.Group, ordersHandler *rest.OrdersHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	orders := api.Group("/orders", authRequired)
	orders.POST("", ordersHandler.CreateOrder)
	orders.GET("", ordersHandler.GetMyOrders)
	orders.GET("/:id", ordersHandler.GetOrder)
	orders.PATCH("/:id/status", ordersHandler.UpdateStatus, adminOnly)
}

func SetCampaignRoutes(api *echo.Group, handler *rest.CampaignHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	campaigns := api.Group("/campaigns", authRequired, adminOnly)
	campaigns.GET("", handler.List)
	campaigns.POST("", handler.Create)
}

func SetMetricsRoute(e *echo.Echo) {
	e.GET("/metrics", metrics.Handler())
}
