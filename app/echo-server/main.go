package main

import (
	"context"
	"fmt"
	"log"
	"myMarket/app/echo-server/router"
	"myMarket/business/activity"
	"myMarket/business/category"
	"myMarket/business/discount"
	"myMarket/business/orders"
	"myMarket/business/preference"
	"myMarket/business/product"
	"myMarket/business/recommendation"
	"myMarket/internal/middleware"
	"myMarket/internal/repository/memcache"
	psqlRepo "myMarket/internal/repository/postgres"
	redisRepo "myMarket/internal/repository/redis"
	"myMarket/internal/rest"
	"myMarket/pkg/config"
	"myMarket/pkg/database"
	redisdb "myMarket/pkg/database/redis"
	"myMarket/pkg/logger"
	"myMarket/pkg/metrics"
	"myMarket/pkg/utils"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting MyMarket", "version", cfg.App.Version)

	utils.SetJWTSecret(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Init vector cache
	var (
		vectorCache recommendation.VectorCache
		redisClient *goredis.Client
	)
	switch cfg.Cache.Driver {
	case config.CacheDriverMemory:
		vectorCache = memcache.NewVectorCache(cfg.Cache.MemorySizeBytes)
		logger.Info("Vector cache in memory", "size_bytes", cfg.Cache.MemorySizeBytes)
	default:
		redisClient, err = redisdb.NewRedisClient(context.Background(), cfg)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		vectorCache = redisRepo.NewVectorCache(redisClient, redisRepo.BreakerConfig{
			FailureThreshold: cfg.Cache.BreakerFailureThreshold,
			OpenTimeout:      cfg.Cache.BreakerOpenTimeout,
		})
		logger.Info("Vector cache on redis", "host", cfg.Redis.RedisHost)
	}

	// Init repo
	productRepo := psqlRepo.NewProductRepository(db)
	categoryRepo := psqlRepo.NewCategoryRepository(db)
	ordersRepo := psqlRepo.NewOrdersRepository(db)
	activityRepo := psqlRepo.NewUserActivityRepository(db)
	campaignRepo := psqlRepo.NewCampaignRepository(db)

	// Init service
	discountService := discount.NewDiscountService(campaignRepo)
	preferenceService := preference.NewPreferenceService(activityRepo, productRepo)
	recommendationService := recommendation.NewRecommendationService(
		activityRepo,
		productRepo,
		ordersRepo,
		preferenceService,
		vectorCache,
		recommendation.Options{
			DefaultLimit:   cfg.Recommendation.DefaultLimit,
			MaxLimit:       cfg.Recommendation.MaxLimit,
			BrowsingWindow: cfg.Recommendation.BrowsingWindow,
			VectorTTL:      cfg.Cache.VectorTTL,
		},
	)
	activityService := activity.NewActivityService(activityRepo, recommendationService)
	productService := product.NewProductService(productRepo, discountService, activityService, recommendationService)
	categoryService := category.NewCategoryService(categoryRepo, productRepo, recommendationService)
	ordersService := orders.NewOrdersService(ordersRepo, productRepo, discountService, activityService)

	// Init handler
	timeout := cfg.Server.RequestTimeout
	productHandler := rest.NewProductHandler(productService, timeout)
	categoryHandler := rest.NewCategoryHandler(categoryService, timeout)
	activityHandler := rest.NewActivityHandler(activityService, timeout)
	recommendationHandler := rest.NewRecommendationHandler(recommendationService, timeout)
	ordersHandler := rest.NewOrdersHandler(ordersService, timeout)
	campaignHandler := rest.NewCampaignHandler(discountService, timeout)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.HTTPErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.HeaderTraceID},
	}))
	e.Use(middleware.TraceID())
	e.Use(middleware.RequestLogger())
	e.Use(metrics.Middleware())

	// Auth middleware
	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	router.SetMetricsRoute(e)
	api := e.Group("/api/v1")
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetupCategoryRoutes(api, categoryHandler, authRequired, adminOnly)
	router.SetActivityRoutes(api, activityHandler, authRequired)
	router.SetRecommendationRoutes(api, recommendationHandler, authRequired)
	router.SetOrdersRoutes(api, ordersHandler, authRequired, adminOnly)
	router.SetCampaignRoutes(api, campaignHandler, authRequired, adminOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisdb.CloseRedisClient(redisClient); err != nil {
		logger.Error("Redis close error", "error", err)
	}
	if err := database.ClosePostgres(db); err != nil {
		logger.Error("Postgres close error", "error", err)
	}

	logger.Info("Server stopped")
}
