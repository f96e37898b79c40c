package main

import (
	"inventory-service/internal/catalog"
	"inventory-service/internal/handler"
	mid "inventory-service/internal/middleware"
	"inventory-service/internal/store"
	"inventory-service/pkg/config"
	"inventory-service/pkg/database"
	"inventory-service/pkg/logger"
	"inventory-service/pkg/validator"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (reads .env if present)
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting inventory-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Open the database and build the record store. The handle is passed
	// down explicitly; no package holds a global connection.
	db, err := database.Open(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established",
		zap.String("driver", appConfig.DB.Driver))

	recordStore := store.NewGormStore(db)
	cat := catalog.New(recordStore)

	productHandler := handler.NewProductHandler(cat)
	catalogHandler := handler.NewCatalogHandler(cat)

	// Initialize Echo instance
	e := echo.New()

	v, err := validator.New()
	if err != nil {
		log.Fatal("Failed to initialize request validator", zap.Error(err))
	}
	e.Validator = v

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.Health)

	// Product API routes
	productAPI := e.Group("/api/products")
	productAPI.GET("", productHandler.ListProducts)
	productAPI.POST("", productHandler.CreateProduct)
	productAPI.GET("/search", catalogHandler.Search)
	productAPI.GET("/low-stock", catalogHandler.ListLowStock)
	productAPI.GET("/:id", productHandler.GetProduct)
	productAPI.PUT("/:id", productHandler.UpdateProduct)
	productAPI.DELETE("/:id", productHandler.DeleteProduct)

	// Derived catalog views
	e.GET("/api/categories", catalogHandler.ListCategories)
	e.GET("/api/brands", catalogHandler.ListBrands)
	e.GET("/api/stats", catalogHandler.GetStats)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
