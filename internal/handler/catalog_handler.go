package handler

import (
	"net/http"

	"inventory-service/internal/catalog"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CatalogHandler exposes the read-side catalog views: search, low-stock
// alerts, distinct categories/brands and aggregate statistics.
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler builds a handler around the given catalog.
func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: cat}
}

// SearchRequest carries the search query parameters.
type SearchRequest struct {
	Term string `query:"term"`
	Mode string `query:"mode" validate:"omitempty,oneof=name category code"`
}

// Search handles free-text and categorical product search
func (h *CatalogHandler) Search(c echo.Context) error {
	log := logger.FromEcho(c)

	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Invalid search mode", zap.String("mode", req.Mode))
		return writeBindError(c, err)
	}

	mode, err := catalog.ParseSearchMode(req.Mode)
	if err != nil {
		log.Warn("Invalid search mode", zap.String("mode", req.Mode))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid search mode"})
	}

	products, err := h.catalog.Search(c.Request().Context(), req.Term, mode)
	if err != nil {
		log.Error("Search failed",
			zap.String("term", req.Term),
			zap.String("mode", string(mode)),
			zap.Error(err))
		return writeDomainError(c, err)
	}

	prometheus.RecordSearch(string(mode))
	log.Info("Search completed",
		zap.String("term", req.Term),
		zap.String("mode", string(mode)),
		zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// ListLowStock handles retrieving products at or below their reorder threshold
func (h *CatalogHandler) ListLowStock(c echo.Context) error {
	log := logger.FromEcho(c)

	products, err := h.catalog.ListLowStock(c.Request().Context())
	if err != nil {
		log.Error("Failed to list low stock products", zap.Error(err))
		return writeDomainError(c, err)
	}

	prometheus.UpdateLowStockCount(float64(len(products)))
	log.Info("Low stock products retrieved", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// ListCategories handles retrieving the distinct category names
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	log := logger.FromEcho(c)

	categories, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		log.Error("Failed to list categories", zap.Error(err))
		return writeDomainError(c, err)
	}

	log.Info("Categories retrieved successfully", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, categories)
}

// ListBrands handles retrieving the distinct brand names
func (h *CatalogHandler) ListBrands(c echo.Context) error {
	log := logger.FromEcho(c)

	brands, err := h.catalog.ListBrands(c.Request().Context())
	if err != nil {
		log.Error("Failed to list brands", zap.Error(err))
		return writeDomainError(c, err)
	}

	log.Info("Brands retrieved successfully", zap.Int("count", len(brands)))
	return c.JSON(http.StatusOK, brands)
}

// GetStats handles retrieving the aggregate catalog statistics
func (h *CatalogHandler) GetStats(c echo.Context) error {
	log := logger.FromEcho(c)

	stats, err := h.catalog.Stats(c.Request().Context())
	if err != nil {
		log.Error("Failed to compute stats", zap.Error(err))
		return writeDomainError(c, err)
	}

	prometheus.UpdateLowStockCount(float64(stats.LowStockCount))
	log.Info("Stats computed successfully",
		zap.Int("total_products", stats.TotalProducts),
		zap.Int("low_stock_count", stats.LowStockCount))
	return c.JSON(http.StatusOK, stats)
}
