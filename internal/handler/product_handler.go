package handler

import (
	"net/http"
	"strconv"

	"inventory-service/internal/catalog"
	"inventory-service/internal/model"
	"inventory-service/pkg/logger"
	"inventory-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductRequest defines the structure for product creation/update requests.
// Numeric fields are raw strings; the catalog parses them so a bad value is
// a typed rejection rather than a silent zero.
type ProductRequest struct {
	Name             string `json:"name" form:"name" validate:"required"`
	Code             string `json:"code" form:"code"`
	Description      string `json:"description" form:"description"`
	Brand            string `json:"brand" form:"brand"`
	Category         string `json:"category" form:"category"`
	Subcategory      string `json:"subcategory" form:"subcategory"`
	Location         string `json:"location" form:"location"`
	Supplier         string `json:"supplier" form:"supplier"`
	Unit             string `json:"unit" form:"unit"`
	Quantity         string `json:"quantity" form:"quantity" validate:"numstr"`
	PurchasePrice    string `json:"purchase_price" form:"purchase_price" validate:"numstr"`
	SalePrice        string `json:"sale_price" form:"sale_price" validate:"numstr"`
	ReorderThreshold string `json:"reorder_threshold" form:"reorder_threshold" validate:"numstr"`
}

func (r ProductRequest) toInput() catalog.ProductInput {
	return catalog.ProductInput{
		Name:             r.Name,
		Code:             r.Code,
		Description:      r.Description,
		Brand:            r.Brand,
		Category:         r.Category,
		Subcategory:      r.Subcategory,
		Location:         r.Location,
		Supplier:         r.Supplier,
		Unit:             r.Unit,
		Quantity:         r.Quantity,
		PurchasePrice:    r.PurchasePrice,
		SalePrice:        r.SalePrice,
		ReorderThreshold: r.ReorderThreshold,
	}
}

// productResponse is a product plus any advisory warnings from the write.
type productResponse struct {
	model.Product
	Warnings []string `json:"warnings,omitempty"`
}

func newProductResponse(p model.Product, warns []catalog.Warning) productResponse {
	resp := productResponse{Product: p}
	for _, w := range warns {
		resp.Warnings = append(resp.Warnings, string(w))
	}
	return resp
}

// ProductHandler exposes the catalog's CRUD operations over HTTP.
type ProductHandler struct {
	catalog *catalog.Catalog
}

// NewProductHandler builds a handler around the given catalog.
func NewProductHandler(cat *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: cat}
}

// ListProducts handles retrieving the full catalog
func (h *ProductHandler) ListProducts(c echo.Context) error {
	log := logger.FromEcho(c)

	products, err := h.catalog.ListProducts(c.Request().Context())
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return writeDomainError(c, err)
	}

	prometheus.RecordProductOperation("list")
	log.Info("Products retrieved successfully", zap.Int("count", len(products)))
	return c.JSON(http.StatusOK, products)
}

// GetProduct handles retrieving a single product by ID
func (h *ProductHandler) GetProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseID(c)
	if err != nil {
		log.Warn("Invalid product id", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product id"})
	}

	product, err := h.catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		log.Warn("Product not found",
			zap.Uint("product_id", id),
			zap.Error(err))
		return writeDomainError(c, err)
	}

	prometheus.RecordProductOperation("get")
	log.Info("Product retrieved successfully",
		zap.Uint("product_id", product.ID),
		zap.String("product_name", product.Name))
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles creating a new product
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Request failed validation", zap.Error(err))
		return writeBindError(c, err)
	}

	product, warns, err := h.catalog.CreateProduct(c.Request().Context(), req.toInput())
	if err != nil {
		log.Warn("Failed to create product",
			zap.String("name", req.Name),
			zap.Error(err))
		return writeDomainError(c, err)
	}

	prometheus.RecordProductOperation("create")
	prometheus.UpdateProductInventory(
		strconv.FormatUint(uint64(product.ID), 10),
		product.Name,
		product.Category,
		float64(product.Quantity),
	)

	log.Info("Product created successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.String("code", product.CodeValue()))
	return c.JSON(http.StatusCreated, newProductResponse(product, warns))
}

// UpdateProduct handles updating an existing product
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseID(c)
	if err != nil {
		log.Warn("Invalid product id", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product id"})
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.Uint("product_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Request failed validation", zap.Error(err))
		return writeBindError(c, err)
	}

	product, warns, err := h.catalog.UpdateProduct(c.Request().Context(), id, req.toInput())
	if err != nil {
		log.Warn("Failed to update product",
			zap.Uint("product_id", id),
			zap.Error(err))
		return writeDomainError(c, err)
	}

	prometheus.RecordProductOperation("update")
	prometheus.UpdateProductInventory(
		strconv.FormatUint(uint64(product.ID), 10),
		product.Name,
		product.Category,
		float64(product.Quantity),
	)

	log.Info("Product updated successfully",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name))
	return c.JSON(http.StatusOK, newProductResponse(product, warns))
}

// DeleteProduct handles deleting a product. The removal is permanent.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := parseID(c)
	if err != nil {
		log.Warn("Invalid product id", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid product id"})
	}

	if err := h.catalog.DeleteProduct(c.Request().Context(), id); err != nil {
		log.Warn("Failed to delete product",
			zap.Uint("product_id", id),
			zap.Error(err))
		return writeDomainError(c, err)
	}

	prometheus.RecordProductOperation("delete")
	log.Info("Product deleted successfully", zap.Uint("product_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
