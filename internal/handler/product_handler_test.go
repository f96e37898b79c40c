package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"inventory-service/internal/catalog"
	"inventory-service/internal/handler"
	"inventory-service/internal/model"
	"inventory-service/internal/store"
	"inventory-service/pkg/config"
	"inventory-service/pkg/validator"
	"inventory-service/prometheus"
)

func TestMain(m *testing.M) {
	cfg := &config.Config{Metrics: config.MetricsConfig{Prefix: "handlertest"}}
	prometheus.InitMetrics(cfg)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Product{}))

	cat := catalog.New(store.NewGormStore(db))
	productHandler := handler.NewProductHandler(cat)
	catalogHandler := handler.NewCatalogHandler(cat)

	e := echo.New()
	v, err := validator.New()
	require.NoError(t, err)
	e.Validator = v

	api := e.Group("/api/products")
	api.GET("", productHandler.ListProducts)
	api.POST("", productHandler.CreateProduct)
	api.GET("/search", catalogHandler.Search)
	api.GET("/low-stock", catalogHandler.ListLowStock)
	api.GET("/:id", productHandler.GetProduct)
	api.PUT("/:id", productHandler.UpdateProduct)
	api.DELETE("/:id", productHandler.DeleteProduct)
	e.GET("/api/stats", catalogHandler.GetStats)

	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

const hammerJSON = `{
	"name": "Claw Hammer 16oz",
	"code": "HER-001",
	"brand": "Stanley",
	"category": "Hand Tools",
	"description": "Fiberglass handle",
	"quantity": "25",
	"purchase_price": "12.50",
	"sale_price": "18.99"
}`

func TestCreateProductEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/products", hammerJSON)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.NotZero(t, got.ID)
	assert.Equal(t, "Claw Hammer 16oz", got.Name)
	assert.Equal(t, 25, got.Quantity)
	assert.Equal(t, 5, got.ReorderThreshold)
}

func TestCreateProductEndpointRejectsBadNumeric(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/products", `{"name":"Nails","quantity":"lots"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Quantity", body["field"])
}

func TestCreateProductEndpointConflict(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/products", hammerJSON)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/products", hammerJSON)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateProductEndpointDuplicateCode(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/products", hammerJSON)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Same code under a different name must be refused, and the second
	// record must not appear in the catalog.
	body := `{"name":"Sledge Hammer 4lb","code":"HER-001","quantity":"5"}`
	rec = doJSON(e, http.MethodPost, "/api/products", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 1)
}

func TestCreateProductEndpointMarginWarning(t *testing.T) {
	e := newTestServer(t)

	body := `{"name":"Loss Leader","quantity":"10","purchase_price":"5.00","sale_price":"4.00"}`
	rec := doJSON(e, http.MethodPost, "/api/products", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var got struct {
		Warnings []string `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Warnings, 1)
	assert.Equal(t, string(catalog.WarningLowMargin), got.Warnings[0])
}

func TestGetProductEndpointNotFound(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/products/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/products/not-a-number", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteProductEndpointTwice(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/products", hammerJSON)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(e, http.MethodDelete, "/api/products/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodDelete, "/api/products/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/products", hammerJSON)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodGet, "/api/products/search?term=fiberglass", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var results []model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Claw Hammer 16oz", results[0].Name)

	rec = doJSON(e, http.MethodGet, "/api/products/search?term=x&mode=barcode", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsEndpoint(t *testing.T) {
	e := newTestServer(t)

	body := `{"name":"Widget A","quantity":"10","purchase_price":"2","sale_price":"3"}`
	require.Equal(t, http.StatusCreated, doJSON(e, http.MethodPost, "/api/products", body).Code)
	body = `{"name":"Widget B","quantity":"5","purchase_price":"4","sale_price":"1"}`
	require.Equal(t, http.StatusCreated, doJSON(e, http.MethodPost, "/api/products", body).Code)

	rec := doJSON(e, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats catalog.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.TotalProducts)
	assert.InDelta(t, 40.0, stats.TotalInvestment, 1e-9)
	assert.InDelta(t, 35.0, stats.TotalValue, 1e-9)
	assert.InDelta(t, -5.0, stats.PotentialProfit, 1e-9)
	assert.Equal(t, 15, stats.TotalUnits)
}
