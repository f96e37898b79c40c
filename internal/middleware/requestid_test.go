package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-service/internal/middleware"
)

func invokeRequestID(t *testing.T, incoming string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	if incoming != "" {
		req.Header.Set(middleware.HeaderRequestID, incoming)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	handler := middleware.RequestIDMiddleware(func(c echo.Context) error {
		seen, _ = c.Get("request_id").(string)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
	return rec, seen
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	rec, seen := invokeRequestID(t, "")

	echoed := rec.Header().Get(middleware.HeaderRequestID)
	require.NotEmpty(t, echoed)
	assert.Equal(t, echoed, seen, "handler and response must see the same id")

	_, err := uuid.Parse(echoed)
	assert.NoError(t, err, "generated ids are uuids")
}

func TestRequestIDPreservedWhenSupplied(t *testing.T) {
	rec, seen := invokeRequestID(t, "upstream-trace-42")

	assert.Equal(t, "upstream-trace-42", rec.Header().Get(middleware.HeaderRequestID),
		"a caller-supplied id must survive so traces stay connected")
	assert.Equal(t, "upstream-trace-42", seen)
}
