package handler

import (
	"errors"
	"net/http"

	"inventory-service/internal/catalog"
	"inventory-service/pkg/validator"

	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// writeDomainError maps catalog error kinds onto HTTP responses. The
// wording stays generic; the kind is what callers are promised.
func writeDomainError(c echo.Context, err error) error {
	var ve *catalog.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": ve.Error(),
			"field": ve.Field,
		})
	case errors.Is(err, catalog.ErrNameConflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Product with this name already exists",
		})
	case errors.Is(err, catalog.ErrCodeConflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "Product with this code already exists",
		})
	case errors.Is(err, catalog.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Product not found",
		})
	case errors.Is(err, catalog.ErrStoreUnavailable):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"error": "Inventory store is unavailable",
		})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Internal server error",
		})
	}
}

// writeBindError reports a request the echo validator rejected, naming the
// first offending field.
func writeBindError(c echo.Context, err error) error {
	var fieldErrs playground.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": validator.Message(fe),
			"field": fe.Field(),
		})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error": "Invalid request data",
	})
}
