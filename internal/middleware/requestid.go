package middleware

import (
	"inventory-service/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HeaderRequestID is the header carrying the request correlation id.
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware tags each request with a correlation id. An id supplied
// by the caller is kept so traces stay connected across services; otherwise a
// fresh one is generated. The id is echoed back in the response and bound to
// the per-request logger.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
			c.Request().Header.Set(HeaderRequestID, requestID)
		}

		c.Response().Header().Set(HeaderRequestID, requestID)
		c.Set("request_id", requestID)

		// Bind the id to the logger handlers pick up via logger.FromEcho.
		log := logger.GetLogger().With(zap.String("request_id", requestID))
		c.Set("logger", log)

		return next(c)
	}
}
