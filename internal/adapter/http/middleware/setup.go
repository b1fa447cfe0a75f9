package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/wanderplan/flight-engine/internal/infrastructure/logger"
)

// Setup registers the middleware stack in order: request IDs first so every
// later log line can carry one, then request logging, then panic recovery
// closest to the handlers.
func Setup(e *echo.Echo, log *logger.Logger) {
	e.Use(RequestID())
	e.Use(RequestLogger(log))
	e.Use(Recover(log))
}
